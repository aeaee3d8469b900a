package tts

import (
	"regexp"
	"sort"
	"strings"
)

// Per-language character limits for a single synthesis request. XTTS
// quality degrades sharply past these bounds; longer turns are split at
// natural boundaries first.
var synthCharLimits = map[string]int{
	"pl": 224,
	"en": 250,
	"de": 250,
	"es": 250,
	"fr": 250,
}

const defaultSynthCharLimit = 200

func synthCharLimit(language string) int {
	if limit, ok := synthCharLimits[language]; ok {
		return limit
	}
	return defaultSynthCharLimit
}

// Phonetic spellings for terms the synthesis models mispronounce.
// Longest terms are replaced first so "Node.js" wins over "JS".
var englishPronunciations = map[string]string{
	"AWS":     "A W S",
	"API":     "A P I",
	"APIs":    "A P Is",
	"Node.js": "node J S",
	"node.js": "node J S",
	"AI":      "A I",
	"ML":      "M L",
	"LLM":     "L L M",
	"GPU":     "G P U",
	"CPU":     "C P U",
}

var polishPronunciations = map[string]string{
	"AWS":        "a wu es",
	"Azure":      "ażur",
	"Node.js":    "nołd dżej es",
	"node.js":    "nołd dżej es",
	"JavaScript": "dżawa skrypt",
	"TypeScript": "tajp skrypt",
	"Python":     "pajton",
	"API":        "A P I",
	"APIs":       "A P I",
	"GraphQL":    "graf kju el",
	"HTTP":       "ha te te pe",
	"HTTPS":      "ha te te pe es",
	"JSON":       "dżejson",
	"SQL":        "es kju el",
	"AI":         "A I",
	"LLM":        "el el em",
	"LLMs":       "el el emy",
	"ChatGPT":    "czat dżi pi ti",
	"GPU":        "dżi pi ju",
	"CPU":        "si pi ju",
	"TTS":        "ti ti es",
	"DevOps":     "dewops",
	"CI/CD":      "si aj si di",
	"Docker":     "doker",
	"Kubernetes": "kubernetes",
	"PostgreSQL": "postgres kju el",
	"MongoDB":    "mongo di bi",
	"GitHub":     "git hab",
	"Google":     "gugl",
	"Linux":      "linuks",
	"macOS":      "mak o es",
	"iOS":        "aj o es",
	"UI":         "ju aj",
	"URL":        "ju ar el",
	"CLI":        "si el aj",
	"SDK":        "es di kej",
}

type pronunciationRule struct {
	pattern     *regexp.Regexp
	replacement string
}

var pronunciationRules = map[string][]pronunciationRule{
	"en": compilePronunciations(englishPronunciations),
	"pl": compilePronunciations(polishPronunciations),
}

func compilePronunciations(terms map[string]string) []pronunciationRule {
	keys := make([]string, 0, len(terms))
	for term := range terms {
		keys = append(keys, term)
	}
	// Longest first so compound terms are not clobbered by their parts.
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	rules := make([]pronunciationRule, 0, len(keys))
	for _, term := range keys {
		var pattern string
		if strings.ContainsAny(term, "./") {
			pattern = `(?i)` + regexp.QuoteMeta(term)
		} else {
			pattern = `\b` + regexp.QuoteMeta(term) + `\b`
		}
		rules = append(rules, pronunciationRule{
			pattern:     regexp.MustCompile(pattern),
			replacement: terms[term],
		})
	}
	return rules
}

// normalizeForTTS replaces abbreviations and tech terms with phonetic
// spellings for the given language. Languages without a pronunciation
// table pass through unchanged.
func normalizeForTTS(text, language string) string {
	for _, rule := range pronunciationRules[language] {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return multiSpace.ReplaceAllString(text, " ")
}

var (
	markdownHeader  = regexp.MustCompile(`(?m)^#{1,6}\s+.*$`)
	bracketLabel    = regexp.MustCompile(`(?i)\[(?:HOST|CO-HOST|H|C)\][\s:]*`)
	lineLabel       = regexp.MustCompile(`(?im)^(?:HOST|CO-HOST)[:\s]+`)
	boldSpan        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	asterisks       = regexp.MustCompile(`\*+`)
	continuationTag = regexp.MustCompile(`(?i)(?:continuation|part\s*\d+)[\s:]*`)
	stageDirection  = regexp.MustCompile(`\([^)]{1,30}\)`)
	emptyBrackets   = regexp.MustCompile(`\[\s*\]|\(\s*\)`)
	metadataLine    = regexp.MustCompile(`(?im)^(?:INTRO|OUTRO|TOPIC\s*\d*|SEGMENT\s*\d*)[:\s]*$`)
	bareURL         = regexp.MustCompile(`https?://\S+`)
	strayMarkdown   = regexp.MustCompile("_{2,}|~{2,}|`+")
	multiSpace      = regexp.MustCompile(`[ \t]{2,}`)
)

// cleanTurnText strips script metadata that must never be read aloud:
// markdown headers, speaker labels, bold markers, continuation tags,
// stage directions, URLs and stray formatting.
func cleanTurnText(text string) string {
	text = markdownHeader.ReplaceAllString(text, "")
	text = bracketLabel.ReplaceAllString(text, "")
	text = lineLabel.ReplaceAllString(text, "")
	text = boldSpan.ReplaceAllString(text, "$1")
	text = asterisks.ReplaceAllString(text, "")
	text = continuationTag.ReplaceAllString(text, "")
	text = stageDirection.ReplaceAllString(text, "")
	text = emptyBrackets.ReplaceAllString(text, "")
	text = metadataLine.ReplaceAllString(text, "")
	text = bareURL.ReplaceAllString(text, "")
	text = strayMarkdown.ReplaceAllString(text, "")
	text = multiSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n")
}

// hasRepetitionArtifacts reports whether text looks like a model loop
// artifact: long character runs, a word repeated back to back, short
// patterns cycling, or one bigram dominating the text.
func hasRepetitionArtifacts(text string) bool {
	lower := strings.ToLower(text)

	// Character runs like "aaaaaa".
	run := 0
	var prev rune
	for _, r := range lower {
		if r == prev {
			run++
			if run >= 6 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}

	words := strings.Fields(lower)

	// The same word four or more times in a row ("tak tak tak tak").
	for i := 0; i+3 < len(words); i++ {
		if len(words[i]) >= 2 &&
			words[i] == words[i+1] && words[i] == words[i+2] && words[i] == words[i+3] {
			return true
		}
	}

	// A short word pair cycling three times ("di on di on di on").
	for i := 0; i+5 < len(words); i++ {
		a, b := words[i], words[i+1]
		if len(a) < 2 || len(a) > 6 || len(b) < 2 || len(b) > 6 {
			continue
		}
		if words[i+2] == a && words[i+3] == b && words[i+4] == a && words[i+5] == b {
			return true
		}
	}

	// One bigram dominating a longer text.
	if len(words) >= 10 {
		counts := make(map[string]int)
		max := 0
		for i := 0; i+1 < len(words); i++ {
			bg := words[i] + " " + words[i+1]
			counts[bg]++
			if counts[bg] > max {
				max = counts[bg]
			}
		}
		if max > 3 && max*10 > (len(words)-1)*3 {
			return true
		}
	}

	return false
}

// sanitizeTurnText prepares one dialogue turn for synthesis: metadata is
// stripped, loop artifacts and near-empty remainders are rejected.
// Returns false when the turn should be skipped entirely.
func sanitizeTurnText(text string) (string, bool) {
	cleaned := cleanTurnText(text)
	if len(strings.TrimSpace(cleaned)) < 10 {
		return "", false
	}
	if hasRepetitionArtifacts(cleaned) {
		return "", false
	}
	return cleaned, true
}

var (
	sentenceBreak = regexp.MustCompile(`[.!?]\s+`)
	clauseBreak   = regexp.MustCompile(`[,;]\s+`)
)

// splitTurnText splits text into chunks of at most maxChars, preferring
// sentence endings, then clause breaks, then word boundaries.
func splitTurnText(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if len(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	remaining := text
	for remaining != "" {
		if len(remaining) <= maxChars {
			chunks = append(chunks, remaining)
			break
		}

		window := remaining[:maxChars]

		if breaks := sentenceBreak.FindAllStringIndex(window, -1); len(breaks) > 0 {
			cut := breaks[len(breaks)-1][1]
			chunks = append(chunks, strings.TrimSpace(remaining[:cut]))
			remaining = strings.TrimSpace(remaining[cut:])
			continue
		}

		if breaks := clauseBreak.FindAllStringIndex(window, -1); len(breaks) > 0 {
			cut := breaks[len(breaks)-1][1]
			chunks = append(chunks, strings.TrimSpace(remaining[:cut]))
			remaining = strings.TrimSpace(remaining[cut:])
			continue
		}

		if cut := strings.LastIndex(window, " "); cut > maxChars/2 {
			chunks = append(chunks, strings.TrimSpace(remaining[:cut]))
			remaining = strings.TrimSpace(remaining[cut:])
			continue
		}

		chunks = append(chunks, strings.TrimSpace(window))
		remaining = strings.TrimSpace(remaining[maxChars:])
	}

	return chunks
}
