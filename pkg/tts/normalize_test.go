package tts

import (
	"strings"
	"testing"
)

func TestSanitizeTurnText_StripsMetadata(t *testing.T) {
	raw := `## Topic 3
[HOST] **Welcome** back to the show, everyone listening today.
(laughs) Check https://example.com/article for details.`

	text, ok := sanitizeTurnText(raw)
	if !ok {
		t.Fatal("Expected turn to survive sanitization")
	}

	for _, banned := range []string{"##", "[HOST]", "**", "(laughs)", "https://"} {
		if strings.Contains(text, banned) {
			t.Errorf("Expected %q removed, got %q", banned, text)
		}
	}
	if !strings.Contains(text, "Welcome back to the show") {
		t.Errorf("Expected spoken text kept, got %q", text)
	}
}

func TestSanitizeTurnText_RejectsShortRemainder(t *testing.T) {
	if _, ok := sanitizeTurnText("[HOST] Hi."); ok {
		t.Error("Expected near-empty turn rejected")
	}
	if _, ok := sanitizeTurnText("**[CO-HOST]**"); ok {
		t.Error("Expected metadata-only turn rejected")
	}
}

func TestSanitizeTurnText_RejectsRepetitionArtifacts(t *testing.T) {
	cases := []string{
		"yes yes yes yes yes this keeps going",
		"aaaaaaaaaa something broke here",
		"di on di on di on and nothing else",
	}
	for _, raw := range cases {
		if _, ok := sanitizeTurnText(raw); ok {
			t.Errorf("Expected artifact rejected: %q", raw)
		}
	}

	clean := "The release brings faster builds and a new garbage collector."
	if _, ok := sanitizeTurnText(clean); !ok {
		t.Errorf("Expected normal prose accepted: %q", clean)
	}
}

func TestNormalizeForTTS_English(t *testing.T) {
	out := normalizeForTTS("The API uses Node.js on a GPU cluster.", "en")

	if !strings.Contains(out, "A P I") {
		t.Errorf("Expected API spelled out, got %q", out)
	}
	if !strings.Contains(out, "node J S") {
		t.Errorf("Expected Node.js phoneticized, got %q", out)
	}
	if !strings.Contains(out, "G P U") {
		t.Errorf("Expected GPU spelled out, got %q", out)
	}
	if strings.Contains(out, "Node.js") {
		t.Errorf("Expected no raw term left, got %q", out)
	}
}

func TestNormalizeForTTS_WordBoundaries(t *testing.T) {
	// "AI" inside a word must not be replaced.
	out := normalizeForTTS("The maintainer said so.", "en")
	if out != "The maintainer said so." {
		t.Errorf("Expected text unchanged, got %q", out)
	}
}

func TestNormalizeForTTS_UnknownLanguagePassesThrough(t *testing.T) {
	in := "The API uses Node.js."
	if out := normalizeForTTS(in, "de"); out != in {
		t.Errorf("Expected pass-through for language without a table, got %q", out)
	}
}

func TestSplitTurnText(t *testing.T) {
	short := "Fits in one request."
	if got := splitTurnText(short, 250); len(got) != 1 || got[0] != short {
		t.Errorf("Expected short text unsplit, got %v", got)
	}

	sentence := "This sentence talks about one release and what changed in it. "
	long := strings.TrimSpace(strings.Repeat(sentence, 10))

	chunks := splitTurnText(long, 250)
	if len(chunks) < 2 {
		t.Fatalf("Expected long text split, got %d chunks", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 250 {
			t.Errorf("Chunk %d exceeds the limit: %d chars", i, len(chunk))
		}
		if chunk != strings.TrimSpace(chunk) {
			t.Errorf("Chunk %d has surrounding whitespace: %q", i, chunk)
		}
	}
	// Sentence boundaries are preferred, so chunks end on punctuation.
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("Expected first chunk cut at a sentence end, got %q", chunks[0])
	}
	if joined := strings.Join(chunks, " "); joined != long {
		t.Errorf("Split lost text:\nwant %q\ngot  %q", long, joined)
	}
}

func TestSplitTurnText_NoSentenceBreaks(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 100))

	chunks := splitTurnText(long, 100)
	for i, chunk := range chunks {
		if len(chunk) > 100 {
			t.Errorf("Chunk %d exceeds the limit: %d chars", i, len(chunk))
		}
	}
	if strings.Join(chunks, " ") != long {
		t.Error("Word-boundary split lost text")
	}
}

func TestSynthCharLimit(t *testing.T) {
	if synthCharLimit("pl") != 224 {
		t.Errorf("Unexpected Polish limit: %d", synthCharLimit("pl"))
	}
	if synthCharLimit("en") != 250 {
		t.Errorf("Unexpected English limit: %d", synthCharLimit("en"))
	}
	if synthCharLimit("xx") != defaultSynthCharLimit {
		t.Errorf("Unexpected fallback limit: %d", synthCharLimit("xx"))
	}
}
