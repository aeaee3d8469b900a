package script

import "fmt"

// languageInstructions holds the per-language directive appended to the
// system prompt. A language code absent from this map is unsupported.
var languageInstructions = map[string]string{
	"en": "CRITICAL: The entire script MUST be written in ENGLISH.",
	"pl": "KRYTYCZNE: Cały scenariusz MUSI być napisany w języku POLSKIM. Nie używaj angielskiego!",
	"de": "KRITISCH: Das gesamte Skript MUSS auf DEUTSCH geschrieben werden. Kein Englisch!",
	"es": "CRÍTICO: Todo el guión DEBE estar escrito en ESPAÑOL. ¡No uses inglés!",
	"fr": "CRITIQUE: Le script entier DOIT être écrit en FRANÇAIS. N'utilisez pas l'anglais!",
}

// SupportedLanguage reports whether a prompt template exists for the
// given language code.
func SupportedLanguage(code string) bool {
	_, ok := languageInstructions[code]
	return ok
}

const systemPromptTemplate = `You are a producer of the tech podcast "Tech Feed".
Your task is to write a podcast script based on the provided articles.

%s

RULES:
1. The podcast is hosted by two people: HOST and CO-HOST
2. Style: casual but informative - like a conversation between two tech enthusiasts
3. Duration: script for about 20-30 minutes of reading
4. Structure:
   - Brief greeting and topic preview
   - Discussion of the most interesting news (cover 8-12 topics in detail)
   - For each topic: explain what it is, why it matters, and add your opinions
   - Each topic should have at least 3-4 exchanges between HOST and CO-HOST
   - Short summary and farewell
5. Base ALL facts ONLY on the provided articles - do not add information that is not present in them
6. Do not invent dates, product names, or details - if something is not in an article, skip it
7. Mark each line: [HOST] or [CO-HOST] before each statement

RESPONSE FORMAT:
Return ONLY the script in format:
[HOST] host's statement
[CO-HOST] co-host's statement

DO NOT add any other comments, explanations, headers, or metadata - just the script itself.`

const userPromptTemplate = `Here are this week's articles to discuss in the podcast:

%s

Now write a detailed podcast script covering 8-12 of the most interesting topics from the articles above.
Make the discussion in-depth with analysis and opinions. Each topic should have multiple exchanges.

CRITICAL RULES:
1. Base ALL facts ONLY on the provided articles!
2. NEVER include headers, "Continuation", "Part X", or any metadata - ONLY dialogue!
3. Write the ENTIRE script in the language specified in the system prompt.`

const continuationPromptTemplate = `You are a tech podcast scriptwriter. Continue the script below.

EXISTING SCRIPT (end):
%s

ARTICLES:
%s

Continue with 4-5 NEW topics from the articles that were not yet discussed.
Use the [HOST] and [CO-HOST] format only, no headers or metadata.
Write in the same language as the existing script.`

func systemPrompt(language string) string {
	return fmt.Sprintf(systemPromptTemplate, languageInstructions[language])
}

func userPrompt(articlesText string) string {
	return fmt.Sprintf(userPromptTemplate, articlesText)
}

func continuationPrompt(scriptTail, articlesText string) string {
	return fmt.Sprintf(continuationPromptTemplate, scriptTail, articlesText)
}
