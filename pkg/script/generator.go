package script

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"rss-podcast/pkg/domain"
	"rss-podcast/pkg/llm"
)

const (
	defaultMaxPromptChars = 80000

	// Continuations shorter than this indicate the model has run out of
	// material; the continuation loop stops.
	minContinuationChars = 300
)

// Options tunes script generation.
type Options struct {
	// MaxPromptChars caps the article text included in a prompt. The
	// cut is made on whole-article boundaries, never mid-article.
	MaxPromptChars int

	// MinScriptChars, when positive, makes the generator request
	// continuations until the raw script reaches this length.
	MinScriptChars int

	// MaxContinuations bounds the number of continuation calls.
	MaxContinuations int

	// Continuation decides what to do with response lines that match
	// neither persona label. Defaults to appending to the previous turn.
	Continuation ContinuationPolicy
}

// Generator produces podcast scripts from article batches via an LLM.
type Generator struct {
	client   llm.Client
	language string
	opts     Options
	now      func() time.Time
}

// NewGenerator creates a generator for the given language. A language
// without a prompt template is rejected here, before any generation
// runs.
func NewGenerator(client llm.Client, language string, opts Options) (*Generator, error) {
	if !SupportedLanguage(language) {
		return nil, fmt.Errorf("unsupported language: %q", language)
	}
	if opts.MaxPromptChars <= 0 {
		opts.MaxPromptChars = defaultMaxPromptChars
	}
	if opts.Continuation == "" {
		opts.Continuation = ContinuationAppend
	}
	return &Generator{
		client:   client,
		language: language,
		opts:     opts,
		now:      time.Now,
	}, nil
}

// Generate builds a prompt from the articles, calls the completion
// endpoint and parses the response into an ordered script. An empty
// article batch or a response with no recognizable dialogue turns is a
// hard failure.
func (g *Generator) Generate(ctx context.Context, articles []domain.Article) (*domain.Script, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles to summarize")
	}

	articlesText := formatArticles(articles, g.opts.MaxPromptChars)

	slog.Info("generating script", "articles", len(articles), "language", g.language, "llm", g.client.Name())

	raw, err := g.client.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt(g.language)},
		{Role: "user", Content: userPrompt(articlesText)},
	})
	if err != nil {
		return nil, fmt.Errorf("script generation failed: %w", err)
	}

	raw, err = g.extend(ctx, raw, articlesText)
	if err != nil {
		return nil, err
	}

	turns := ParseTurns(raw, g.opts.Continuation)
	if len(turns) == 0 {
		return nil, fmt.Errorf("no dialogue turns parsed from LLM response (%d chars)", len(raw))
	}

	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}

	script := &domain.Script{
		ID:               uuid.NewString(),
		Title:            episodeTitle(articles, g.now()),
		Turns:            turns,
		SourceArticleIDs: ids,
		Language:         g.language,
		GeneratedAt:      g.now(),
	}

	slog.Info("script generated", "turns", len(turns), "chars", len(raw))
	return script, nil
}

// extend requests continuations while the script is below the configured
// minimum length. A short or failing continuation ends the loop without
// failing the generation.
func (g *Generator) extend(ctx context.Context, raw, articlesText string) (string, error) {
	for i := 0; g.opts.MinScriptChars > 0 && len(raw) < g.opts.MinScriptChars && i < g.opts.MaxContinuations; i++ {
		tail := raw
		if len(tail) > 3000 {
			tail = tail[len(tail)-3000:]
		}

		slog.Info("requesting script continuation",
			"current_chars", len(raw), "target_chars", g.opts.MinScriptChars, "attempt", i+1)

		cont, err := g.client.Chat(ctx, []llm.Message{
			{Role: "user", Content: continuationPrompt(tail, articlesText)},
		})
		if err != nil {
			slog.Warn("continuation request failed, keeping current script", "error", err)
			break
		}
		if len(cont) < minContinuationChars {
			slog.Warn("continuation too short, stopping", "chars", len(cont))
			break
		}

		raw = raw + "\n\n" + cont
	}
	return raw, nil
}

// formatArticles renders articles as prompt text, cutting at whole
// articles once the character budget is reached.
func formatArticles(articles []domain.Article, maxChars int) string {
	var b strings.Builder
	for _, a := range articles {
		block := fmt.Sprintf("\nSOURCE: %s\nDATE: %s\nTITLE: %s\nURL: %s\nCONTENT:\n%s\n---",
			a.Source, a.Published.Format("2006-01-02"), a.Title, a.URL, a.Text())

		if b.Len()+len(block) > maxChars {
			break
		}
		b.WriteString(block)
	}
	return b.String()
}

// episodeTitle derives the episode title from the newest parsed publish
// date in the batch, falling back to the generation time when no article
// has one.
func episodeTitle(articles []domain.Article, now time.Time) string {
	var newest time.Time
	for _, a := range articles {
		if !a.DateUnparsed && a.Published.After(newest) {
			newest = a.Published
		}
	}
	if newest.IsZero() {
		newest = now
	}
	return "Tech Feed - " + newest.Format("2006-01-02")
}
