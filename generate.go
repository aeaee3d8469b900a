package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rss-podcast/pkg/config"
	"rss-podcast/pkg/llm"
	"rss-podcast/pkg/script"
	"rss-podcast/pkg/store"
	"rss-podcast/pkg/tts"
)

func generateCmd() *cobra.Command {
	var (
		input      string
		output     string
		scriptOnly bool
		language   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a podcast script (and optionally audio) from fetched articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if language != "" {
				cfg.Podcast.Language = language
			}
			if output != "" {
				cfg.Storage.PodcastsDir = output
			}

			return runGenerate(cmd.Context(), cfg, input, scriptOnly)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Articles file (defaults to the latest snapshot)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Podcast output directory")
	cmd.Flags().BoolVar(&scriptOnly, "script-only", false, "Generate script only (no audio)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Script language code (e.g. en, pl)")

	return cmd
}

// runGenerate runs the generate stage: load articles, generate and
// persist the script, then synthesize audio unless scriptOnly is set.
func runGenerate(ctx context.Context, cfg *config.Config, inputPath string, scriptOnly bool) error {
	articleStore, err := store.NewArticleStore(cfg.Storage.ArticlesDir)
	if err != nil {
		return err
	}

	if inputPath == "" {
		inputPath, err = articleStore.Latest()
		if err != nil {
			return err
		}
		if inputPath == "" {
			return fmt.Errorf("no articles file found; run 'rss-podcast fetch' first")
		}
	}

	articles, err := articleStore.Load(inputPath)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		return fmt.Errorf("articles file %s is empty; nothing to summarize", inputPath)
	}

	client := llm.NewOllama(
		cfg.LLM.BaseURL,
		cfg.LLM.Model,
		cfg.LLM.Temperature,
		cfg.LLM.MaxTokens,
		cfg.LLM.Timeout(),
	)

	generator, err := script.NewGenerator(client, cfg.Podcast.Language, script.Options{
		MinScriptChars:   cfg.Podcast.MinScriptChars,
		MaxContinuations: cfg.Podcast.MaxContinuations,
		Continuation:     script.ContinuationPolicy(cfg.Podcast.ContinuationPolicy),
	})
	if err != nil {
		return err
	}

	episode, err := generator.Generate(ctx, articles)
	if err != nil {
		return err
	}

	podcastStore, err := store.NewPodcastStore(cfg.Storage.PodcastsDir)
	if err != nil {
		return err
	}

	scriptPath, err := podcastStore.SaveScript(episode)
	if err != nil {
		return err
	}
	fmt.Printf("Generated script with %d turns: %s\n", episode.TurnCount(), scriptPath)

	if scriptOnly {
		return nil
	}

	engine, err := tts.New(cfg.Podcast.TTS, cfg.Podcast.Voices, cfg.Podcast.Language)
	if err != nil {
		return err
	}

	audioPath, err := engine.Synthesize(ctx, episode, podcastStore.Dir())
	if err != nil {
		return fmt.Errorf("audio synthesis failed: %w", err)
	}

	// Record the audio location in the persisted script.
	episode.AudioPath = audioPath
	if _, err := podcastStore.SaveScript(episode); err != nil {
		return err
	}

	fmt.Printf("Podcast audio ready: %s\n", audioPath)
	return nil
}
