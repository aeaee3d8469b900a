package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"rss-podcast/pkg/config"
	"rss-podcast/pkg/domain"
)

// Engine synthesizes a script into one audio file. Implementations are
// interchangeable backends selected by configuration.
type Engine interface {
	// Synthesize renders every dialogue turn and writes the combined
	// audio into outDir, returning the path of the written file. Any
	// single-turn failure fails the whole synthesis; no partial audio
	// is left behind.
	Synthesize(ctx context.Context, script *domain.Script, outDir string) (string, error)

	// Name returns the backend name.
	Name() string
}

// New creates the TTS engine selected by cfg.Backend.
func New(cfg config.TTSConfig, voices domain.VoiceConfig, language string) (Engine, error) {
	switch cfg.Backend {
	case config.BackendCoqui:
		return newCoquiEngine(cfg, voices, language), nil
	case config.BackendFishSpeech:
		return newFishSpeechEngine(cfg, voices, language), nil
	default:
		return nil, fmt.Errorf("unknown tts backend: %q", cfg.Backend)
	}
}

// turnSynthesizer renders a single dialogue turn to wav bytes.
// Both backends implement this; the surrounding engine handles
// sequencing, concatenation and the atomic write.
type turnSynthesizer interface {
	synthesizeTurn(ctx context.Context, turn domain.DialogueTurn) ([]byte, error)
}

// engine runs the shared per-turn synthesis loop for a backend.
type engine struct {
	synth    turnSynthesizer
	name     string
	cfg      config.TTSConfig
	language string
}

func (e *engine) Name() string {
	return e.name
}

func (e *engine) Synthesize(ctx context.Context, script *domain.Script, outDir string) (string, error) {
	if script.TurnCount() == 0 {
		return "", fmt.Errorf("script has no dialogue turns")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("synthesizing script", "backend", e.name, "turns", script.TurnCount())

	clips := make([][]byte, 0, script.TurnCount())
	for _, turn := range script.Turns {
		text, ok := sanitizeTurnText(turn.Text)
		if !ok {
			slog.Warn("skipping turn with no synthesizable text",
				"index", turn.Index, "text", truncate(turn.Text, 50))
			continue
		}
		text = normalizeForTTS(text, e.language)

		// Long turns are split at natural boundaries; each chunk is one
		// synthesis request for the same speaker.
		for _, chunk := range splitTurnText(text, synthCharLimit(e.language)) {
			part := turn
			part.Text = chunk
			clip, err := e.synth.synthesizeTurn(ctx, part)
			if err != nil {
				return "", fmt.Errorf("failed to synthesize turn %d (%s): %w", turn.Index, turn.Speaker, err)
			}
			clips = append(clips, clip)
			slog.Debug("synthesized turn", "index", turn.Index, "speaker", turn.Speaker, "bytes", len(clip))
		}
	}

	combined, err := concatWAV(clips, e.cfg.Pause())
	if err != nil {
		return "", fmt.Errorf("failed to combine audio: %w", err)
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("podcast_%s.wav", script.GeneratedAt.Format("2006-01-02")))
	if err := writeFileAtomic(outPath, combined); err != nil {
		return "", err
	}

	slog.Info("podcast audio written", "path", outPath, "bytes", len(combined))
	return outPath, nil
}

// writeFileAtomic writes data to a temp file in the target directory
// and renames it into place, so the output path never holds a partial
// file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move audio into place: %w", err)
	}
	return nil
}
