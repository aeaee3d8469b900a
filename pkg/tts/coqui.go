package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"rss-podcast/pkg/config"
	"rss-podcast/pkg/domain"
)

// coquiSynth calls a Coqui TTS server's /api/tts endpoint, one request
// per turn. A configured reference sample selects voice cloning over the
// named preset speaker.
type coquiSynth struct {
	serverURL  string
	voices     domain.VoiceConfig
	language   string
	httpClient *http.Client
}

func newCoquiEngine(cfg config.TTSConfig, voices domain.VoiceConfig, language string) Engine {
	return &engine{
		name:     config.BackendCoqui,
		cfg:      cfg,
		language: language,
		synth: &coquiSynth{
			serverURL:  cfg.ServerURL,
			voices:     voices,
			language:   language,
			httpClient: &http.Client{Timeout: cfg.Timeout()},
		},
	}
}

func (c *coquiSynth) synthesizeTurn(ctx context.Context, turn domain.DialogueTurn) ([]byte, error) {
	params := url.Values{}
	params.Set("text", turn.Text)
	params.Set("language_id", c.language)

	if sample := c.voices.SamplePath(turn.Speaker); sample != "" {
		params.Set("speaker_wav", sample)
	} else {
		params.Set("speaker_id", c.voices.SpeakerName(turn.Speaker))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.serverURL+"/api/tts?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tts request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tts response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts server error: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
