package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"rss-podcast/pkg/config"
	"rss-podcast/pkg/domain"
)

// fishSpeechSynth calls a Fish Speech API server's /v1/tts endpoint.
// Voice cloning works by sending the persona's reference audio sample
// with each request.
type fishSpeechSynth struct {
	serverURL  string
	cfg        config.TTSConfig
	voices     domain.VoiceConfig
	httpClient *http.Client

	// reference samples loaded once per speaker
	refCache map[domain.Speaker][]byte
}

func newFishSpeechEngine(cfg config.TTSConfig, voices domain.VoiceConfig, language string) Engine {
	return &engine{
		name:     config.BackendFishSpeech,
		cfg:      cfg,
		language: language,
		synth: &fishSpeechSynth{
			serverURL:  cfg.ServerURL,
			cfg:        cfg,
			voices:     voices,
			httpClient: &http.Client{Timeout: cfg.Timeout()},
			refCache:   make(map[domain.Speaker][]byte),
		},
	}
}

type fishReference struct {
	Audio []byte `json:"audio"`
	Text  string `json:"text"`
}

type fishTTSRequest struct {
	Text              string          `json:"text"`
	References        []fishReference `json:"references"`
	Format            string          `json:"format"`
	Temperature       float64         `json:"temperature"`
	TopP              float64         `json:"top_p"`
	RepetitionPenalty float64         `json:"repetition_penalty"`
	ChunkLength       int             `json:"chunk_length"`
	Streaming         bool            `json:"streaming"`
	Normalize         bool            `json:"normalize"`
}

func (f *fishSpeechSynth) synthesizeTurn(ctx context.Context, turn domain.DialogueTurn) ([]byte, error) {
	reqBody, err := json.Marshal(fishTTSRequest{
		Text:              turn.Text,
		References:        f.references(turn.Speaker),
		Format:            f.cfg.AudioFormat,
		Temperature:       f.cfg.Temperature,
		TopP:              f.cfg.TopP,
		RepetitionPenalty: f.cfg.RepetitionPenalty,
		ChunkLength:       200,
		Streaming:         false,
		Normalize:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tts request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.serverURL+"/v1/tts", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create tts request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
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

// references loads the speaker's configured reference sample, if any.
// A missing sample file degrades to preset-voice synthesis rather than
// failing the turn.
func (f *fishSpeechSynth) references(speaker domain.Speaker) []fishReference {
	if cached, ok := f.refCache[speaker]; ok {
		if cached == nil {
			return nil
		}
		return []fishReference{{Audio: cached}}
	}

	path := f.voices.SamplePath(speaker)
	if path == "" {
		f.refCache[speaker] = nil
		return nil
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("voice sample not readable, using default voice", "speaker", speaker, "path", path, "error", err)
		f.refCache[speaker] = nil
		return nil
	}

	f.refCache[speaker] = audio
	return []fishReference{{Audio: audio}}
}
