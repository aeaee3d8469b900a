package domain

import (
	"fmt"
	"strings"
	"time"
)

// Speaker identifies one of the two podcast personas.
type Speaker string

const (
	SpeakerHost   Speaker = "host"
	SpeakerCoHost Speaker = "co_host"
)

// Label returns the speaker marker used in plain-text script renderings.
func (s Speaker) Label() string {
	if s == SpeakerCoHost {
		return "[CO-HOST]"
	}
	return "[HOST]"
}

// DialogueTurn is a single utterance in a podcast script.
// Turns in a script carry contiguous indices starting at 0.
type DialogueTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
	Index   int     `json:"index"`
}

// Script is the ordered dialogue produced for one podcast episode.
type Script struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Turns            []DialogueTurn `json:"turns"`
	SourceArticleIDs []string       `json:"source_article_ids"`
	Language         string         `json:"language"`
	GeneratedAt      time.Time      `json:"generated_at"`
	AudioPath        string         `json:"audio_path,omitempty"`
}

// TurnCount returns the number of dialogue turns.
func (s *Script) TurnCount() int {
	return len(s.Turns)
}

// PlainText renders the script as readable text with speaker markers.
func (s *Script) PlainText() string {
	lines := make([]string, 0, len(s.Turns))
	for _, turn := range s.Turns {
		lines = append(lines, fmt.Sprintf("%s %s", turn.Speaker.Label(), turn.Text))
	}
	return strings.Join(lines, "\n\n")
}

// VoiceConfig assigns a voice to each persona. A reference sample path,
// when set, selects voice cloning over the named preset speaker.
type VoiceConfig struct {
	HostSpeaker       string `yaml:"host_speaker" json:"host_speaker"`
	CoHostSpeaker     string `yaml:"co_host_speaker" json:"co_host_speaker"`
	HostVoiceSample   string `yaml:"host_voice_sample" json:"host_voice_sample,omitempty"`
	CoHostVoiceSample string `yaml:"co_host_voice_sample" json:"co_host_voice_sample,omitempty"`
}

// SpeakerName returns the preset speaker name for the given persona.
func (v VoiceConfig) SpeakerName(s Speaker) string {
	if s == SpeakerCoHost {
		return v.CoHostSpeaker
	}
	return v.HostSpeaker
}

// SamplePath returns the reference audio sample path for the given
// persona, or an empty string when no sample is configured.
func (v VoiceConfig) SamplePath(s Speaker) string {
	if s == SpeakerCoHost {
		return v.CoHostVoiceSample
	}
	return v.HostVoiceSample
}
