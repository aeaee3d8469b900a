package script

import (
	"regexp"
	"strings"

	"rss-podcast/pkg/domain"
)

// ContinuationPolicy decides what happens to response lines that match
// neither persona label.
type ContinuationPolicy string

const (
	// ContinuationAppend attaches unmatched lines to the previous turn.
	ContinuationAppend ContinuationPolicy = "append"

	// ContinuationDrop discards unmatched lines.
	ContinuationDrop ContinuationPolicy = "drop"
)

// speakerLine matches a line opening with a persona label, either in the
// requested "[HOST]" form or the "HOST:" variant some models produce.
var speakerLine = regexp.MustCompile(`^\s*(?:\[(HOST|CO-HOST)\]\s*:?|\*{0,2}(HOST|CO-HOST)\*{0,2}\s*:)\s*(.*)$`)

// ParseTurns parses raw model output into ordered dialogue turns.
// Lines that match neither label follow the continuation policy; a
// leading unmatched line (no previous turn to attach to) is dropped
// either way. Indices are assigned contiguously from 0.
func ParseTurns(raw string, policy ContinuationPolicy) []domain.DialogueTurn {
	var turns []domain.DialogueTurn

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		m := speakerLine.FindStringSubmatch(trimmed)
		if m == nil {
			if policy == ContinuationAppend && len(turns) > 0 {
				last := &turns[len(turns)-1]
				if last.Text == "" {
					last.Text = trimmed
				} else {
					last.Text = last.Text + " " + trimmed
				}
			}
			continue
		}

		label := m[1]
		if label == "" {
			label = m[2]
		}

		speaker := domain.SpeakerHost
		if label == "CO-HOST" {
			speaker = domain.SpeakerCoHost
		}

		turns = append(turns, domain.DialogueTurn{
			Speaker: speaker,
			Text:    strings.TrimSpace(m[3]),
		})
	}

	// Drop turns whose text stayed empty, then index contiguously.
	out := turns[:0]
	for _, t := range turns {
		if t.Text == "" {
			continue
		}
		t.Index = len(out)
		out = append(out, t)
	}

	return out
}
