package script

import (
	"testing"

	"rss-podcast/pkg/domain"
)

func TestParseTurns_AlternatingLabels(t *testing.T) {
	raw := `[HOST] Welcome to the show.
[CO-HOST] Glad to be here.
[HOST] Let's dive in.`

	turns := ParseTurns(raw, ContinuationAppend)

	if len(turns) != 3 {
		t.Fatalf("Expected 3 turns, got %d", len(turns))
	}

	want := []struct {
		speaker domain.Speaker
		text    string
	}{
		{domain.SpeakerHost, "Welcome to the show."},
		{domain.SpeakerCoHost, "Glad to be here."},
		{domain.SpeakerHost, "Let's dive in."},
	}
	for i, w := range want {
		if turns[i].Speaker != w.speaker {
			t.Errorf("Turn %d: expected speaker %q, got %q", i, w.speaker, turns[i].Speaker)
		}
		if turns[i].Text != w.text {
			t.Errorf("Turn %d: expected text %q, got %q", i, w.text, turns[i].Text)
		}
		if turns[i].Index != i {
			t.Errorf("Turn %d: expected contiguous index %d, got %d", i, i, turns[i].Index)
		}
	}
}

func TestParseTurns_LabelVariants(t *testing.T) {
	raw := `[HOST]: Colon after the bracket.
HOST: Bare label.
**CO-HOST**: Bold label.`

	turns := ParseTurns(raw, ContinuationAppend)

	if len(turns) != 3 {
		t.Fatalf("Expected 3 turns, got %d", len(turns))
	}
	if turns[0].Text != "Colon after the bracket." {
		t.Errorf("Unexpected text for bracket-colon form: %q", turns[0].Text)
	}
	if turns[1].Speaker != domain.SpeakerHost || turns[1].Text != "Bare label." {
		t.Errorf("Unexpected turn for bare label form: %+v", turns[1])
	}
	if turns[2].Speaker != domain.SpeakerCoHost || turns[2].Text != "Bold label." {
		t.Errorf("Unexpected turn for bold label form: %+v", turns[2])
	}
}

func TestParseTurns_AppendPolicy(t *testing.T) {
	raw := `[HOST] First sentence.
And this continues it.
[CO-HOST] A reply.`

	turns := ParseTurns(raw, ContinuationAppend)

	if len(turns) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(turns))
	}
	if turns[0].Text != "First sentence. And this continues it." {
		t.Errorf("Expected continuation appended to previous turn, got %q", turns[0].Text)
	}
}

func TestParseTurns_DropPolicy(t *testing.T) {
	raw := `[HOST] First sentence.
This stray line is dropped.
[CO-HOST] A reply.`

	turns := ParseTurns(raw, ContinuationDrop)

	if len(turns) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(turns))
	}
	if turns[0].Text != "First sentence." {
		t.Errorf("Expected stray line dropped, got %q", turns[0].Text)
	}
}

func TestParseTurns_LeadingUnmatchedDropped(t *testing.T) {
	raw := `Here is your podcast script:
[HOST] The actual opening.`

	turns := ParseTurns(raw, ContinuationAppend)

	if len(turns) != 1 {
		t.Fatalf("Expected 1 turn, got %d", len(turns))
	}
	if turns[0].Text != "The actual opening." {
		t.Errorf("Expected preamble dropped, got %q", turns[0].Text)
	}
}

func TestParseTurns_BareLabelThenContinuation(t *testing.T) {
	raw := `[HOST]
The text arrives on the next line.`

	turns := ParseTurns(raw, ContinuationAppend)

	if len(turns) != 1 {
		t.Fatalf("Expected 1 turn, got %d", len(turns))
	}
	if turns[0].Text != "The text arrives on the next line." {
		t.Errorf("Expected no leading space on the attached line, got %q", turns[0].Text)
	}
}

func TestParseTurns_EmptyTurnsRemoved(t *testing.T) {
	raw := `[HOST]
[CO-HOST] Only speaker with text.`

	turns := ParseTurns(raw, ContinuationAppend)

	if len(turns) != 1 {
		t.Fatalf("Expected empty turn removed, got %d turns", len(turns))
	}
	if turns[0].Index != 0 {
		t.Errorf("Expected reindexing from 0 after removal, got %d", turns[0].Index)
	}
}

func TestParseTurns_NoMatches(t *testing.T) {
	turns := ParseTurns("Just prose with no labels at all.", ContinuationAppend)
	if len(turns) != 0 {
		t.Errorf("Expected no turns, got %d", len(turns))
	}
}
