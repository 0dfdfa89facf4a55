package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerSequencesEvents(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(0, 0))
	l.Log(NewPlayEvent(0, 0, "RED-1", 1))
	l.Log(NewTurnEvent(1, 1))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d: expected seq %d, got %d", i, i+1, e.Seq)
		}
	}
	if n := len(l.EventsOfType(EventNewTurn)); n != 2 {
		t.Errorf("Expected 2 turn events, got %d", n)
	}
	if l.LastEvent().Turn != 1 {
		t.Errorf("Unexpected last event %+v", l.LastEvent())
	}
	if (&MemoryLogger{}).LastEvent().Type != EventNewTurn {
		t.Error("Empty logger returns the zero event")
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewClueEvent(3, 1, 2, "RED", 2, 6))
	l.Log(NewGameOverEvent(4, "Victory", 25))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", buf.String())
	}
	if lines[0] != "T3   P1 | P1 clues P2 with RED (2 touched) tokens:6" {
		t.Errorf("Unexpected clue line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "T4   -- | game over: Victory") {
		t.Errorf("Unexpected game over line %q", lines[1])
	}
	if len(l.Events()) != 2 {
		t.Error("TextLogger also keeps events")
	}
}

func TestFuncLoggerForwards(t *testing.T) {
	var got []GameEvent
	l := &FuncLogger{Fn: func(e GameEvent) { got = append(got, e) }}
	l.Log(NewDrawEvent(0, 2, "BLU-4", 33))
	l.Log(NewDiscardEvent(0, 2, "BLU-4", 7))
	if len(got) != 2 || got[1].Seq != 2 || got[0].Card != "BLU-4" {
		t.Fatalf("Unexpected forwarded events %+v", got)
	}
}

func TestNopLogger(t *testing.T) {
	var l EventLogger = NopLogger{}
	l.Log(NewTurnEvent(0, 0))
	if l.Events() != nil {
		t.Error("NopLogger keeps nothing")
	}
}

func TestEventTypeString(t *testing.T) {
	if EventMisplay.String() != "Misplay" || EventType(99).String() != "Unknown" {
		t.Error("Unexpected event type names")
	}
}
