package macro

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/registers"
)

type recordingDispatcher struct {
	keys []tea.KeyMsg
	fn   func(tea.KeyMsg) error
}

func (d *recordingDispatcher) DispatchKey(ev tea.KeyMsg) error {
	d.keys = append(d.keys, ev)
	if d.fn != nil {
		return d.fn(ev)
	}
	return nil
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRecordAndPlay(t *testing.T) {
	regs := registers.New(nil, nil)
	e := NewEngine(regs)

	if err := e.Start('a'); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !e.IsRecording() {
		t.Fatalf("IsRecording() = false, want true")
	}
	e.RecordKey(key('x'))
	e.RecordKey(key('y'))
	if err := e.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if e.IsRecording() {
		t.Fatalf("IsRecording() = true after Stop, want false")
	}

	slot, ok := regs.Get('a')
	if !ok || slot.Kind != registers.MacroKeys || len(slot.Keys) != 2 {
		t.Fatalf("register a = %+v, want 2 recorded keys", slot)
	}

	d := &recordingDispatcher{}
	if err := e.Play('a', 2, d); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(d.keys) != 4 {
		t.Fatalf("dispatched %d keys, want 4 (2 keys x count 2)", len(d.keys))
	}
}

func TestStartWhileRecordingFails(t *testing.T) {
	regs := registers.New(nil, nil)
	e := NewEngine(regs)
	e.Start('a')
	if err := e.Start('b'); err != ErrAlreadyRecording {
		t.Fatalf("Start while recording = %v, want ErrAlreadyRecording", err)
	}
}

func TestStopWithoutRecordingFails(t *testing.T) {
	regs := registers.New(nil, nil)
	e := NewEngine(regs)
	if err := e.Stop(); err != ErrNotRecording {
		t.Fatalf("Stop without recording = %v, want ErrNotRecording", err)
	}
}

func TestPlayEmptyRegisterFails(t *testing.T) {
	regs := registers.New(nil, nil)
	e := NewEngine(regs)
	d := &recordingDispatcher{}
	err := e.Play('z', 1, d)
	if _, ok := err.(*ErrEmptyMacro); !ok {
		t.Fatalf("Play on empty register = %v, want *ErrEmptyMacro", err)
	}
}

func TestPlayAtRepeatsLastMacro(t *testing.T) {
	regs := registers.New(nil, nil)
	regs.Set('a', registers.MacroSlot([]tea.KeyMsg{key('x')}))
	e := NewEngine(regs)
	d := &recordingDispatcher{}

	if err := e.Play('a', 1, d); err != nil {
		t.Fatalf("Play('a'): %v", err)
	}
	if err := e.Play('@', 1, d); err != nil {
		t.Fatalf("Play('@'): %v", err)
	}
	if len(d.keys) != 2 {
		t.Fatalf("dispatched %d keys, want 2 (one per Play)", len(d.keys))
	}
}

func TestPlaySelfRecursionHitsDepthLimit(t *testing.T) {
	regs := registers.New(nil, nil)
	e := NewEngine(regs)
	e.maxDepth = 3

	// Register 'a' plays itself: a macro consisting of a single key
	// whose dispatcher recursively invokes Play('a', ...) again.
	regs.Set('a', registers.MacroSlot([]tea.KeyMsg{key('a')}))

	var d *recordingDispatcher
	d = &recordingDispatcher{fn: func(tea.KeyMsg) error {
		return e.Play('a', 1, d)
	}}

	err := e.Play('a', 1, d)
	if _, ok := err.(*ErrMacroDepthExceeded); !ok {
		t.Fatalf("self-recursive Play = %v, want *ErrMacroDepthExceeded", err)
	}
}
