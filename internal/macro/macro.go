// Package macro implements the Macro Engine of spec.md §4.D: recording
// a keystroke sequence into a register and replaying it, with a bounded
// recursion depth so a macro that plays itself cannot hang the editor.
//
// Grounded on original_source/src/macro/mod.rs's MacroState state
// machine (Idle / Recording / Playing), reshaped from the original's
// enum-with-data into a small explicit struct plus a depth counter,
// matching spec.md §9's "no hidden global state" guidance.
package macro

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/capability"
	"github.com/nyxed/edcore/internal/registers"
)

// DefaultMaxDepth bounds nested macro replay (a macro invoking @@ or
// its own register), grounded on the original's recursion guard.
const DefaultMaxDepth = 100

// ErrAlreadyRecording is returned by Start when a recording is already
// in progress.
var ErrAlreadyRecording = fmt.Errorf("already recording a macro")

// ErrNotRecording is returned by Stop when nothing is being recorded.
var ErrNotRecording = fmt.Errorf("not recording a macro")

// ErrMacroDepthExceeded is returned by Play when replay would nest
// beyond MaxDepth, the usual symptom of a macro that plays itself.
type ErrMacroDepthExceeded struct{ Depth int }

func (e *ErrMacroDepthExceeded) Error() string {
	return fmt.Sprintf("macro recursion exceeded depth %d", e.Depth)
}

// ErrEmptyMacro is returned by Play when the target register holds no
// recorded keys.
type ErrEmptyMacro struct{ Register rune }

func (e *ErrEmptyMacro) Error() string {
	return fmt.Sprintf("register %q has no recorded macro", e.Register)
}

type recording struct {
	register rune
	keys     []tea.KeyMsg
}

// Engine owns macro recording and replay state. It reads and writes
// macro content through a *registers.Store so `@a` plays whatever was
// last yanked/recorded into register a, per spec.md §4.D.
type Engine struct {
	regs     *registers.Store
	active   *recording
	depth    int
	maxDepth int
	lastPlay rune // register replayed by the most recent Play, for @@
}

func NewEngine(regs *registers.Store) *Engine {
	return &Engine{regs: regs, maxDepth: DefaultMaxDepth}
}

// IsRecording reports whether a recording is currently in progress.
func (e *Engine) IsRecording() bool { return e.active != nil }

// RecordingRegister returns the register being recorded into, for
// status-line display, and ok=false when idle.
func (e *Engine) RecordingRegister() (rune, bool) {
	if e.active == nil {
		return 0, false
	}
	return e.active.register, true
}

// Start begins recording into reg (the register named after `q`).
func (e *Engine) Start(reg rune) error {
	if e.active != nil {
		return ErrAlreadyRecording
	}
	e.active = &recording{register: reg}
	return nil
}

// RecordKey appends a keystroke to the in-progress recording. It is a
// no-op when nothing is being recorded, so callers can feed every key
// through it unconditionally.
func (e *Engine) RecordKey(ev tea.KeyMsg) {
	if e.active == nil {
		return
	}
	e.active.keys = append(e.active.keys, ev)
}

// Stop finalizes the in-progress recording, excluding the terminating
// `q` keystroke (the caller must not have passed it to RecordKey), and
// stores it into the recorded register.
func (e *Engine) Stop() error {
	if e.active == nil {
		return ErrNotRecording
	}
	rec := e.active
	e.active = nil
	return e.regs.Set(rec.register, registers.MacroSlot(rec.keys))
}

// Play replays the macro in reg count times through dispatcher,
// recursing through nested @-plays up to maxDepth. reg '@' repeats the
// last-played register (Vim's `@@`).
func (e *Engine) Play(reg rune, count int, dispatcher capability.KeyDispatcher) error {
	if reg == '@' {
		if e.lastPlay == 0 {
			return fmt.Errorf("no previous macro to repeat")
		}
		reg = e.lastPlay
	}
	if count < 1 {
		count = 1
	}
	e.lastPlay = reg
	return e.play(reg, count, dispatcher)
}

func (e *Engine) play(reg rune, count int, dispatcher capability.KeyDispatcher) error {
	if e.depth >= e.maxDepth {
		return &ErrMacroDepthExceeded{Depth: e.maxDepth}
	}
	slot, ok := e.regs.Get(reg)
	if !ok || slot.Kind != registers.MacroKeys || len(slot.Keys) == 0 {
		return &ErrEmptyMacro{Register: reg}
	}

	e.depth++
	defer func() { e.depth-- }()

	for i := 0; i < count; i++ {
		for _, key := range slot.Keys {
			if err := dispatcher.DispatchKey(key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Depth reports the current replay nesting depth, for diagnostics.
func (e *Engine) Depth() int { return e.depth }
