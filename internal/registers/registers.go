// Package registers implements the Vim-style typed clipboard slots of
// spec.md §4.A: named, numbered, and special registers with the append,
// mirror, and numbered-shift algebra from §3's invariants.
//
// Grounded on original_source/src/register/mod.rs (RegisterType,
// RegisterContent, RegisterManager.set_register), reshaped into Go's
// enum-over-inheritance idiom per spec.md §9 ("RegisterSlot ... naturally
// tagged unions; avoid any form of subtype polymorphism").
package registers

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/capability"
)

// Kind tags the shape of a register's content.
type Kind int

const (
	CharWise Kind = iota
	LineWise
	BlockWise
	MacroKeys
)

// Slot is a RegisterSlot: a discriminated value for one register.
type Slot struct {
	Kind  Kind
	Text  string        // valid when Kind == CharWise
	Lines []string       // valid when Kind == LineWise or BlockWise
	Keys  []tea.KeyMsg   // valid when Kind == MacroKeys
}

func Char(text string) Slot        { return Slot{Kind: CharWise, Text: text} }
func LineSlot(lines []string) Slot { return Slot{Kind: LineWise, Lines: append([]string(nil), lines...)} }
func BlockSlot(lines []string) Slot {
	return Slot{Kind: BlockWise, Lines: append([]string(nil), lines...)}
}
func MacroSlot(keys []tea.KeyMsg) Slot {
	return Slot{Kind: MacroKeys, Keys: append([]tea.KeyMsg(nil), keys...)}
}

// IsEmpty reports whether the slot holds no content.
func (s Slot) IsEmpty() bool {
	switch s.Kind {
	case CharWise:
		return s.Text == ""
	case LineWise, BlockWise:
		return len(s.Lines) == 0
	case MacroKeys:
		return len(s.Keys) == 0
	}
	return true
}

// append concatenates same-kind content; cross-kind append replaces,
// per spec.md §4.A rule 1.
func appendSlot(existing, next Slot) Slot {
	if existing.Kind != next.Kind {
		return next
	}
	switch existing.Kind {
	case CharWise:
		return Char(existing.Text + next.Text)
	case LineWise:
		return LineSlot(append(append([]string(nil), existing.Lines...), next.Lines...))
	case BlockWise:
		return BlockSlot(append(append([]string(nil), existing.Lines...), next.Lines...))
	case MacroKeys:
		return MacroSlot(append(append([]tea.KeyMsg(nil), existing.Keys...), next.Keys...))
	}
	return next
}

// ErrInvalidRegister is returned when a register name character does
// not belong to any of the four name classes in spec.md §3.
type ErrInvalidRegister struct{ Name rune }

func (e *ErrInvalidRegister) Error() string {
	return fmt.Sprintf("invalid register name %q", e.Name)
}

const (
	Unnamed      = '"'
	SmallDelete  = '-'
	BlackHole    = '_'
	ClipboardSel = '*'
	Selection    = '+'
	SearchReg    = '/'
	CommandReg   = ':'
	FileNameReg  = '%'
	AlternateReg = '#'
	LastInsert   = '.'
)

func isNamed(r rune) bool    { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isNumbered(r rune) bool { return r >= '0' && r <= '9' }
func isSpecial(r rune) bool {
	switch r {
	case Unnamed, SmallDelete, BlackHole, ClipboardSel, Selection, SearchReg, CommandReg, FileNameReg, AlternateReg, LastInsert:
		return true
	}
	return false
}

func valid(r rune) bool { return isNamed(r) || isNumbered(r) || isSpecial(r) }

// SearchPatternSource gives the Store read/write access to the active
// search pattern, which the "/" register mirrors per spec.md §4.A.
type SearchPatternSource interface {
	Pattern() string
	SetPattern(string)
}

// Store is the Register Store of spec.md §4.A.
type Store struct {
	slots      map[rune]Slot
	defaultReg rune
	clipboard  capability.Clipboard
	search     SearchPatternSource
}

// New creates an empty register store. clipboard and search may be nil;
// when nil, "*"/"+" and "/" behave as ordinary registers kept in the
// store itself (tests that don't need those integrations can omit them).
func New(clipboard capability.Clipboard, search SearchPatternSource) *Store {
	return &Store{
		slots:      make(map[rune]Slot),
		defaultReg: Unnamed,
		clipboard:  clipboard,
		search:     search,
	}
}

// Default returns the current default register name.
func (s *Store) Default() rune { return s.defaultReg }

// SetDefault changes the default register name (e.g. after `"a`).
func (s *Store) SetDefault(name rune) { s.defaultReg = name }

// Clear removes all register content.
func (s *Store) Clear() {
	s.slots = make(map[rune]Slot)
}

// Get returns the slot stored at name, following the special-register
// read semantics of spec.md §4.A (system clipboard and search pattern).
func (s *Store) Get(name rune) (Slot, bool) {
	lname := lowerIfNamed(name)

	switch lname {
	case ClipboardSel, Selection:
		if s.clipboard != nil {
			text, err := s.clipboard.Read(lname)
			if err == nil {
				return Char(text), text != ""
			}
		}
	case SearchReg:
		if s.search != nil {
			return Char(s.search.Pattern()), true
		}
	}

	slot, ok := s.slots[lname]
	return slot, ok
}

// Set stores slot at name, applying the full register algebra of
// spec.md §4.A. Returns ErrInvalidRegister for unknown name characters.
func (s *Store) Set(name rune, slot Slot) error {
	if !valid(name) {
		return &ErrInvalidRegister{Name: name}
	}

	// Rule 1: uppercase named registers append to their lowercase peer.
	if isNamed(name) && isUpper(name) {
		lower := lowerRune(name)
		if existing, ok := s.slots[lower]; ok {
			slot = appendSlot(existing, slot)
		}
		name = lower
	}

	// Rule 2: black hole discards, never mirrors.
	if name == BlackHole {
		return nil
	}

	// System registers mirror to the host clipboard.
	if name == ClipboardSel || name == Selection {
		if s.clipboard != nil {
			s.clipboard.Write(name, textOf(slot))
		}
	}
	if name == SearchReg && s.search != nil {
		s.search.SetPattern(textOf(slot))
	}

	// Rule 3: store.
	s.slots[name] = slot

	// Rule 4: mirror into the unnamed register.
	if name != Unnamed {
		s.slots[Unnamed] = slot
	}

	// Rule 5: numbered shift. Vim itself splits this into a
	// yank-only "0 and a delete-only "1-"9 chain; this store uses one
	// unified chain for every unnamed or named write (see SPEC_FULL.md
	// Open Questions), so both `yank` and `delete` without an explicit
	// register populate "0 and shift "1-"9 the same way.
	if isNamed(name) || name == Unnamed {
		for i := 9; i >= 1; i-- {
			if prev, ok := s.slots[rune('0'+i-1)]; ok {
				s.slots[rune('0'+i)] = prev
			}
		}
		s.slots['0'] = slot
	}

	return nil
}

// SetByChar is a convenience wrapper returning a bool like the
// original's set_register_by_char, for callers that prefer it.
func (s *Store) SetByChar(c rune, slot Slot) bool {
	return s.Set(c, slot) == nil
}

// All returns a copy of every populated register, for `:registers`.
func (s *Store) All() map[rune]Slot {
	out := make(map[rune]Slot, len(s.slots))
	for k, v := range s.slots {
		out[k] = v
	}
	return out
}

func lowerIfNamed(r rune) rune {
	if isNamed(r) {
		return lowerRune(r)
	}
	return r
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func lowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

func textOf(s Slot) string {
	switch s.Kind {
	case CharWise:
		return s.Text
	case LineWise, BlockWise:
		return strings.Join(s.Lines, "\n")
	default:
		return ""
	}
}
