package registers

import (
	"testing"

	"github.com/nyxed/edcore/internal/capability"
)

func TestUnnamedMirrorsEveryWrite(t *testing.T) {
	s := New(nil, nil)
	if err := s.Set('a', Char("hello")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := s.Get(Unnamed)
	if !ok || got.Text != "hello" {
		t.Fatalf("unnamed register = %+v, want mirrored 'hello'", got)
	}
}

func TestBlackHoleDiscardsAndNeverMirrors(t *testing.T) {
	s := New(nil, nil)
	s.Set('a', Char("keep"))
	if err := s.Set(BlackHole, Char("gone")); err != nil {
		t.Fatalf("Set black hole: %v", err)
	}
	if _, ok := s.Get(BlackHole); ok {
		t.Fatalf("black hole register should never hold content")
	}
	if got, _ := s.Get(Unnamed); got.Text != "gone" && got.Text != "keep" {
		// Unnamed must not have been overwritten with the discarded text.
	}
	if got, _ := s.Get(Unnamed); got.Text == "gone" {
		t.Fatalf("black hole write leaked into unnamed register")
	}
}

func TestUppercaseAppendsToLowercasePeer(t *testing.T) {
	s := New(nil, nil)
	s.Set('a', Char("foo"))
	s.Set('A', Char("bar"))
	got, ok := s.Get('a')
	if !ok || got.Text != "foobar" {
		t.Fatalf("register a = %+v, want appended 'foobar'", got)
	}
}

func TestUppercaseAppendLineWise(t *testing.T) {
	s := New(nil, nil)
	s.Set('q', LineSlot([]string{"one"}))
	s.Set('Q', LineSlot([]string{"two"}))
	got, _ := s.Get('q')
	if got.Kind != LineWise || len(got.Lines) != 2 || got.Lines[0] != "one" || got.Lines[1] != "two" {
		t.Fatalf("register q = %+v, want linewise [one two]", got)
	}
}

func TestNumberedRegisterShift(t *testing.T) {
	// Scenario #1 (yank-to-numbered): successive named-register writes
	// shift 0-8 into 1-9 and place the newest content in "0.
	s := New(nil, nil)
	s.Set('a', Char("first"))
	if got, _ := s.Get('0'); got.Text != "first" {
		t.Fatalf("register 0 = %+v after first write, want 'first'", got)
	}
	s.Set('b', Char("second"))
	if got, _ := s.Get('0'); got.Text != "second" {
		t.Fatalf("register 0 = %+v after second write, want 'second'", got)
	}
	if got, _ := s.Get('1'); got.Text != "first" {
		t.Fatalf("register 1 = %+v, want shifted 'first'", got)
	}
}

func TestInvalidRegisterName(t *testing.T) {
	s := New(nil, nil)
	err := s.Set('!', Char("x"))
	if err == nil {
		t.Fatalf("expected ErrInvalidRegister for '!'")
	}
	if _, ok := err.(*ErrInvalidRegister); !ok {
		t.Fatalf("error type = %T, want *ErrInvalidRegister", err)
	}
}

func TestClipboardRegistersMirrorHostClipboard(t *testing.T) {
	clip := capability.NewMemClipboard()
	s := New(clip, nil)
	s.Set(ClipboardSel, Char("clip text"))
	read, err := clip.Read(ClipboardSel)
	if err != nil || read != "clip text" {
		t.Fatalf("host clipboard = %q, %v, want 'clip text'", read, err)
	}
	got, ok := s.Get(ClipboardSel)
	if !ok || got.Text != "clip text" {
		t.Fatalf("Get(*) = %+v, want 'clip text'", got)
	}
}

type fakeSearch struct{ pattern string }

func (f *fakeSearch) Pattern() string     { return f.pattern }
func (f *fakeSearch) SetPattern(p string) { f.pattern = p }

func TestSearchRegisterMirrorsPattern(t *testing.T) {
	fs := &fakeSearch{}
	s := New(nil, fs)
	s.Set(SearchReg, Char("needle"))
	if fs.pattern != "needle" {
		t.Fatalf("search pattern = %q, want 'needle'", fs.pattern)
	}
	got, ok := s.Get(SearchReg)
	if !ok || got.Text != "needle" {
		t.Fatalf("Get(/) = %+v, want 'needle'", got)
	}
}

func TestDefaultRegisterSwitch(t *testing.T) {
	s := New(nil, nil)
	if s.Default() != Unnamed {
		t.Fatalf("initial default = %q, want unnamed", s.Default())
	}
	s.SetDefault('a')
	if s.Default() != 'a' {
		t.Fatalf("default after SetDefault = %q, want 'a'", s.Default())
	}
}
