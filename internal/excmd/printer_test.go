package excmd

import "testing"

// TestPrintParseRoundTrip covers spec.md §8 invariant #7: printing a
// parsed command and reparsing it must reproduce the same execution
// semantics (name, range, flags, args).
func TestPrintParseRoundTrip(t *testing.T) {
	p := NewParser()
	inputs := []string{
		"write",
		"1,5delete",
		".,$substitute",
		"quit!",
		`edit "my file.txt"`,
		"'a,'bdelete",
		"%delete",
	}

	for _, in := range inputs {
		cmd, err := p.Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		printed := Print(cmd)
		reparsed, err := p.Parse(printed)
		if err != nil {
			t.Fatalf("re-Parse(%q) (from %q): %v", printed, in, err)
		}
		if reparsed.Name != cmd.Name {
			t.Errorf("round trip of %q: Name %q != %q", in, reparsed.Name, cmd.Name)
		}
		if reparsed.Flags != cmd.Flags {
			t.Errorf("round trip of %q: Flags %+v != %+v", in, reparsed.Flags, cmd.Flags)
		}
		if len(reparsed.Args) != len(cmd.Args) {
			t.Errorf("round trip of %q: Args %v != %v", in, reparsed.Args, cmd.Args)
		}
		if !rangesEqual(reparsed.Range, cmd.Range) {
			t.Errorf("round trip of %q: Range %+v != %+v", in, reparsed.Range, cmd.Range)
		}
	}
}

func rangesEqual(a, b Range) bool {
	if (a.Start == nil) != (b.Start == nil) || (a.End == nil) != (b.End == nil) {
		return false
	}
	if a.Start != nil && *a.Start != *b.Start {
		return false
	}
	if a.End != nil && *a.End != *b.End {
		return false
	}
	return true
}
