package excmd

import "testing"

func TestParseSimpleCommand(t *testing.T) {
	p := NewParser()
	cmd, err := p.Parse("write")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Name != "write" || !cmd.Range.IsEmpty() {
		t.Fatalf("cmd = %+v, want name=write, empty range", cmd)
	}
}

func TestParseAliasResolution(t *testing.T) {
	p := NewParser()
	cmd, err := p.Parse("wq")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Name != "wquit" {
		t.Fatalf("cmd.Name = %q, want resolved alias 'wquit'", cmd.Name)
	}
}

func TestParseRangeCommaSeparated(t *testing.T) {
	p := NewParser()
	cmd, err := p.Parse("1,5delete")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Name != "delete" {
		t.Fatalf("cmd.Name = %q, want delete", cmd.Name)
	}
	if cmd.Range.Start.Kind != RangeLineNumber || cmd.Range.Start.Line != 1 {
		t.Fatalf("Range.Start = %+v, want line 1", cmd.Range.Start)
	}
	if cmd.Range.End.Kind != RangeLineNumber || cmd.Range.End.Line != 5 {
		t.Fatalf("Range.End = %+v, want line 5", cmd.Range.End)
	}
}

func TestParseRangeCurrentAndLast(t *testing.T) {
	p := NewParser()
	cmd, err := p.Parse(".,$write")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Range.Start.Kind != RangeCurrentLine {
		t.Fatalf("Range.Start.Kind = %v, want RangeCurrentLine", cmd.Range.Start.Kind)
	}
	if cmd.Range.End.Kind != RangeLastLine {
		t.Fatalf("Range.End.Kind = %v, want RangeLastLine", cmd.Range.End.Kind)
	}
}

func TestParseEntireBufferPercent(t *testing.T) {
	p := NewParser()
	cmd, err := p.Parse("%delete")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Range.Start.Line != 1 || cmd.Range.End.Kind != RangeLastLine {
		t.Fatalf("Range = %+v, want entire-buffer expansion", cmd.Range)
	}
}

func TestParseMarkRange(t *testing.T) {
	p := NewParser()
	cmd, err := p.Parse("'a,'bdelete")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Range.Start.Kind != RangeMark || cmd.Range.Start.Mark != 'a' {
		t.Fatalf("Range.Start = %+v, want mark a", cmd.Range.Start)
	}
	if cmd.Range.End.Kind != RangeMark || cmd.Range.End.Mark != 'b' {
		t.Fatalf("Range.End = %+v, want mark b", cmd.Range.End)
	}
}

func TestParseFlags(t *testing.T) {
	p := NewParser()
	cmd, err := p.Parse("quit!")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cmd.Flags.Force {
		t.Fatalf("Flags.Force = false, want true")
	}
}

func TestParseQuotedArgs(t *testing.T) {
	p := NewParser()
	cmd, err := p.Parse(`edit "my file.txt"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cmd.Args) != 1 || cmd.Args[0] != "my file.txt" {
		t.Fatalf("Args = %v, want [\"my file.txt\"]", cmd.Args)
	}
}

func TestParseEmptyCommandFails(t *testing.T) {
	p := NewParser()
	if _, err := p.Parse("   "); err == nil {
		t.Fatalf("expected error for empty command")
	}
}

func TestParseInvalidRangeFails(t *testing.T) {
	p := NewParser()
	if _, err := p.Parse("+xyzwrite"); err == nil {
		t.Fatalf("expected error for malformed offset range")
	}
}

func TestParseSemicolonRangeIsRelative(t *testing.T) {
	p := NewParser()
	cmd, err := p.Parse("1;+3delete")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cmd.Range.EndRelative {
		t.Fatalf("EndRelative = false, want true for ';' separator")
	}
}
