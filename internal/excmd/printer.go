package excmd

import "strings"

// Print renders cmd back into canonical ex command-line text. Parsing
// Print(cmd) reproduces a Command equal to cmd in every field that
// affects execution (name, range, flags, args) — the round-trip
// invariant of spec.md §8 invariant #7. Only Raw is allowed to differ,
// since Raw records the original user text verbatim rather than the
// canonical rendering.
func Print(cmd Command) string {
	var b strings.Builder

	b.WriteString(printRange(cmd.Range))
	b.WriteString(cmd.Name)
	b.WriteString(printFlags(cmd.Flags))

	for _, arg := range cmd.Args {
		b.WriteByte(' ')
		if strings.ContainsAny(arg, " \t") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(arg, `"`, `\"`))
			b.WriteByte('"')
		} else {
			b.WriteString(arg)
		}
	}

	return b.String()
}

func printRange(r Range) string {
	if r.IsEmpty() {
		return ""
	}
	if r.End == nil {
		return printSpec(*r.Start)
	}
	sep := ","
	if r.EndRelative {
		sep = ";"
	}
	start := ""
	if r.Start != nil {
		start = printSpec(*r.Start)
	}
	return start + sep + printSpec(*r.End)
}

func printSpec(s RangeSpec) string {
	switch s.Kind {
	case RangeCurrentLine:
		return "."
	case RangeLastLine:
		return "$"
	case RangeLineNumber:
		return itoa(s.Line)
	case RangeMark:
		return "'" + string(s.Mark)
	case RangeSearch:
		return "/" + s.Pattern + "/"
	case RangeOffset:
		if s.Offset >= 0 {
			return "+" + itoa(s.Offset)
		}
		return itoa(s.Offset)
	}
	return ""
}

func printFlags(f Flags) string {
	var b strings.Builder
	if f.Force {
		b.WriteByte('!')
	}
	if f.Print {
		b.WriteByte('p')
	}
	if f.List {
		b.WriteByte('l')
	}
	if f.Number {
		b.WriteByte('#')
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
