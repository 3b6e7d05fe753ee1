package excmd

import (
	"regexp"
	"strings"
)

// SubstituteFlags are the modifiers on `:s/pat/repl/flags`.
type SubstituteFlags struct {
	Global     bool // g: replace every match per line, not just the first
	IgnoreCase bool // i
	Confirm    bool // c: caller must prompt per match; this package only
	// reports matches, it never prompts (no I/O in this package).
}

// ParseSubstituteFlags reads the trailing flag letters of an `:s`
// argument's flags segment.
func ParseSubstituteFlags(s string) SubstituteFlags {
	var f SubstituteFlags
	for _, c := range s {
		switch c {
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'c':
			f.Confirm = true
		}
	}
	return f
}

// SplitSubstituteArg splits a `:s` command's single delimiter-joined
// argument (`/pattern/replacement/flags`, any non-alphanumeric
// delimiter) into its three parts.
func SplitSubstituteArg(arg string) (pattern, replacement, flags string, ok bool) {
	if arg == "" {
		return "", "", "", false
	}
	delim := rune(arg[0])
	parts := splitUnescaped(arg[1:], delim)
	if len(parts) < 2 {
		return "", "", "", false
	}
	pattern = parts[0]
	replacement = parts[1]
	if len(parts) > 2 {
		flags = parts[2]
	}
	return pattern, replacement, flags, true
}

func splitUnescaped(s string, delim rune) []string {
	var parts []string
	var cur strings.Builder
	escaped := false
	for _, c := range s {
		switch {
		case escaped:
			cur.WriteRune(c)
			escaped = false
		case c == '\\':
			cur.WriteRune(c)
			escaped = true
		case c == delim:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// SubstituteLines applies a pattern/replacement to lines[startIdx:endIdx]
// (0-based, end exclusive) of a copy of lines, leaving lines itself
// untouched, and returns that copy, the total number of individual
// substitutions made and the number of lines changed. Vim-
// style replacement syntax (`&` for the whole match, `\1` through `\9`
// for capture groups, `\&`/`\\N` as literal escapes) is translated to
// Go's regexp `$0`/`$1` syntax before substitution.
func SubstituteLines(lines []string, startIdx, endIdx int, pattern, replacement string, flags SubstituteFlags) ([]string, int, int, error) {
	expr := pattern
	if flags.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return lines, 0, 0, err
	}

	goReplacement := translateReplacement(replacement)
	substitutions := 0
	linesChanged := 0

	out := append([]string(nil), lines...)
	for i := startIdx; i < endIdx && i < len(out); i++ {
		line := out[i]
		matches := re.FindAllStringIndex(line, -1)
		if len(matches) == 0 {
			continue
		}
		var next string
		var count int
		if flags.Global {
			next = re.ReplaceAllString(line, goReplacement)
			count = len(matches)
		} else {
			loc := matches[0]
			next = line[:loc[0]] + re.ReplaceAllString(line[loc[0]:loc[1]], goReplacement) + line[loc[1]:]
			count = 1
		}
		if next != line {
			out[i] = next
			linesChanged++
			substitutions += count
		}
	}
	return out, substitutions, linesChanged, nil
}

func translateReplacement(repl string) string {
	var b strings.Builder
	escaped := false
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case escaped:
			switch {
			case c >= '0' && c <= '9':
				b.WriteByte('$')
				b.WriteByte(c)
			case c == '&':
				b.WriteByte('&')
			default:
				b.WriteByte(c)
			}
			escaped = false
		case c == '\\':
			escaped = true
		case c == '&':
			b.WriteString("$0")
		case c == '$':
			b.WriteString("$$")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
