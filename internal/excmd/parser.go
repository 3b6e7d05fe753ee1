package excmd

import (
	"strconv"
	"strings"
)

// rangeChars is the set of characters that can appear in a range
// prefix, matching original_source's parse_range character class.
const rangeChars = ".$'/?+-0123456789,;%"

// Parser parses ex command-line text into Commands, resolving aliases
// along the way.
type Parser struct {
	aliases map[string]string
}

func NewParser() *Parser {
	p := &Parser{aliases: make(map[string]string)}
	p.initAliases()
	return p
}

func (p *Parser) initAliases() {
	pairs := map[string]string{
		"w": "write", "wq": "wquit", "x": "xit", "q": "quit",
		"qa": "quitall", "wqa": "wquitall", "xa": "xitall",
		"e": "edit", "r": "read",
		"sp": "split", "vs": "vsplit", "clo": "close",
		"wn": "wnext", "wp": "wprevious", "on": "only",
		"tabe": "tabedit", "tabc": "tabclose",
		"tabn": "tabnext", "tabp": "tabprevious",
		"d": "delete", "y": "yank", "m": "move", "co": "copy", "t": "copy",
		"s": "substitute", "g": "global", "v": "vglobal",
		"u": "undo", "red": "redo", "se": "set",
		"noh": "nohlsearch", "reg": "registers", "marks": "marks",
		"norm": "normal", "bd": "bdelete", "b": "buffer",
	}
	for k, v := range pairs {
		p.aliases[k] = v
	}
}

// RegisterAlias adds or overrides an alias, for plugin-registered
// short names.
func (p *Parser) RegisterAlias(short, full string) { p.aliases[short] = full }

func (p *Parser) resolveAlias(name string) string {
	if full, ok := p.aliases[name]; ok {
		return full
	}
	return name
}

// Parse parses a single ex command line (without the leading `:`).
func (p *Parser) Parse(input string) (Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{}, &ErrInvalidCommand{Msg: "empty command"}
	}

	rng, rest, err := parseRange(trimmed)
	if err != nil {
		return Command{}, err
	}

	name, rest, err := parseCommandName(rest)
	if err != nil {
		return Command{}, err
	}

	flags, rest := parseFlags(rest)
	args := parseArgs(rest)

	return Command{
		Name:  p.resolveAlias(name),
		Range: rng,
		Flags: flags,
		Args:  args,
		Raw:   trimmed,
	}, nil
}

func parseRange(input string) (Range, string, error) {
	i := 0
	for i < len(input) && strings.ContainsRune(rangeChars, rune(input[i])) {
		switch c := input[i]; {
		case c == '\'' && i+1 < len(input):
			i += 2 // the mark name belongs to the address
		case c == '/' || c == '?':
			end := strings.IndexByte(input[i+1:], c)
			if end < 0 {
				i = len(input)
			} else {
				i += end + 2 // pattern plus its closing delimiter
			}
		default:
			i++
		}
	}
	rangeStr, rest := input[:i], input[i:]

	if rangeStr == "" {
		return Range{}, rest, nil
	}
	if rangeStr == "%" {
		return EntireBuffer(), rest, nil
	}

	if idx := strings.IndexByte(rangeStr, ','); idx >= 0 {
		r, _, err := parseTwoPart(rangeStr, idx, false)
		return r, rest, err
	}
	if idx := strings.IndexByte(rangeStr, ';'); idx >= 0 {
		r, _, err := parseTwoPart(rangeStr, idx, true)
		return r, rest, err
	}

	spec, err := parseRangeSpec(rangeStr)
	if err != nil {
		return Range{}, rest, err
	}
	return Range{Start: &spec}, rest, nil
}

func parseTwoPart(s string, sep int, relative bool) (Range, string, error) {
	left, right := s[:sep], s[sep+1:]
	var r Range
	r.EndRelative = relative
	if left != "" {
		spec, err := parseRangeSpec(left)
		if err != nil {
			return Range{}, "", err
		}
		r.Start = &spec
	}
	if right != "" {
		spec, err := parseRangeSpec(right)
		if err != nil {
			return Range{}, "", err
		}
		r.End = &spec
	}
	return r, "", nil
}

func parseRangeSpec(s string) (RangeSpec, error) {
	switch {
	case s == ".":
		return RangeSpec{Kind: RangeCurrentLine}, nil
	case s == "$":
		return RangeSpec{Kind: RangeLastLine}, nil
	case strings.HasPrefix(s, "'") && len(s) == 2:
		return RangeSpec{Kind: RangeMark, Mark: rune(s[1])}, nil
	case strings.HasPrefix(s, "/") && len(s) > 1:
		return RangeSpec{Kind: RangeSearch, Pattern: strings.TrimSuffix(s[1:], "/")}, nil
	case strings.HasPrefix(s, "?") && len(s) > 1:
		return RangeSpec{Kind: RangeSearch, Pattern: strings.TrimSuffix(s[1:], "?")}, nil
	case strings.HasPrefix(s, "+"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
		if err != nil {
			return RangeSpec{}, &ErrInvalidRange{Msg: "invalid offset: " + s}
		}
		return RangeSpec{Kind: RangeOffset, Offset: n}, nil
	case strings.HasPrefix(s, "-"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "-"))
		if err != nil {
			return RangeSpec{}, &ErrInvalidRange{Msg: "invalid offset: " + s}
		}
		return RangeSpec{Kind: RangeOffset, Offset: -n}, nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return RangeSpec{}, &ErrInvalidRange{Msg: "invalid range: " + s}
		}
		return RangeSpec{Kind: RangeLineNumber, Line: n}, nil
	}
}

func parseCommandName(input string) (string, string, error) {
	input = strings.TrimLeft(input, " \t")
	if input == "" {
		return "", "", &ErrInvalidCommand{Msg: "missing command name"}
	}
	i := 0
	for i < len(input) && isAlpha(rune(input[i])) {
		i++
	}
	if i == 0 {
		return "", "", &ErrInvalidCommand{Msg: "invalid command name"}
	}
	return input[:i], input[i:], nil
}

func isAlpha(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func parseFlags(input string) (Flags, string) {
	var f Flags
	i := 0
	for i < len(input) {
		switch input[i] {
		case '!':
			f.Force = true
		case 'p':
			f.Print = true
		case 'l':
			f.List = true
		case '#':
			f.Number = true
		default:
			return f, input[i:]
		}
		i++
	}
	return f, input[i:]
}

func parseArgs(input string) []string {
	input = strings.TrimLeft(input, " \t")
	if input == "" {
		return nil
	}

	var args []string
	var cur strings.Builder
	inQuotes := false
	escaped := false

	for _, c := range input {
		switch {
		case escaped:
			cur.WriteRune(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
		case isSpace(c) && !inQuotes:
			if cur.Len() > 0 {
				args = append(args, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(c)
		}
	}
	if cur.Len() > 0 {
		args = append(args, cur.String())
	}
	return args
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }
