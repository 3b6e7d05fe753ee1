package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyxed/edcore/internal/capability"
	"github.com/nyxed/edcore/internal/excmd"
	"github.com/nyxed/edcore/internal/layout"
	"github.com/nyxed/edcore/internal/marks"
	"github.com/nyxed/edcore/internal/registers"
)

// RegisterBuiltins wires the Ex-Command Pipeline's built-in command
// table. File-system operations (`:write`, `:edit`, `:read`) are not
// modeled here: spec.md keeps persistence out of the core's scope (the
// host supplies a Buffer that is already backed by whatever storage it
// likes), so those names only adjust window/tab/quit-family state the
// core does own.
func RegisterBuiltins(e *Editor) {
	r := e.Commands.Registry

	r.RegisterBuiltin("quit", handleQuit(e))
	r.RegisterBuiltin("wquit", handleQuit(e)) // write step is the host's concern; quit half is ours
	r.RegisterBuiltin("xit", handleQuit(e))
	r.RegisterBuiltin("quitall", handleQuitAll(e))
	r.RegisterBuiltin("wquitall", handleQuitAll(e))
	r.RegisterBuiltin("xitall", handleQuitAll(e))

	r.RegisterBuiltin("split", handleSplit(e, capability.Horizontal))
	r.RegisterBuiltin("vsplit", handleSplit(e, capability.Vertical))
	r.RegisterBuiltin("close", handleClose(e))
	r.RegisterBuiltin("only", handleOnly(e))
	r.RegisterBuiltin("wnext", handleWNext(e))
	r.RegisterBuiltin("wprevious", handleWPrevious(e))

	r.RegisterBuiltin("tabedit", handleTabEdit(e))
	r.RegisterBuiltin("tabclose", handleTabClose(e))
	r.RegisterBuiltin("tabnext", handleTabNext(e))
	r.RegisterBuiltin("tabprevious", handleTabPrevious(e))

	r.RegisterBuiltin("delete", handleDelete(e))
	r.RegisterBuiltin("yank", handleYank(e))
	r.RegisterBuiltin("put", handlePut(e))
	r.RegisterBuiltin("copy", handleCopy(e))
	r.RegisterBuiltin("move", handleMove(e))
	r.RegisterBuiltin("substitute", handleSubstitute(e))
	r.RegisterBuiltin("global", handleGlobal(e, false))
	r.RegisterBuiltin("vglobal", handleGlobal(e, true))

	r.RegisterBuiltin("undo", handleUndo(e))
	r.RegisterBuiltin("redo", handleRedo(e))

	r.RegisterBuiltin("mark", handleMark(e))
	r.RegisterBuiltin("marks", handleMarksList(e))
	r.RegisterBuiltin("delmarks", handleDelmarks(e))
	r.RegisterBuiltin("clearjumps", handleClearJumps(e))
	r.RegisterBuiltin("registers", handleRegistersList(e))

	r.RegisterBuiltin("record", handleRecord(e))
	r.RegisterBuiltin("stoprecord", handleStopRecord(e))
	r.RegisterBuiltin("playback", handlePlayback(e))
	r.RegisterBuiltin("wincmd", handleWincmd(e))

	r.RegisterBuiltin("normal", handleNormal(e))
	r.RegisterBuiltin("set", handleSet(e))
	r.RegisterBuiltin("nohlsearch", handleNohlsearch(e))
}

func handleQuit(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		return e.Layout.Close()
	}
}

func handleQuitAll(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		for len(e.Layout.Tabs()) > 1 {
			if err := e.Layout.CloseTab(); err != nil {
				return err
			}
		}
		return nil
	}
}

func handleSplit(e *Editor, dir capability.Direction) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		return e.Layout.Split(dir, e.BufferID)
	}
}

func handleClose(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		return e.Layout.Close()
	}
}

func handleOnly(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		for len(layout.Leaves(e.Layout.CurrentTab().Root)) > 1 {
			current := e.Layout.CurrentWindow().WindowID
			e.Layout.NextWindow()
			if e.Layout.CurrentWindow().WindowID == current {
				break
			}
			if err := e.Layout.Close(); err != nil {
				return err
			}
			e.Layout.FocusWindow(current)
		}
		return nil
	}
}

func handleWNext(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { e.Layout.NextWindow(); return nil }
}

func handleWPrevious(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { e.Layout.PrevWindow(); return nil }
}

func handleTabEdit(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		name := cmd.FirstArg()
		return e.Layout.NewTab(e.BufferID, name)
	}
}

func handleTabClose(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { return e.Layout.CloseTab() }
}

func handleTabNext(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { e.Layout.NextTab(); return nil }
}

func handleTabPrevious(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { e.Layout.PrevTab(); return nil }
}

func handleDelete(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		start, end, err := excmd.Resolve(cmd.Range, e)
		if err != nil {
			return err
		}
		var deleted []string
		for i := start; i <= end; i++ {
			line, err := e.Buffer.Line(i - 1)
			if err != nil {
				return capability.Wrap("buffer", err)
			}
			deleted = append(deleted, line)
		}
		startIdx := e.Buffer.PositionToCharIdx(start-1, 0)
		endLine, _ := e.Buffer.Line(end - 1)
		endIdx := e.Buffer.PositionToCharIdx(end-1, len([]rune(endLine))) + 1
		if err := e.Buffer.Delete(startIdx, endIdx); err != nil {
			return capability.Wrap("buffer", err)
		}
		reg := e.Registers.Default()
		if len(cmd.Args) > 0 && len(cmd.Args[0]) == 1 {
			reg = rune(cmd.Args[0][0])
		}
		return e.Registers.Set(reg, registerLineSlot(deleted))
	}
}

func handleYank(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		start, end, err := excmd.Resolve(cmd.Range, e)
		if err != nil {
			return err
		}
		var lines []string
		for i := start; i <= end; i++ {
			line, err := e.Buffer.Line(i - 1)
			if err != nil {
				return capability.Wrap("buffer", err)
			}
			lines = append(lines, line)
		}
		reg := e.Registers.Default()
		if len(cmd.Args) > 0 && len(cmd.Args[0]) == 1 {
			reg = rune(cmd.Args[0][0])
		}
		return e.Registers.Set(reg, registerLineSlot(lines))
	}
}

// handlePut implements `:put {register}` (`:pu`), inserting the named
// register's content as whole lines after the resolved address (the
// current line by default), the line-oriented sibling of normal-mode
// `p`/`P`.
func handlePut(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		reg := e.Registers.Default()
		if a := cmd.FirstArg(); len(a) == 1 {
			reg = rune(a[0])
		}
		slot, ok := e.Registers.Get(reg)
		if !ok || slot.IsEmpty() {
			return nil
		}
		_, end, err := excmd.Resolve(cmd.Range, e)
		if err != nil {
			return err
		}
		lines := putLines(slot)
		if err := insertLinesAfter(e, end, lines); err != nil {
			return err
		}
		e.Cursor.Line = end
		e.Cursor.Col = 0
		setSpanMarks(e, end, lines)
		return nil
	}
}

// putLines normalizes a register slot into the whole lines `:put`
// inserts, splitting charwise content on newlines the way a charwise
// yank pasted linewise would be.
func putLines(slot registers.Slot) []string {
	if slot.Kind == registers.CharWise {
		return strings.Split(slot.Text, "\n")
	}
	return append([]string(nil), slot.Lines...)
}

// insertLinesAfter inserts lines immediately after 1-based line
// afterLine (0 inserts before the first line), the shared plumbing
// behind `:put`, `:copy`, and `:move`.
func insertLinesAfter(e *Editor, afterLine int, lines []string) error {
	text := strings.Join(lines, "\n")
	n := e.Buffer.LineCount()
	if afterLine >= n {
		idx := len([]rune(e.Buffer.Content()))
		return capability.Wrap("buffer", e.Buffer.Insert(idx, "\n"+text))
	}
	idx := e.Buffer.PositionToCharIdx(afterLine, 0)
	return capability.Wrap("buffer", e.Buffer.Insert(idx, text+"\n"))
}

// setSpanMarks records the `[`/`]` marks over the lines just inserted
// starting at 1-based afterLine+1, using vim's inclusive last-character
// convention for `]`.
func setSpanMarks(e *Editor, afterLine int, lines []string) {
	if len(lines) == 0 {
		return
	}
	lastCol := len([]rune(lines[len(lines)-1]))
	if lastCol > 0 {
		lastCol--
	}
	e.Marks.Set('[', marks.Position{BufferID: e.BufferID, Line: afterLine, Col: 0})
	e.Marks.Set(']', marks.Position{BufferID: e.BufferID, Line: afterLine + len(lines) - 1, Col: lastCol})
}

func handleCopy(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { return copyOrMoveLines(e, cmd, false) }
}

func handleMove(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { return copyOrMoveLines(e, cmd, true) }
}

// copyOrMoveLines implements `:copy`/`:t` and `:move`/`:m`: resolve the
// source range, resolve the destination address, then either copy the
// source lines after the destination or delete-and-reinsert them there.
func copyOrMoveLines(e *Editor, cmd excmd.Command, move bool) error {
	start, end, err := excmd.Resolve(cmd.Range, e)
	if err != nil {
		return err
	}
	dest, err := resolveDestAddr(e, cmd.FirstArg())
	if err != nil {
		return err
	}

	var block []string
	for i := start; i <= end; i++ {
		line, err := e.Buffer.Line(i - 1)
		if err != nil {
			return capability.Wrap("buffer", err)
		}
		block = append(block, line)
	}

	if move {
		startIdx := e.Buffer.PositionToCharIdx(start-1, 0)
		endLine, _ := e.Buffer.Line(end - 1)
		endIdx := e.Buffer.PositionToCharIdx(end-1, len([]rune(endLine))) + 1
		if err := e.Buffer.Delete(startIdx, endIdx); err != nil {
			return capability.Wrap("buffer", err)
		}
		switch {
		case dest > end:
			dest -= end - start + 1
		case dest >= start:
			dest = start - 1
		}
	}

	if err := insertLinesAfter(e, dest, block); err != nil {
		return err
	}
	e.Cursor.Line = dest
	e.Cursor.Col = 0
	setSpanMarks(e, dest, block)
	return nil
}

// resolveDestAddr parses the single address argument `:copy`/`:move`
// take for their destination, returning a 1-based "insert after this
// line" value (0 meaning before the first line).
func resolveDestAddr(e *Editor, arg string) (int, error) {
	switch {
	case arg == "":
		return e.CurrentLine(), nil
	case arg == "$":
		return e.LastLine(), nil
	case arg == ".":
		return e.CurrentLine(), nil
	case strings.HasPrefix(arg, "'") && len(arg) == 2:
		return e.MarkLine(rune(arg[1]))
	default:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return 0, &excmd.ErrInvalidArgument{Msg: "invalid destination: " + arg}
		}
		return n, nil
	}
}

func handleSubstitute(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		start, end, err := excmd.Resolve(cmd.Range, e)
		if err != nil {
			return err
		}
		pattern, replacement, flagStr, ok := excmd.SplitSubstituteArg(cmd.ArgsString())
		if !ok {
			return &excmd.ErrMissingArgument{Msg: "substitute needs /pattern/replacement/"}
		}
		flags := excmd.ParseSubstituteFlags(flagStr)

		var all []string
		n := e.Buffer.LineCount()
		for i := 0; i < n; i++ {
			line, _ := e.Buffer.Line(i)
			all = append(all, line)
		}
		next, substitutions, linesChanged, err := excmd.SubstituteLines(all, start-1, end, pattern, replacement, flags)
		if err != nil {
			return err
		}
		e.Buffer.SetContent(strings.Join(next, "\n"))
		if substitutions > 0 {
			e.LastNotice = fmt.Sprintf("%d substitution%s on %d line%s",
				substitutions, plural(substitutions), linesChanged, plural(linesChanged))
		}
		return nil
	}
}

func handleGlobal(e *Editor, invert bool) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		pattern, subCmd, ok := splitGlobalArg(cmd.ArgsString())
		if !ok {
			return &excmd.ErrMissingArgument{Msg: "global needs /pattern/command"}
		}
		caseSensitive := true
		matches, err := e.Buffer.Search(pattern, caseSensitive)
		if err != nil {
			return err
		}
		matchSet := map[int]bool{}
		for _, m := range matches {
			matchSet[m.Line] = true
		}
		var targetLines []int
		n := e.Buffer.LineCount()
		for i := 0; i < n; i++ {
			if matchSet[i] != invert {
				targetLines = append(targetLines, i+1)
			}
		}
		processed, err := excmd.RunGlobal(targetLines, func(line int) error {
			e.Cursor.Line = line - 1
			return e.ExecuteLine(subCmd)
		})
		if err != nil {
			return err
		}
		e.LastNotice = fmt.Sprintf("%d line%s processed", processed, plural(processed))
		return nil
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func splitGlobalArg(arg string) (pattern, subCmd string, ok bool) {
	if arg == "" || arg[0] != '/' {
		return "", "", false
	}
	rest := arg[1:]
	idx := strings.IndexByte(rest, '/')
	if idx < 0 {
		return "", "", false
	}
	return rest[:idx], strings.TrimSpace(rest[idx+1:]), true
}

func handleUndo(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { e.Buffer.Undo(); return nil }
}

func handleRedo(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { e.Buffer.Redo(); return nil }
}

func handleMark(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		if len(cmd.Args) == 0 || len(cmd.Args[0]) != 1 {
			return &excmd.ErrMissingArgument{Msg: "mark needs a single-character name"}
		}
		return e.Marks.Set(rune(cmd.Args[0][0]), marks.Position{BufferID: e.BufferID, Line: e.Cursor.Line, Col: e.Cursor.Col})
	}
}

func handleMarksList(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { return nil } // display is a UI concern
}

func handleRegistersList(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { return nil } // display is a UI concern
}

func handleDelmarks(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		if cmd.Flags.Force {
			e.Marks.DeleteLocalMarks()
			return nil
		}
		arg := cmd.ArgsString()
		if idx := strings.IndexByte(arg, '-'); idx == 1 && len(arg) == 3 {
			e.Marks.DeleteRange(rune(arg[0]), rune(arg[2]))
			return nil
		}
		for _, r := range arg {
			if r == ' ' {
				continue
			}
			e.Marks.Delete(r)
		}
		return nil
	}
}

func handleNormal(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		keys := strings.TrimPrefix(cmd.Raw, "normal")
		keys = strings.TrimPrefix(keys, "!")
		keys = strings.TrimSpace(keys)
		return excmd.RunNormal(keys, func(r rune) error {
			return e.DispatchKey(runeKeyMsg(r))
		})
	}
}

func handleSet(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		for _, arg := range cmd.Args {
			switch arg {
			case "ignorecase":
				e.SetGlobalCaseSensitive(false)
			case "noignorecase":
				e.SetGlobalCaseSensitive(true)
			}
		}
		return nil
	}
}

func handleNohlsearch(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		e.Search.SetResults(nil, 0, 0)
		return nil
	}
}

// handleClearJumps implements `:clearjumps`, discarding the jump list's
// back/forward history without touching any mark.
func handleClearJumps(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		e.Jumps.Clear()
		return nil
	}
}

// handleRecord implements `:record {register}`, the ex-command form of
// normal-mode `q{register}`.
func handleRecord(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		arg := cmd.FirstArg()
		if len(arg) != 1 {
			return &excmd.ErrMissingArgument{Msg: "record needs a single-character register"}
		}
		return e.Macros.Start(rune(arg[0]))
	}
}

// handleStopRecord implements `:stoprecord`, the ex-command form of the
// second normal-mode `q` that ends a recording.
func handleStopRecord(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error { return e.Macros.Stop() }
}

// handlePlayback implements `:playback {register} [count]`, the
// ex-command form of normal-mode `@{register}`.
func handlePlayback(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		arg := cmd.FirstArg()
		if len(arg) != 1 {
			return &excmd.ErrMissingArgument{Msg: "playback needs a single-character register"}
		}
		count := 1
		if len(cmd.Args) > 1 {
			if n, err := strconv.Atoi(cmd.Args[1]); err == nil {
				count = n
			}
		}
		return e.Macros.Play(rune(arg[0]), count, e.Dispatch)
	}
}

// handleWincmd implements `:wincmd {letter}`, the ex-command form of
// the normal-mode Ctrl-W window-command prefix, sharing its letter
// mapping.
func handleWincmd(e *Editor) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		arg := cmd.FirstArg()
		if len(arg) != 1 {
			return &excmd.ErrMissingArgument{Msg: "wincmd needs a single-character target"}
		}
		switch arg[0] {
		case 's':
			return e.Layout.Split(capability.Horizontal, e.BufferID)
		case 'v':
			return e.Layout.Split(capability.Vertical, e.BufferID)
		case 'c':
			return e.Layout.Close()
		case 'o':
			return handleOnly(e)(ctx, cmd)
		case 'w':
			e.Layout.NextWindow()
		case 'W', 'p':
			e.Layout.PrevWindow()
		case 'j', 'l':
			e.Layout.NextWindow()
		case 'k', 'h':
			e.Layout.PrevWindow()
		}
		return nil
	}
}
