package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/nyxed/edcore/internal/capability"
	"github.com/nyxed/edcore/internal/editor"
	"github.com/nyxed/edcore/internal/excmd"
)

// registerHostCommands wires the ex-commands spec.md §4.F leaves to
// "whatever owns actual file/process I/O" onto this Model: persistence
// (:write/:edit/:read) and the :terminal buffer spawn, neither of which
// the core package touches per builtins.go's own comment that
// file-system operations are the host's concern.
func registerHostCommands(m *Model) {
	reg := m.ed.Commands.Registry

	reg.Register("write", handleWrite(m))
	reg.Register("edit", handleEdit(m))
	reg.Register("read", handleRead(m))
	reg.Register("terminal", handleTerminal(m))
	reg.Register("help", handleHelp(m))
}

func handleWrite(m *Model) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		path := cmd.FirstArg()
		if path == "" {
			path = m.ed.Buffer.GetPath()
		}
		if path == "" {
			return &excmd.ErrMissingArgument{Msg: "write: no file name"}
		}
		if err := os.WriteFile(path, []byte(m.ed.Buffer.Content()), 0o644); err != nil {
			return capability.Wrap("fs", err)
		}
		if mb, ok := m.ed.Buffer.(interface{ SetPath(string) }); ok && m.ed.Buffer.GetPath() == "" {
			mb.SetPath(path)
		}
		m.statusMsg = fmt.Sprintf("%q written", path)
		return nil
	}
}

func handleEdit(m *Model) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		path := cmd.FirstArg()
		if path == "" {
			path = m.ed.Buffer.GetPath()
		}
		if path == "" {
			return &excmd.ErrMissingArgument{Msg: "edit: no file name"}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return capability.Wrap("fs", err)
		}
		m.ed.Buffer.SetContent(string(data))
		if mb, ok := m.ed.Buffer.(interface{ SetPath(string) }); ok {
			mb.SetPath(path)
		}
		m.ed.Buffer.SetName(path)
		m.ed.Cursor = editor.Cursor{}
		return nil
	}
}

func handleRead(m *Model) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		path := cmd.FirstArg()
		if path == "" {
			return &excmd.ErrMissingArgument{Msg: "read: no file name"}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return capability.Wrap("fs", err)
		}
		line := m.ed.Cursor.Line + 1
		var idx int
		if line >= m.ed.Buffer.LineCount() {
			idx = len([]rune(m.ed.Buffer.Content()))
			err = m.ed.Buffer.Insert(idx, "\n"+strings.TrimSuffix(string(data), "\n"))
		} else {
			idx = m.ed.Buffer.PositionToCharIdx(line, 0)
			text := string(data)
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			err = m.ed.Buffer.Insert(idx, text)
		}
		if err != nil {
			return err
		}
		m.ed.Cursor.Line = min(line, m.ed.Buffer.LineCount()-1)
		return nil
	}
}

// handleTerminal spawns a host process via the terminal registry and
// opens it in a new split, the window-layout half owned by the Layout
// manager and the process half owned by the Registry (per
// internal/terminal's own package doc: tmux is a process host here,
// never a source of split geometry).
func handleTerminal(m *Model) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		args := cmd.Args
		name := shell
		if len(args) > 0 {
			name = args[0]
			args = args[1:]
		}
		m.termCounter++
		bufID := fmt.Sprintf("term%d", m.termCounter)
		tb, err := m.term.Open(bufID, name, args, 80, 24, "")
		if err != nil {
			return capability.Wrap("terminal", err)
		}
		if err := m.ed.Layout.Split(capability.Horizontal, bufID); err != nil {
			return err
		}
		win := m.ed.Layout.CurrentWindow().WindowID
		if m.termWindows == nil {
			m.termWindows = map[string]string{}
		}
		m.termWindows[string(win)] = bufID
		_ = tb
		return nil
	}
}

func handleHelp(m *Model) excmd.HandlerFunc {
	return func(ctx interface{}, cmd excmd.Command) error {
		m.helpOpen = true
		return nil
	}
}
