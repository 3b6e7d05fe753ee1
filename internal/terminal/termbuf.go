package terminal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// TerminalBuffer is the live process behind one `:terminal` editor
// buffer: a shell (or other command) running in its own tmux window,
// captured into text and fed keystrokes the way any other buffer is
// edited and displayed, just with a process on the other end instead
// of a static line slice.
type TerminalBuffer struct {
	ID    string
	Alive bool

	server *TmuxServer
	window string // tmux window name "t{id}"
	target string // "{window}.0" — the pane target

	ExitCode int

	done chan struct{}
	mu   sync.Mutex
}

// OpenTerminal starts cmdName (with args) in a new tmux window sized
// width x height, rooted at dir (the editor's working directory when
// dir == "").
func OpenTerminal(id string, cmdName string, args []string, width, height int, dir string, server *TmuxServer) (*TerminalBuffer, error) {
	if err := server.EnsureStarted(); err != nil {
		return nil, err
	}

	window := "t" + id
	target := window + ".0"

	shell_cmd := cmdName
	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, a := range args {
			if strings.ContainsAny(a, " \t\"'\\$") {
				quoted[i] = "'" + strings.ReplaceAll(a, "'", "'\\''") + "'"
			} else {
				quoted[i] = a
			}
		}
		shell_cmd += " " + strings.Join(quoted, " ")
	}

	tmux_args := []string{"new-window", "-d", "-n", window}
	if dir != "" {
		tmux_args = append(tmux_args, "-c", dir)
	}
	tmux_args = append(tmux_args, shell_cmd)

	out, err := server.Run(tmux_args...)
	if err != nil {
		return nil, fmt.Errorf("tmux new-window failed: %w\n%s", err, out)
	}

	server.Run("set-option", "-t", window, "remain-on-exit", "on")
	server.Run("resize-pane", "-t", target,
		"-x", fmt.Sprintf("%d", width),
		"-y", fmt.Sprintf("%d", height),
	)

	tb := &TerminalBuffer{
		ID:       id,
		Alive:    true,
		server:   server,
		window:   window,
		target:   target,
		ExitCode: -1,
		done:     make(chan struct{}),
	}

	go tb.monitor_loop()

	return tb, nil
}

func (tb *TerminalBuffer) monitor_loop() {
	defer close(tb.done)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		tb.mu.Lock()
		if !tb.Alive {
			tb.mu.Unlock()
			return
		}
		tb.mu.Unlock()

		out, err := tb.server.Run(
			"list-panes", "-t", tb.window,
			"-F", "#{pane_dead} #{pane_dead_status}",
		)
		if err != nil {
			tb.mu.Lock()
			tb.Alive = false
			tb.mu.Unlock()
			return
		}

		fields := strings.Fields(strings.TrimSpace(out))
		if len(fields) >= 1 && fields[0] == "1" {
			exit_code := -1
			if len(fields) >= 2 {
				fmt.Sscanf(fields[1], "%d", &exit_code)
			}
			tb.mu.Lock()
			tb.Alive = false
			tb.ExitCode = exit_code
			tb.mu.Unlock()
			return
		}
	}
}

// Write sends input bytes to the pane via send-keys -H (hex-encoded),
// the path a normal-mode keystroke feed uses to drive the process.
func (tb *TerminalBuffer) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	hex_parts := make([]string, len(data))
	for i, b := range data {
		hex_parts[i] = fmt.Sprintf("%02x", b)
	}

	_, err := tb.server.Run(
		"send-keys", "-t", tb.target, "-H",
		strings.Join(hex_parts, " "),
	)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

func (tb *TerminalBuffer) WriteString(str string) (int, error) {
	return tb.Write([]byte(str))
}

// Capture returns the pane's current screen contents as plain text,
// one buffer line per terminal row — this is what a :terminal buffer's
// Lines() reflects on each redraw.
func (tb *TerminalBuffer) Capture() ([]string, error) {
	out, err := tb.server.Run("capture-pane", "-t", tb.target, "-p")
	if err != nil {
		return nil, fmt.Errorf("tmux capture-pane failed: %w", err)
	}
	return strings.Split(out, "\n"), nil
}

// Resize changes the pane dimensions to track the owning window's rect.
func (tb *TerminalBuffer) Resize(width, height int) {
	tb.server.Run(
		"resize-pane", "-t", tb.target,
		"-x", fmt.Sprintf("%d", width),
		"-y", fmt.Sprintf("%d", height),
	)
}

// IsAlive reports whether the backing process is still running.
func (tb *TerminalBuffer) IsAlive() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.Alive
}

// Close terminates the tmux window running this terminal buffer's
// process.
func (tb *TerminalBuffer) Close() {
	tb.mu.Lock()
	already_dead := !tb.Alive
	tb.Alive = false
	tb.mu.Unlock()

	if !already_dead {
		tb.server.Run("kill-window", "-t", tb.window)
	}

	select {
	case <-tb.done:
	case <-time.After(500 * time.Millisecond):
	}
}
