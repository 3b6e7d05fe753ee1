package excmd

// Composite commands layer iteration and control flow on top of
// single-command dispatch. They take small callback interfaces rather
// than a concrete editor type so this package stays independent of
// internal/editor. internal/editor uses RunGlobal for its `:global`/
// `:vglobal` built-ins and RunNormal for `:normal`; it registers no
// `:windo`, `:tabdo` or `:bufdo` command, and its `:wq`/`:x` built-ins
// only quit, without calling RunWriteThenQuit.

// RunWriteThenQuit implements `:wq`/`:x`: write succeeds before quit is
// attempted; if write fails, quit never runs.
func RunWriteThenQuit(write func() error, quit func() error) error {
	if err := write(); err != nil {
		return err
	}
	return quit()
}

// RunGlobal implements `:global`/`:vglobal`: run cmd once per line in
// matchingLines. Lines are visited in descending order so that a
// line-count-changing sub-command (like `:d`) on an earlier match
// never invalidates the line numbers of matches still to come. Returns
// the number of lines processed, for the "N lines processed" diagnostic.
func RunGlobal(matchingLines []int, runAt func(line int) error) (int, error) {
	ordered := append([]int(nil), matchingLines...)
	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	}
	for _, line := range ordered {
		if err := runAt(line); err != nil {
			return 0, err
		}
	}
	return len(ordered), nil
}

// RunWindo implements `:windo`/`:tabdo`/`:bufdo`: run cmd once with
// focus on each of count targets (0-based index), restoring the
// original focus once iteration completes.
func RunWindo(count int, originalIndex int, focus func(i int) error, run func() error) error {
	for i := 0; i < count; i++ {
		if err := focus(i); err != nil {
			return err
		}
		if err := run(); err != nil {
			focus(originalIndex)
			return err
		}
	}
	return focus(originalIndex)
}

// RunNormal implements `:normal`: feed each key of keys through feed
// in sequence, as though the user had typed them in normal mode.
func RunNormal(keys string, feed func(key rune) error) error {
	for _, r := range keys {
		if err := feed(r); err != nil {
			return err
		}
	}
	return nil
}
