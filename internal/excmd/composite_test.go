package excmd

import "testing"

func TestRunGlobalVisitsDescending(t *testing.T) {
	var visited []int
	processed, err := RunGlobal([]int{2, 5, 9}, func(line int) error {
		visited = append(visited, line)
		return nil
	})
	if err != nil {
		t.Fatalf("RunGlobal: %v", err)
	}
	want := []int{9, 5, 2}
	for i, v := range want {
		if visited[i] != v {
			t.Fatalf("visited = %v, want descending %v", visited, want)
		}
	}
	if processed != 3 {
		t.Fatalf("processed = %d, want 3", processed)
	}
}

func TestRunWindoRestoresOriginalFocus(t *testing.T) {
	var focused []int
	err := RunWindo(3, 1, func(i int) error {
		focused = append(focused, i)
		return nil
	}, func() error { return nil })
	if err != nil {
		t.Fatalf("RunWindo: %v", err)
	}
	want := []int{0, 1, 2, 1} // visits 0,1,2 then restores to original (1)
	if len(focused) != len(want) {
		t.Fatalf("focused = %v, want %v", focused, want)
	}
	for i := range want {
		if focused[i] != want[i] {
			t.Fatalf("focused = %v, want %v", focused, want)
		}
	}
}

func TestRunWriteThenQuitSkipsQuitOnWriteError(t *testing.T) {
	quitCalled := false
	err := RunWriteThenQuit(
		func() error { return errBoom },
		func() error { quitCalled = true; return nil },
	)
	if err != errBoom {
		t.Fatalf("err = %v, want errBoom", err)
	}
	if quitCalled {
		t.Fatalf("quit should not run when write fails")
	}
}

func TestRunNormalFeedsEachKey(t *testing.T) {
	var fed []rune
	err := RunNormal("dd", func(r rune) error {
		fed = append(fed, r)
		return nil
	})
	if err != nil {
		t.Fatalf("RunNormal: %v", err)
	}
	if string(fed) != "dd" {
		t.Fatalf("fed = %q, want 'dd'", string(fed))
	}
}

type boomErr struct{}

func (boomErr) Error() string { return "boom" }

var errBoom = boomErr{}
