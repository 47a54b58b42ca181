package tabletop

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugMode_LogsDispatch(t *testing.T) {
	tbl := newTestTable()
	tbl.SetDebugMode(true)
	tbl.NewCard("ace", 1, 1.4)

	output := captureStderr(t, func() {
		x, y := centre()
		tbl.InjectMove(x, y)
		tbl.Update(1.0 / 60)
	})

	if !strings.Contains(output, "[tabletop] dispatch: outcome=accepted") {
		t.Errorf("expected dispatch line in stderr, got: %q", output)
	}
	if !strings.Contains(output, "card=ace") {
		t.Errorf("expected card name in stderr, got: %q", output)
	}
}

func TestDebugMode_QuietWhenIdle(t *testing.T) {
	tbl := newTestTable()
	tbl.SetDebugMode(true)

	output := captureStderr(t, func() {
		for i := 0; i < 5; i++ {
			tbl.Update(1.0 / 60)
		}
	})
	if output != "" {
		t.Errorf("expected no output for idle ticks, got: %q", output)
	}
}

func TestDebugMode_Off(t *testing.T) {
	tbl := newTestTable()
	tbl.NewCard("ace", 1, 1.4)

	output := captureStderr(t, func() {
		x, y := centre()
		tbl.InjectMove(x, y)
		tbl.Update(1.0 / 60)
	})
	if output != "" {
		t.Errorf("expected no output with debug off, got: %q", output)
	}
}

func TestDebugConfigEnablesLogging(t *testing.T) {
	tbl := NewTable(newTestCamera(), TableConfig{Debug: true})

	output := captureStderr(t, func() {
		tbl.InjectMove(1, 1)
		tbl.Update(1.0 / 60)
	})
	if !strings.Contains(output, "outcome=miss") {
		t.Errorf("expected miss line in stderr, got: %q", output)
	}
}
