package e2etests

import (
	"bytes"
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/creack/pty"
	"github.com/vito/midterm"
)

const (
	ttyRows = 4
	ttyCols = 80
)

// runImcTTY runs imc with stdin and stdout attached to a pseudo-terminal
// and returns the raw bytes it wrote.
func runImcTTY(t *testing.T, extraEnv []string, args ...string) []byte {
	t.Helper()

	cmd := exec.Command(imcBinary, args...)
	cmd.Env = append(isolatedEnv(t, ""), "NO_COLOR=", "CLICOLOR=", "TERM=xterm-256color")
	cmd.Env = append(cmd.Env, extraEnv...)

	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: ttyRows, Cols: ttyCols})
	if err != nil {
		t.Fatalf("start imc in pty: %v", err)
	}
	defer ptm.Close()

	// Reading the master fails with EIO once the child exits and the
	// buffer is drained; whatever was read so far is the full output.
	raw, _ := io.ReadAll(ptm)
	if err := cmd.Wait(); err != nil {
		t.Fatalf("imc exited with error: %v", err)
	}
	return raw
}

// screen renders raw terminal output and returns the visible rows.
func screen(raw []byte) []string {
	vt := midterm.NewTerminal(ttyRows, ttyCols)
	vt.Write(raw)
	rows := make([]string, 0, len(vt.Content))
	for _, line := range vt.Content {
		rows = append(rows, strings.TrimRight(string(line), " \x00"))
	}
	return rows
}

func TestTTY_TextFormatIsColored(t *testing.T) {
	raw := runImcTTY(t, nil, "--format", "text", `{"altura": 1.8, "peso": 70}`)

	if !bytes.Contains(raw, []byte("\033[32m")) {
		t.Errorf("expected green ANSI sequence on a TTY, got %q", raw)
	}
	rows := screen(raw)
	if len(rows) == 0 || !strings.Contains(rows[0], "BMI 21.60 (Normal)") {
		t.Errorf("screen = %q, want first row to contain %q", rows, "BMI 21.60 (Normal)")
	}
}

func TestTTY_NoColorDisablesStyling(t *testing.T) {
	raw := runImcTTY(t, []string{"NO_COLOR=1"}, "--format", "text", `{"altura": 0}`)

	if bytes.Contains(raw, []byte("\033[")) {
		t.Errorf("expected no ANSI sequences with NO_COLOR, got %q", raw)
	}
	if !strings.Contains(string(raw), "✗ float division by zero") {
		t.Errorf("output = %q, want the error line", raw)
	}
}

// JSON output never carries styling, even on a terminal.
func TestTTY_JSONFormatIsPlain(t *testing.T) {
	raw := runImcTTY(t, nil, `{"peso": 70}`)

	if got := strings.TrimSpace(string(raw)); got != `{"bmi": 70.0}` {
		t.Errorf("output = %q, want %q", got, `{"bmi": 70.0}`)
	}
}

// With a terminal on stdin and no argument, imc does not wait for input.
func TestTTY_MissingArgumentDoesNotBlock(t *testing.T) {
	raw := runImcTTY(t, nil)

	if got := strings.TrimSpace(string(raw)); got != `{"error": "missing JSON argument"}` {
		t.Errorf("output = %q, want the missing-argument record", got)
	}
}
