package activitylog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"imc/internal/bmi"
)

// maxInputBytes caps how much of the raw input is copied into an entry.
const maxInputBytes = 1024

const lockTimeout = 2 * time.Second

// Logger writes structured JSONL entries to an activity log file.
// Appends are serialized across processes with a lock file next to the
// log. When disabled (w is nil), all methods are no-ops.
type Logger struct {
	mu    sync.Mutex
	w     *os.File
	lock  *flock.Flock
	actor string
	runID string
}

// New creates a Logger that appends to logPath. If enabled is false or the
// file cannot be opened, returns a no-op logger (safe to call methods on).
func New(enabled bool, logPath, actor string) *Logger {
	if !enabled || logPath == "" {
		return &Logger{}
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return &Logger{}
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &Logger{}
	}
	return &Logger{
		w:     f,
		lock:  flock.New(logPath + ".lock"),
		actor: actor,
		runID: uuid.New().String(),
	}
}

// Nop returns a disabled logger. All methods are no-ops.
func Nop() *Logger {
	return &Logger{}
}

// entry is the common envelope for all log lines.
type entry struct {
	Timestamp string `json:"ts"`
	Actor     string `json:"actor"`
	RunID     string `json:"run_id"`
	Event     string `json:"event"`
}

// Calculation logs one invocation: the raw input and its outcome.
func (l *Logger) Calculation(input string, out bmi.Output) {
	truncated := false
	if len(input) > maxInputBytes {
		input = input[:maxInputBytes]
		truncated = true
	}
	e := struct {
		entry
		Input          string   `json:"input"`
		InputTruncated bool     `json:"input_truncated,omitempty"`
		BMI            *float64 `json:"bmi,omitempty"`
		Category       string   `json:"category,omitempty"`
		Error          string   `json:"error,omitempty"`
	}{
		entry:          l.entry("calculation"),
		Input:          input,
		InputTruncated: truncated,
		BMI:            out.BMI,
		Error:          out.Error,
	}
	if out.OK() {
		e.Category = string(bmi.Classify(*out.BMI))
	}
	l.log(e)
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l.w == nil {
		return nil
	}
	return l.w.Close()
}

func (l *Logger) entry(event string) entry {
	return entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Actor:     l.actor,
		RunID:     l.runID,
		Event:     event,
	}
}

func (l *Logger) log(v any) {
	if l.w == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()
	ok, err := l.lock.TryLockContext(ctx, 20*time.Millisecond)
	if err != nil || !ok {
		return
	}
	defer l.lock.Unlock()
	l.w.Write(data)
}
