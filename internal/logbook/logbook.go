package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kingrea/roledraw/internal/report"
	"github.com/kingrea/roledraw/internal/roster"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logbook records user-facing activity (edits, draws, preset switches) to a
// plain text file that the TUI tails in its footer.
type Logbook struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New creates a logbook that writes to the provided path.
func New(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Logbook{path: path, now: time.Now}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a single entry to the logbook.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := fmt.Sprintf("%s %-5s %s\n",
		l.now().UTC().Format(time.RFC3339),
		string(level),
		strings.TrimSpace(message),
	)
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line)
}

// Tail returns up to maxLines of the most recent entries along with the
// total number of entries in the file.
func (l *Logbook) Tail(maxLines int) ([]string, int) {
	if l == nil || maxLines <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	total := len(lines)
	if total == 0 {
		return nil, 0
	}
	if total > maxLines {
		lines = lines[total-maxLines:]
	}
	return lines, total
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}

// Draw records the outcome of a draw. A draw that leaves participants
// without a role is a warning.
func (l *Logbook) Draw(d roster.Draw) {
	if l == nil {
		return
	}
	counts := report.Summary(d.Assignments)
	level := LevelInfo
	if counts.Vacant > 0 {
		level = LevelWarn
	}
	l.Append(level, fmt.Sprintf("Draw %s · %s", d.ShortID(), counts))
}

// ListReplaced records a wholesale replacement of the participant or role list.
func (l *Logbook) ListReplaced(list string, values []string) {
	if l == nil {
		return
	}
	if len(values) == 0 {
		l.Append(LevelInfo, fmt.Sprintf("%s cleared", list))
		return
	}
	l.Append(LevelInfo, fmt.Sprintf("%s updated (%d): %s", list, len(values), strings.Join(values, ", ")))
}

// PresetLoaded records a role preset switch.
func (l *Logbook) PresetLoaded(name string, roles []string) {
	l.Info("Preset %s loaded (%d roles)", name, len(roles))
}
