// Package logger feeds two sinks from one call: an in-memory line buffer shown
// by the console overlay, and a structured, timestamped file log.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// FilePath is the log file, relative to the process working directory.
const FilePath = "logs/brickforge.log"

// Logger stores console lines in memory and mirrors them to the file log.
type Logger struct {
	mu    sync.Mutex
	lines []string
	file  *log.Logger
}

// New returns a Logger writing to FilePath. A file that cannot be opened
// degrades to in-memory only; the editor must not die over a log file.
func New() *Logger {
	l := &Logger{}
	if err := os.MkdirAll(filepath.Dir(FilePath), 0755); err == nil {
		if f, err := os.OpenFile(FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			l.file = log.NewWithOptions(f, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "2006-01-02 15:04:05",
			})
		}
	}
	return l
}

// Info records a console line at info level.
func (l *Logger) Info(line string) {
	l.append(line)
	if l.file != nil {
		l.file.Info(line)
	}
}

// Infof records a formatted console line at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Error records a console line at error level (user-visible notices for
// failed imports, transport errors, and the like).
func (l *Logger) Error(line string) {
	l.append(line)
	if l.file != nil {
		l.file.Error(line)
	}
}

// Errorf records a formatted console line at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) append(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
}

// Lines returns a copy of all stored console lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
