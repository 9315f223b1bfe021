package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger is a small category-based logger used across all services. Every
// line carries a level, an upper-case category tag and a message, colored on
// stdout and mirrored uncolored into a log file when one could be opened.
type Logger struct {
	mu   sync.Mutex
	file *os.File

	infoC  *color.Color
	warnC  *color.Color
	errorC *color.Color
	debugC *color.Color
	procC  *color.Color
}

func NewLogger() *Logger {
	l := &Logger{
		infoC:  color.New(color.FgGreen),
		warnC:  color.New(color.FgYellow),
		errorC: color.New(color.FgRed, color.Bold),
		debugC: color.New(color.FgCyan),
		procC:  color.New(color.FgMagenta, color.Bold),
	}

	if path := os.Getenv("LOG_FILE"); path != "" {
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			l.file = f
		}
	}

	return l
}

func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *Logger) write(c *color.Color, level, category, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := time.Now().Format("2006-01-02 15:04:05.000")
	line := fmt.Sprintf("%s [%s] [%s] %s", ts, level, category, msg)

	if c != nil {
		c.Fprintln(os.Stdout, line)
	} else {
		fmt.Fprintln(os.Stdout, line)
	}
	if l.file != nil {
		fmt.Fprintln(l.file, line)
	}
}

func (l *Logger) Info(category, msg string)  { l.write(l.infoC, "INFO", category, msg) }
func (l *Logger) Warn(category, msg string)  { l.write(l.warnC, "WARN", category, msg) }
func (l *Logger) Error(category, msg string) { l.write(l.errorC, "ERROR", category, msg) }

func (l *Logger) Debug(category, msg string) {
	if os.Getenv("DEBUG") == "" {
		return
	}
	l.write(l.debugC, "DEBUG", category, msg)
}

func (l *Logger) Fatal(category, msg string) {
	l.write(l.errorC, "FATAL", category, msg)
	l.Close()
	os.Exit(1)
}

// LogProcess marks lifecycle milestones (startup, shutdown, component init).
func (l *Logger) LogProcess(stage, msg string) {
	l.write(l.procC, "PROCESS", stage, msg)
}

func (l *Logger) LogDatabase(op, db, msg string) {
	l.Debug("DATABASE", fmt.Sprintf("[%s] [%s] %s", op, db, msg))
}

func (l *Logger) LogKafka(op, topic, msg string) {
	l.Info("KAFKA", fmt.Sprintf("[%s] [%s] %s", op, topic, msg))
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogBooking(op, id, msg string) {
	l.Info("BOOKING", fmt.Sprintf("[%s] [%s] %s", op, id, msg))
}

func (l *Logger) LogMail(op, msg string) {
	l.Info("MAIL", fmt.Sprintf("[%s] %s", op, msg))
}

func (l *Logger) LogSecurity(event, msg string) {
	l.Warn("SECURITY", fmt.Sprintf("[%s] %s", event, msg))
}
