package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger handles file-based conversion logging
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	filePath string
	enabled  bool
}

// NewLogger creates a new file logger for one conversion run
func NewLogger(runID string, logDir string) (*Logger, error) {
	if logDir == "" {
		home, _ := os.UserHomeDir()
		logDir = filepath.Join(home, ".ontoflow", "logs")
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.log", timestamp, runID)
	filePath := filepath.Join(logDir, filename)

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &Logger{
		file:     file,
		filePath: filePath,
		enabled:  true,
	}

	logger.writeHeader(runID)

	return logger, nil
}

// writeHeader writes the log file header
func (l *Logger) writeHeader(runID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`╔══════════════════════════════════════════════════════════════╗
║                    ONTOFLOW CONVERSION LOG                   ║
╠══════════════════════════════════════════════════════════════╣
║  Run:     %-50s ║
║  Started: %-50s ║
╚══════════════════════════════════════════════════════════════╝

`, runID, time.Now().Format("2006-01-02 15:04:05"))

	l.file.WriteString(header)
}

// Log writes a message to the log file
func (l *Logger) Log(format string, args ...interface{}) {
	if !l.enabled || l.file == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s\n", timestamp, msg)
	l.file.WriteString(line)
}

// LogSection writes a section header
func (l *Logger) LogSection(title string) {
	if !l.enabled || l.file == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	section := "\n═══════════════════════════════════════════════════════════════\n"
	section += fmt.Sprintf("  %s\n", title)
	section += "═══════════════════════════════════════════════════════════════\n\n"
	l.file.WriteString(section)
}

// LogArtifact logs a generated output file
func (l *Logger) LogArtifact(target, path string, size int) {
	l.Log("ARTIFACT [%s] %s (%d bytes)", target, path, size)
}

// LogError logs an error
func (l *Logger) LogError(err error) {
	l.Log("ERROR: %v", err)
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	footer := "\n╔══════════════════════════════════════════════════════════════╗\n"
	footer += fmt.Sprintf("║  Completed: %-48s ║\n", time.Now().Format("2006-01-02 15:04:05"))
	footer += "╚══════════════════════════════════════════════════════════════╝\n"
	l.file.WriteString(footer)

	return l.file.Close()
}

// GetFilePath returns the log file path
func (l *Logger) GetFilePath() string {
	return l.filePath
}
