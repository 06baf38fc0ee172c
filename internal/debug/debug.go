package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "OVERFLOW_DEBUG"

var (
	logFile  *os.File
	mu       sync.Mutex
	resolved bool
)

// Init opens path for debug logging, replacing any previously opened file.
// An empty path disables logging.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	resolved = true
	if path == "" {
		return nil
	}
	return openLocked(path)
}

// openLocked does the actual open. Caller must hold mu.
func openLocked(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	logFile = f
	return nil
}

func closeLocked() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

// resolveLocked opens the file named by EnvVar on first use.
func resolveLocked() {
	if resolved {
		return
	}
	resolved = true
	if path := os.Getenv(EnvVar); path != "" {
		// A log file that cannot be opened leaves logging disabled.
		_ = openLocked(path)
	}
}

// Log writes a message to the debug log with a timestamp.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	resolveLocked()
	if logFile == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, msg)
	logFile.Sync()
}
