package deadletter

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// File appends records as JSON lines to a size-rotated file.
type File struct {
	mu  sync.Mutex
	out *lumberjack.Logger
}

// FileOption configures a File sink.
type FileOption func(*lumberjack.Logger)

// WithMaxSizeMB sets the size at which the file rotates (default 10).
func WithMaxSizeMB(mb int) FileOption {
	return func(l *lumberjack.Logger) { l.MaxSize = mb }
}

// WithMaxBackups caps how many rotated files are kept.
func WithMaxBackups(n int) FileOption {
	return func(l *lumberjack.Logger) { l.MaxBackups = n }
}

// WithMaxAgeDays caps how long rotated files are kept.
func WithMaxAgeDays(days int) FileOption {
	return func(l *lumberjack.Logger) { l.MaxAge = days }
}

// NewFile creates a JSONL dead-letter file at path.
func NewFile(path string, opts ...FileOption) *File {
	out := &lumberjack.Logger{
		Filename: path,
		MaxSize:  10,
	}
	for _, opt := range opts {
		opt(out)
	}
	return &File{out: out}
}

// Write implements Sink, appending one JSON line.
func (f *File) Write(_ context.Context, rec Record) error {
	line := append(rec.JSON(), '\n')
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.out.Write(line); err != nil {
		return fmt.Errorf("write dead letter: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Close()
}
