package stt

import (
	"fmt"
	"sync"
)

// LogBuffer captures parse traces for bug reports.
type LogBuffer struct {
	lines []string
	mu    sync.Mutex
}

var (
	currentLogBuffer *LogBuffer
	logBufferMu      sync.Mutex
)

// StartCapture begins capturing parse trace lines to a buffer.
// Returns the buffer that will collect the logs.
func StartCapture() *LogBuffer {
	logBufferMu.Lock()
	defer logBufferMu.Unlock()
	buf := &LogBuffer{lines: make([]string, 0, 50)}
	currentLogBuffer = buf
	return buf
}

// StopCapture stops capturing and returns the captured lines.
func StopCapture() []string {
	logBufferMu.Lock()
	defer logBufferMu.Unlock()
	if currentLogBuffer == nil {
		return nil
	}
	buf := currentLogBuffer
	currentLogBuffer = nil
	buf.mu.Lock()
	defer buf.mu.Unlock()
	return buf.lines
}

// logParse records parser internals when a capture is active.
func logParse(format string, args ...any) {
	logBufferMu.Lock()
	buf := currentLogBuffer
	logBufferMu.Unlock()

	if buf == nil {
		return
	}
	line := fmt.Sprintf("[parse] "+format, args...)
	buf.mu.Lock()
	buf.lines = append(buf.lines, line)
	buf.mu.Unlock()
}
