package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// WriteLogger records every file a generation run writes.
type WriteLogger interface {
	Log(path string, size int, digest []byte)
}

// writeLogger implements WriteLogger with thread-safe output.
type writeLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewWrite creates a new WriteLogger. If w is nil, returns a no-op logger.
func NewWrite(w io.Writer) WriteLogger {
	return &writeLogger{w: w, now: time.Now}
}

// Log emits a single line with timestamp, path, size and hex digest.
func (l *writeLogger) Log(path string, size int, digest []byte) {
	if l.w == nil {
		return
	}

	const hexdigits = "0123456789abcdef"
	hexbuf := make([]byte, 0, len(digest)*2)
	for _, b := range digest {
		hexbuf = append(hexbuf, hexdigits[b>>4], hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s wrote %s: %d bytes, blake2b-256: %s\n",
		l.now().Format("2006/01/02 15:04:05"),
		path,
		size,
		hexbuf)

	l.mu.Lock()
	_, _ = l.w.Write([]byte(line))
	l.mu.Unlock()
}
