package logger

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Entry is a captured log line shown in the dashboard's warning indicator.
type Entry struct {
	Time    time.Time
	Level   zerolog.Level
	Message string
}

// Buffer is a fixed-capacity ring of recent entries. When full, the oldest
// entry is evicted. All methods are safe for concurrent use.
type Buffer struct {
	mu    sync.RWMutex
	items []Entry
	cap   int
	head  int // index of the oldest element
	count int

	warnCount  int
	errorCount int
}

// NewBuffer creates a Buffer holding up to capacity entries (minimum 1).
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		items: make([]Entry, capacity),
		cap:   capacity,
	}
}

// Add stores e and bumps the per-level counters. Counters are not reduced
// on eviction.
func (b *Buffer) Add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == b.cap {
		b.items[b.head] = e
		b.head = (b.head + 1) % b.cap
	} else {
		b.items[(b.head+b.count)%b.cap] = e
		b.count++
	}

	if e.Level == zerolog.WarnLevel {
		b.warnCount++
	} else if e.Level >= zerolog.ErrorLevel {
		b.errorCount++
	}
}

// List returns the buffered entries oldest first.
func (b *Buffer) List() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}
	out := make([]Entry, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.items[(b.head+i)%b.cap]
	}
	return out
}

// Latest returns the newest entry, if any.
func (b *Buffer) Latest() (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return Entry{}, false
	}
	return b.items[(b.head+b.count-1)%b.cap], true
}

func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Counts returns how many warnings and errors have been captured in total.
func (b *Buffer) Counts() (warn, errs int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.warnCount, b.errorCount
}

// captureHook copies WARN and above into a Buffer.
type captureHook struct {
	buf *Buffer
	now func() time.Time
}

func (h captureHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level < zerolog.WarnLevel || level > zerolog.PanicLevel {
		return
	}
	h.buf.Add(Entry{Time: h.now(), Level: level, Message: msg})
}
