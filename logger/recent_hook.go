package logger

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type Entry struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	EventName string `json:"event,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// RecentHook keeps the last `size` log entries in memory
type RecentHook struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

func NewRecentHook(size int) *RecentHook {
	if size < 1 {
		size = 1
	}
	return &RecentHook{entries: make([]Entry, size)}
}

func (hook *RecentHook) Fire(entry *log.Entry) error {
	logEntry := Entry{
		Level:     entry.Level.String(),
		Message:   entry.Message,
		Timestamp: entry.Time.UnixMilli(),
	}
	if logEntry.Timestamp == 0 {
		logEntry.Timestamp = time.Now().UnixMilli()
	}
	if event, ok := entry.Data["event"].(string); ok {
		logEntry.EventName = event
	}
	if requestID, ok := entry.Data["request_id"].(string); ok {
		logEntry.RequestID = requestID
	}

	hook.mu.Lock()
	defer hook.mu.Unlock()

	hook.entries[hook.next] = logEntry
	hook.next = (hook.next + 1) % len(hook.entries)
	if hook.next == 0 {
		hook.full = true
	}
	return nil
}

// Levels returns the log levels at which the hook should fire
func (hook *RecentHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook *RecentHook) Entries() []Entry {
	hook.mu.Lock()
	defer hook.mu.Unlock()

	if !hook.full {
		return append([]Entry{}, hook.entries[:hook.next]...)
	}
	result := make([]Entry, 0, len(hook.entries))
	result = append(result, hook.entries[hook.next:]...)
	return append(result, hook.entries[:hook.next]...)
}
