package app

import "lightstick.klederson.com/internal/ui"

// EventLog is a circular buffer of the most recent log entries.
type EventLog struct {
	buf   []ui.LogEntry
	pos   int
	count int
}

// NewEventLog creates a log keeping at most capacity entries.
func NewEventLog(capacity int) *EventLog {
	if capacity < 1 {
		capacity = 1
	}
	return &EventLog{
		buf: make([]ui.LogEntry, capacity),
	}
}

// Push adds an entry, dropping the oldest when full.
func (l *EventLog) Push(e ui.LogEntry) {
	l.buf[l.pos] = e
	l.pos = (l.pos + 1) % len(l.buf)
	if l.count < len(l.buf) {
		l.count++
	}
}

// Entries returns all stored entries in chronological order.
func (l *EventLog) Entries() []ui.LogEntry {
	if l.count == 0 {
		return nil
	}
	result := make([]ui.LogEntry, l.count)
	if l.count < len(l.buf) {
		copy(result, l.buf[:l.count])
	} else {
		n := copy(result, l.buf[l.pos:])
		copy(result[n:], l.buf[:l.pos])
	}
	return result
}

// Last returns the most recent entry and false if the log is empty.
func (l *EventLog) Last() (ui.LogEntry, bool) {
	if l.count == 0 {
		return ui.LogEntry{}, false
	}
	return l.buf[(l.pos-1+len(l.buf))%len(l.buf)], true
}

// Len returns the number of stored entries.
func (l *EventLog) Len() int {
	return l.count
}
