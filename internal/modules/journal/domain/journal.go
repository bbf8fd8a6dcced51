package domain

import (
	"strings"
	"time"
)

// Note is the accumulated free-text record for one user-date. Fragments
// are append-only and kept in insertion order.
type Note struct {
	UserID    string
	Date      string
	Fragments []string
}

func (n Note) Empty() bool {
	return len(n.Fragments) == 0
}

// Text renders the note the way it is displayed: one fragment per line.
func (n Note) Text() string {
	return strings.Join(n.Fragments, "\n")
}

// CaptureWindow marks that the next message from a user in a channel
// should be recorded as a note. Windows are one-shot and expire.
type CaptureWindow struct {
	UserID    string
	Channel   string
	ExpiresAt time.Time
}

func (w CaptureWindow) Expired(now time.Time) bool {
	return !now.Before(w.ExpiresAt)
}
