package domain

import (
	"fmt"
	"strings"
	"time"
)

// Key addresses one scheduled reminder. A user has at most one timer
// per purpose.
type Key struct {
	UserID  string
	Purpose string
}

const (
	PurposeBreak = "break"
)

func BreakKey(userID string) Key {
	return Key{UserID: userID, Purpose: PurposeBreak}
}

// BreakMessage is the DM sent when a break exceeds the threshold.
func BreakMessage(onBreakFor time.Duration) string {
	return fmt.Sprintf("Your break has been running for %s. Resume work or end the session.", onBreakFor.Round(time.Minute))
}

// EventDigest is one grade's reminder for tomorrow's events.
func EventDigest(grade string, titles []string) string {
	return fmt.Sprintf("[%s] Tomorrow: %s", grade, strings.Join(titles, ", "))
}
