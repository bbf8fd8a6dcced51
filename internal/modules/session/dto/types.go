package dto

import "time"

type StartWorkInput struct {
	UserID    string
	ChannelID string
	Category  string
}

type SessionOutput struct {
	ID             string
	UserID         string
	IssuerID       string
	ChannelID      string
	State          string
	Category       string
	StartedAt      time.Time
	BreakStartedAt time.Time
	BreakAlerted   bool
	OpenIntervalID string
	Worked         time.Duration
}

type EndWorkOutput struct {
	SessionID  string
	Worked     time.Duration
	WeekWorked time.Duration
}
