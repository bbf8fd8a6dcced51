package dto

type EventOutput struct {
	ID             string
	Grade          string
	Title          string
	Date           string
	StartTime      string
	EndTime        string
	LocationType   string
	LocationDetail string
	CreatedBy      string
}

type RegisterEventInput struct {
	Grade          string
	Title          string
	Date           string // YYYY-MM-DD
	StartTime      string // HH:MM, optional
	EndTime        string // HH:MM, optional
	LocationType   string // online | onsite, optional
	LocationDetail string
	CreatedBy      string
}

type ListEventsInput struct {
	Grade string // empty lists every grade
	From  string // YYYY-MM-DD
	Days  int
}

// GradeBatch is tomorrow's reminder payload for one grade. Events with
// the ALL grade appear in every batch.
type GradeBatch struct {
	Grade  string
	Events []EventOutput
}
