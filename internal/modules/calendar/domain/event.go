package domain

import (
	"fmt"

	apperrors "worklog/internal/platform/errors"
)

type Grade string

const (
	GradeB3         Grade = "B3"
	GradeB4         Grade = "B4"
	GradeMaster     Grade = "M"
	GradeDoctor     Grade = "D"
	GradeResearcher Grade = "researcher"
	// GradeAll events belong to every grade's batch.
	GradeAll Grade = "ALL"
)

func Grades() []Grade {
	return []Grade{GradeB3, GradeB4, GradeMaster, GradeDoctor, GradeResearcher}
}

func ParseGrade(s string) (Grade, error) {
	switch Grade(s) {
	case GradeB3, GradeB4, GradeMaster, GradeDoctor, GradeResearcher, GradeAll:
		return Grade(s), nil
	default:
		return "", fmt.Errorf("%w: grade must be one of B3, B4, M, D, researcher, ALL", apperrors.ErrFormat)
	}
}

type LocationType string

const (
	LocationOnline  LocationType = "online"
	LocationOnsite  LocationType = "onsite"
	LocationUnknown LocationType = ""
)

func ParseLocationType(s string) (LocationType, error) {
	switch LocationType(s) {
	case LocationOnline, LocationOnsite, LocationUnknown:
		return LocationType(s), nil
	default:
		return "", fmt.Errorf("%w: location type must be online or onsite", apperrors.ErrFormat)
	}
}

type Event struct {
	ID             string
	Grade          Grade
	Title          string
	Date           string // YYYY-MM-DD
	StartTime      string // HH:MM, optional
	EndTime        string // HH:MM, optional
	LocationType   LocationType
	LocationDetail string
	CreatedBy      string
	Remind1dSent   bool
}

// RemovableBy restricts removal to the event's issuer.
func (e Event) RemovableBy(userID string) bool {
	return e.CreatedBy == userID
}
