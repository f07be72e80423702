package model

import "fmt"

// Status is the closed set of appointment states. The string values are the
// exact values persisted in the stato column.
type Status string

const (
	StatusConfirmed Status = "confermato"
	StatusCompleted Status = "completato"
	StatusCancelled Status = "cancellato"
	StatusPending   Status = "in_attesa"
	StatusNoShow    Status = "non_presentato"
)

// Statuses lists every valid status in display order.
func Statuses() []Status {
	return []Status{StatusConfirmed, StatusCompleted, StatusCancelled, StatusPending, StatusNoShow}
}

// ParseStatus validates a raw stato value. Transitions between statuses are
// caller-driven: any status may be set to any other.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusPending, StatusNoShow:
		return s, nil
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

func (s Status) String() string { return string(s) }
