package eventstatus

import (
	"fmt"
	"time"
)

// Status is the lifecycle stage of an event derived from its time window
type Status string

const (
	Upcoming  Status = "upcoming"
	Active    Status = "active"
	Completed Status = "completed"
	Cancelled Status = "cancelled" // set by organizer, overrides time window
)

// DefaultDashboardWindow is how long completed events stay on the dashboard
const DefaultDashboardWindow = 7 * 24 * time.Hour

// Calculate classifies now against [start, end], both bounds are inclusive.
// An event with unknown (zero) start or end is Completed.
func Calculate(start, end, now time.Time) Status {
	switch {
	case start.IsZero() || end.IsZero():
		return Completed
	case now.Before(start):
		return Upcoming
	case !now.After(end):
		return Active
	}
	return Completed
}

// CalculateWithCancel returns Cancelled for cancelled events, time status otherwise
func CalculateWithCancel(start, end, now time.Time, cancelled bool) Status {
	if cancelled {
		return Cancelled
	}
	return Calculate(start, end, now)
}

// ShouldShowOnDashboard is true for upcoming and active events,
// and for completed events which ended less than window ago.
// Zero end is never within the window.
func ShouldShowOnDashboard(start, end, now time.Time, window time.Duration) bool {
	if Calculate(start, end, now) != Completed {
		return true
	}
	return end.After(now.Add(-window))
}

// IsActive is true while the event is not completed
func IsActive(start, end, now time.Time) bool {
	return Calculate(start, end, now) != Completed
}

// TimeUntil renders time left before target, e.g. "2d 3h 15m"
func TimeUntil(target, now time.Time) string {
	diff := target.Sub(now)
	if diff <= 0 {
		return "Started"
	}
	days := int(diff / (24 * time.Hour))
	hours := int(diff % (24 * time.Hour) / time.Hour)
	minutes := int(diff % time.Hour / time.Minute)

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (s Status) Valid() bool {
	switch s {
	case Upcoming, Active, Completed, Cancelled:
		return true
	}
	return false
}
