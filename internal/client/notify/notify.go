// Package notify turns reminders that come due into user notifications.
package notify

import (
	"context"
	"fmt"
	"slices"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/dmitrijs2005/gophgarage/internal/timex"
)

// DefaultWindow is how many days ahead a reminder counts as due soon.
const DefaultWindow = 7

// Message is one notification about a reminder.
type Message struct {
	ReminderID models.ID
	VehicleID  models.ID
	Title      string
	Body       string
	DueDate    time.Time
	Days       int
}

// Deliverer shows or sends a notification.
type Deliverer interface {
	Deliver(ctx context.Context, m Message) error
}

// DaysRemaining returns whole days from now until due, rounded down.
func DaysRemaining(due, now time.Time) int {
	return timex.DaysBetween(now, due)
}

// DueSoon returns the active reminders due within window days of now,
// soonest first. Overdue reminders are not included.
func DueSoon(reminders []models.Reminder, now time.Time, window int) []models.Reminder {
	var out []models.Reminder
	for _, r := range reminders {
		if !r.IsActive {
			continue
		}
		if d := DaysRemaining(r.DueDate, now); d >= 0 && d <= window {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b models.Reminder) int { return a.DueDate.Compare(b.DueDate) })
	return out
}

// NewMessage renders the notification for r.
func NewMessage(r models.Reminder, now time.Time) Message {
	days := DaysRemaining(r.DueDate, now)
	var when string
	switch days {
	case 0:
		when = "today"
	case 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", days)
	}
	body := fmt.Sprintf("%s is due %s (%s)", capitalize(r.MaintenanceType), when, r.DueDate.Format(time.DateOnly))
	if r.Mileage > 0 {
		body += fmt.Sprintf(" or at %d km", r.Mileage)
	}
	return Message{
		ReminderID: r.ID,
		VehicleID:  r.VehicleID,
		Title:      "Maintenance reminder",
		Body:       body,
		DueDate:    r.DueDate,
		Days:       days,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}

// LogDeliverer writes notifications to the log.
type LogDeliverer struct {
	Logger logging.Logger
}

func (d LogDeliverer) Deliver(ctx context.Context, m Message) error {
	d.Logger.Info(ctx, m.Title, "body", m.Body, "reminder", m.ReminderID, "vehicle", m.VehicleID)
	return nil
}
