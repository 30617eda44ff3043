package cli

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/client/notify"
	"github.com/dmitrijs2005/gophgarage/internal/models"
)

func (a *App) AddReminder(ctx context.Context, ref string) error {
	v, err := a.pickVehicle(ref)
	if err != nil {
		return err
	}

	r := models.Reminder{VehicleID: v.ID, IsActive: true}
	if r.MaintenanceType, err = getSimpleText(a.reader, "What is due?", a.out); err != nil {
		return err
	}
	if r.DueDate, err = GetDate(a.reader, "Due date", today().AddDate(0, 1, 0), a.out); err != nil {
		return err
	}
	if r.Mileage, err = GetInt(a.reader, "Due at mileage (0 for none)", 0, a.out); err != nil {
		return err
	}

	op, err := a.garage.AddReminder(ctx, r)
	if err != nil {
		return err
	}
	_, err = settle(ctx, a, op)
	return err
}

// activeReminders returns active reminders, soonest first. It is the order
// 'reminders' numbers them in.
func (a *App) activeReminders(vehicleID models.ID) []models.Reminder {
	rs := slices.DeleteFunc(a.garage.Reminders(vehicleID), func(r models.Reminder) bool { return !r.IsActive })
	slices.SortFunc(rs, func(x, y models.Reminder) int { return x.DueDate.Compare(y.DueDate) })
	return rs
}

// ListReminders prints active reminders, of one vehicle when ref is set.
func (a *App) ListReminders(ctx context.Context, ref string) error {
	var vehicleID models.ID
	if ref != "" {
		v, err := a.pickVehicle(ref)
		if err != nil {
			return err
		}
		vehicleID = v.ID
	}
	return a.printReminders(a.activeReminders(vehicleID))
}

func (a *App) printReminders(rs []models.Reminder) error {
	if len(rs) == 0 {
		printlnFn("Nothing scheduled")
		return nil
	}
	plates := make(map[models.ID]string)
	for _, v := range a.garage.Vehicles() {
		plates[v.ID] = v.Plate
	}

	now := time.Now()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tVEHICLE\tWHAT\tDUE\tDAYS\tMILEAGE\tID")
	for i, r := range rs {
		mileage := "-"
		if r.Mileage > 0 {
			mileage = fmt.Sprint(r.Mileage)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n", i+1, plates[r.VehicleID], r.MaintenanceType,
			r.DueDate.Format(time.DateOnly), notify.DaysRemaining(r.DueDate, now), mileage, r.ID)
	}
	return tw.Flush()
}

// CompleteReminder marks a reminder done. Oil change reminders come back
// six months later.
func (a *App) CompleteReminder(ctx context.Context, ref string) error {
	r, err := pick(a, ref, "reminder", a.activeReminders(""), func(r models.Reminder) models.ID { return r.ID })
	if err != nil {
		return err
	}
	next, err := a.garage.MarkCompleted(ctx, r.ID)
	if err != nil {
		return err
	}
	printlnFn("Completed")
	if next != nil {
		printlnFn("Next one due", next.Value().DueDate.Format(time.DateOnly))
	}
	return nil
}

// Due lists reminders within the notification window.
func (a *App) Due(ctx context.Context) error {
	return a.printReminders(notify.DueSoon(a.garage.Reminders(""), time.Now(), a.config.NotifyWindow))
}
