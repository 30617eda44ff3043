package cli

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// AddMaintenance logs a service. An oil change also moves the vehicle's
// oil change reminder.
func (a *App) AddMaintenance(ctx context.Context, ref string) error {
	v, err := a.pickVehicle(ref)
	if err != nil {
		return err
	}

	m := models.Maintenance{VehicleID: v.ID}
	if m.Type, err = getSimpleText(a.reader, fmt.Sprintf("Type (e.g. %q, brakes, tyres)", models.OilChange), a.out); err != nil {
		return err
	}
	if m.Date, err = GetDate(a.reader, "Date", today(), a.out); err != nil {
		return err
	}
	if m.Mileage, err = GetInt(a.reader, "Mileage", a.lastMileage(v.ID), a.out); err != nil {
		return err
	}
	if m.Cost, err = GetFloat(a.reader, "Cost (optional)", a.out); err != nil {
		return err
	}
	if m.Notes, err = getSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	op, err := a.garage.AddMaintenance(ctx, m)
	if err != nil {
		return err
	}
	if _, err := settle(ctx, a, op); err != nil {
		return err
	}
	if m.IsRecurring() {
		due, mileage := models.NextAfterMaintenance(m)
		printlnFn(fmt.Sprintf("Next %s due %s or at %d", models.OilChange, due.Format(time.DateOnly), mileage))
	}
	return nil
}

// lastMileage is the highest mileage recorded for the vehicle.
func (a *App) lastMileage(vehicleID models.ID) int {
	last := 0
	for _, m := range a.garage.Maintenances(vehicleID) {
		last = max(last, m.Mileage)
	}
	return last
}

// History lists a vehicle's maintenances, newest first.
func (a *App) History(ctx context.Context, ref string) error {
	v, err := a.pickVehicle(ref)
	if err != nil {
		return err
	}
	ms := a.garage.Maintenances(v.ID)
	if len(ms) == 0 {
		printlnFn("No maintenance recorded for", v.Plate)
		return nil
	}
	slices.SortFunc(ms, func(x, y models.Maintenance) int { return y.Date.Compare(x.Date) })

	total := 0.0
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tMILEAGE\tCOST\tNOTES\tID")
	for _, m := range ms {
		total += m.Cost
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\t%s\n", m.Date.Format(time.DateOnly), m.Type, m.Mileage, m.Cost, m.Notes, m.ID)
	}
	fmt.Fprintf(tw, "\t\t\t%.2f\t\t\n", total)
	return tw.Flush()
}

func (a *App) DeleteMaintenance(ctx context.Context, ref string) error {
	m, err := pick(a, ref, "maintenance", a.garage.Maintenances(""), func(m models.Maintenance) models.ID { return m.ID })
	if err != nil {
		return err
	}
	if err := a.garage.DeleteMaintenance(ctx, m.ID); err != nil {
		return err
	}
	printlnFn("Deleted")
	return nil
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
