package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/dmitrijs2005/gophgarage/internal/netx"
)

func (a *App) ListVehicles(ctx context.Context) error {
	vs := a.garage.Vehicles()
	if len(vs) == 0 {
		printlnFn("No vehicles yet, add one with 'addvehicle'")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tBRAND\tMODEL\tYEAR\tPLATE\tID\tSTATE")
	for i, v := range vs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n", i+1, v.Brand, v.Model, v.Year, v.Plate, v.ID, syncState(v.ID))
	}
	return tw.Flush()
}

func (a *App) AddVehicle(ctx context.Context) error {
	var v models.Vehicle
	if err := a.promptVehicle(&v); err != nil {
		return err
	}

	op, err := a.garage.AddVehicle(ctx, v)
	if err != nil {
		return err
	}
	_, err = settle(ctx, a, op)
	return err
}

func (a *App) EditVehicle(ctx context.Context, ref string) error {
	v, err := a.pickVehicle(ref)
	if err != nil {
		return err
	}
	if err := a.promptVehicle(&v); err != nil {
		return err
	}
	if err := a.garage.UpdateVehicle(ctx, v); err != nil {
		return err
	}
	printlnFn("Saved")
	return nil
}

// promptVehicle asks for every field, offering the current values.
func (a *App) promptVehicle(v *models.Vehicle) error {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Brand", &v.Brand},
		{"Model", &v.Model},
		{"Plate", &v.Plate},
	}
	for _, f := range fields {
		prompt := f.prompt
		if *f.dst != "" {
			prompt += " [" + *f.dst + "]"
		}
		s, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if s != "" {
			*f.dst = s
		}
	}

	def := v.Year
	if def == 0 {
		def = time.Now().Year()
	}
	year, err := getSimpleText(a.reader, fmt.Sprintf("Year [%d]", def), a.out)
	if err != nil {
		return err
	}
	v.Year = def
	if year != "" {
		if v.Year, err = strconv.Atoi(year); err != nil {
			return fmt.Errorf("%q is not a year", year)
		}
	}
	return nil
}

func (a *App) DeleteVehicle(ctx context.Context, ref string) error {
	v, err := a.pickVehicle(ref)
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader,
		fmt.Sprintf("Delete %s %s (%s) with its history and reminders? Type 'yes'", v.Brand, v.Model, v.Plate), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		printlnFn("Cancelled")
		return nil
	}
	if err := a.garage.DeleteVehicle(ctx, v.ID); err != nil {
		return err
	}
	printlnFn("Deleted")
	return nil
}

var errNotSynced = errors.New("the vehicle is not on the server yet, try again once online")

// UploadPhoto sends an image file to object storage through a presigned
// URL and records its key on the vehicle.
func (a *App) UploadPhoto(ctx context.Context, ref string) error {
	v, err := a.pickVehicle(ref)
	if err != nil {
		return err
	}
	if v.ID.IsTemporary() || !a.garage.Online() {
		return errNotSynced
	}

	path, err := getSimpleText(a.reader, "Path to the photo", a.out)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	up, err := a.images.VehicleImageUploadURL(ctx, v.ID)
	if err != nil {
		return err
	}
	if err := netx.PutPresigned(ctx, up.URL, data); err != nil {
		return err
	}

	v.Image = up.Key
	if err := a.garage.UpdateVehicle(ctx, v); err != nil {
		return err
	}
	printlnFn("Photo uploaded")
	return nil
}

func (a *App) PhotoURL(ctx context.Context, ref string) error {
	v, err := a.pickVehicle(ref)
	if err != nil {
		return err
	}
	if v.Image == "" {
		return errors.New("the vehicle has no photo")
	}
	if v.ID.IsTemporary() {
		return errNotSynced
	}
	url, err := a.images.VehicleImageURL(ctx, v.ID)
	if err != nil {
		return err
	}
	printlnFn(url)
	return nil
}
