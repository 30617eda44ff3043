package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	ListVehicles(ctx context.Context) error
	AddVehicle(ctx context.Context) error
	EditVehicle(ctx context.Context, ref string) error
	DeleteVehicle(ctx context.Context, ref string) error
	UploadPhoto(ctx context.Context, ref string) error
	PhotoURL(ctx context.Context, ref string) error

	AddMaintenance(ctx context.Context, ref string) error
	History(ctx context.Context, ref string) error
	DeleteMaintenance(ctx context.Context, ref string) error

	AddReminder(ctx context.Context, ref string) error
	ListReminders(ctx context.Context, ref string) error
	CompleteReminder(ctx context.Context, ref string) error
	Due(ctx context.Context) error

	Refresh(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (v)ehicles, addvehicle, editvehicle, delvehicle, photo, photourl, " +
		"service, history, delservice, remind, (r)eminders, done, due, refresh, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the GophGarage CLI.
//
// It reads a line from reader, parses the first token as the command and
// the optional second one as its argument (usually a vehicle, maintenance
// or reminder reference), and dispatches to methods on a. The loop exits on
// EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help, register, login, exit | quit
//
//	Logged in:
//	  - vehicles | v           list vehicles
//	  - addvehicle             register a vehicle
//	  - editvehicle <vehicle>  change a vehicle
//	  - delvehicle <vehicle>   delete a vehicle with its history
//	  - photo <vehicle>        upload a vehicle photo
//	  - photourl <vehicle>     print a download link of the photo
//	  - service <vehicle>      log a maintenance
//	  - history <vehicle>      list maintenances
//	  - delservice <id>        delete a maintenance
//	  - remind <vehicle>       add a reminder
//	  - reminders | r [veh]    list reminders
//	  - done <reminder>        mark a reminder completed
//	  - due                    reminders due soon
//	  - refresh                reload everything from the server
//	  - logout, exit | quit
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gg %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, arg); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd, arg string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "v", "vehicles":
		return a.ListVehicles(ctx)
	case "addvehicle":
		return a.AddVehicle(ctx)
	case "editvehicle":
		return a.EditVehicle(ctx, arg)
	case "delvehicle":
		return a.DeleteVehicle(ctx, arg)
	case "photo":
		return a.UploadPhoto(ctx, arg)
	case "photourl":
		return a.PhotoURL(ctx, arg)
	case "service":
		return a.AddMaintenance(ctx, arg)
	case "history":
		return a.History(ctx, arg)
	case "delservice":
		return a.DeleteMaintenance(ctx, arg)
	case "remind":
		return a.AddReminder(ctx, arg)
	case "r", "reminders":
		return a.ListReminders(ctx, arg)
	case "done":
		return a.CompleteReminder(ctx, arg)
	case "due":
		return a.Due(ctx)
	case "refresh":
		return a.Refresh(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
