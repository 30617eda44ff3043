package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failOn   string

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	if call == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) ListVehicles(context.Context) error { return f.record("vehicles") }
func (f *fakeExec) AddVehicle(context.Context) error   { return f.record("addvehicle") }
func (f *fakeExec) EditVehicle(_ context.Context, ref string) error {
	return f.record("editvehicle " + ref)
}
func (f *fakeExec) DeleteVehicle(_ context.Context, ref string) error {
	return f.record("delvehicle " + ref)
}
func (f *fakeExec) UploadPhoto(_ context.Context, ref string) error {
	return f.record("photo " + ref)
}
func (f *fakeExec) PhotoURL(_ context.Context, ref string) error {
	return f.record("photourl " + ref)
}
func (f *fakeExec) AddMaintenance(_ context.Context, ref string) error {
	return f.record("service " + ref)
}
func (f *fakeExec) History(_ context.Context, ref string) error {
	return f.record("history " + ref)
}
func (f *fakeExec) DeleteMaintenance(_ context.Context, ref string) error {
	return f.record("delservice " + ref)
}
func (f *fakeExec) AddReminder(_ context.Context, ref string) error {
	return f.record("remind " + ref)
}
func (f *fakeExec) ListReminders(_ context.Context, ref string) error {
	return f.record("reminders " + ref)
}
func (f *fakeExec) CompleteReminder(_ context.Context, ref string) error {
	return f.record("done " + ref)
}
func (f *fakeExec) Due(context.Context) error     { return f.record("due") }
func (f *fakeExec) Refresh(context.Context) error { return f.record("refresh") }

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrint(t)
	input := strings.Join([]string{
		"help",
		"vehicles",
		"login",
		"help",
		"v",
		"addvehicle",
		"service 2",
		"history 2",
		"r",
		"done 1",
		"due",
		"refresh",
		"foobar",
		"logout",
		"exit",
		"login",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	assert.Equal(t, []string{
		"login", "vehicles", "addvehicle", "service 2", "history 2",
		"reminders ", "done 1", "due", "refresh", "logout",
	}, exec.calls)
	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Unknown command: vehicles")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_ErrorsAreReported(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{loggedIn: true, failOn: "delvehicle 3"}

	runREPL(context.Background(), exec, func() string { return "s" }, rdr("delvehicle 3\nphoto\n"))

	assert.Equal(t, []string{"delvehicle 3", "photo "}, exec.calls)
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrint(t)
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, rdr("\n  \nrefresh"))

	assert.Equal(t, []string{"refresh"}, exec.calls)
}
