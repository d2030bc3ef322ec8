package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Submit(context.Context) error {
	f.calls = append(f.calls, "submit")
	return nil
}
func (f *fakeExec) ToggleMode(context.Context) error {
	f.calls = append(f.calls, "mode")
	return nil
}
func (f *fakeExec) List(context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Search(_ context.Context, term string) error {
	f.calls = append(f.calls, "search:"+term)
	return nil
}
func (f *fakeExec) Add(context.Context) error { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func TestRunREPLDispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"mode",
		"submit",
		"login",
		"help",
		"",
		"list",
		"search  ann smith",
		"add",
		"delete c1",
		"foobar",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)), &out)

	assert.Equal(t, []string{
		"mode", "submit", "login", "list", "search:ann smith", "add", "delete:c1", "logout",
	}, exec.calls)
	assert.Contains(t, out.String(), "Available commands: login, register")
	assert.Contains(t, out.String(), "Available commands: (l)ist")
	assert.Contains(t, out.String(), "Unknown command: foobar")
	assert.Contains(t, out.String(), "Bye!")
	assert.Contains(t, out.String(), "cb status> ")
}

func TestRunREPLStopsAtEOF(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list")), &out)

	assert.Equal(t, []string{"list"}, exec.calls)
	assert.NotContains(t, out.String(), "Bye!")
}
