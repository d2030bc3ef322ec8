package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"contactbook/internal/client"
	"contactbook/internal/model"
)

// App binds a session to terminal I/O. All prompts and command lines are
// read from the same reader.
type App struct {
	session *client.Session
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp creates an App reading from in and writing to out.
func NewApp(session *client.Session, in io.Reader, out io.Writer) *App {
	return &App{session: session, reader: bufio.NewReader(in), out: out}
}

// Run shows the initial view and then serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	if a.isLoggedIn() {
		_ = a.List(ctx)
	} else {
		a.printf("Not logged in. Type 'login' or 'register', or 'help'.\n")
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == client.Authenticated
}

func (a *App) status() string {
	if a.isLoggedIn() {
		if u := a.session.User(); u.Email != "" {
			return u.Email
		}
		return "contacts"
	}
	return string(a.session.Mode())
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) readCredentials() (string, string, error) {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

// ToggleMode flips the unauthenticated form between login and register.
func (a *App) ToggleMode(context.Context) error {
	a.printf("Mode: %s\n", a.session.ToggleMode())
	return nil
}

// Submit runs the form of the current mode.
func (a *App) Submit(ctx context.Context) error {
	if a.session.Mode() == client.ModeRegister {
		return a.Register(ctx)
	}
	return a.Login(ctx)
}

func (a *App) Register(ctx context.Context) error {
	a.session.SetMode(client.ModeRegister)
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	msg, err := a.session.Register(ctx, email, password)
	if err != nil {
		a.printf("Error: %s\n", client.ErrorMessage(err, "Registration failed"))
		return err
	}
	a.printf("%s. You can now log in.\n", msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	a.session.SetMode(client.ModeLogin)
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, email, password); err != nil {
		if a.isLoggedIn() {
			// Logged in, but the first list fetch failed.
			a.printf("Error: %s\n", client.ErrorMessage(err, "Could not load contacts"))
			return err
		}
		a.printf("Error: %s\n", client.ErrorMessage(err, "Login failed"))
		return err
	}
	a.printf("Logged in as %s\n", a.session.User().Email)
	a.printContacts(a.session.Contacts())
	return nil
}

// List reloads the directory from the server.
func (a *App) List(ctx context.Context) error {
	contacts, err := a.session.Refresh(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.printf("Session expired, please log in again.\n")
			return err
		}
		a.printf("Error: %s\n", client.ErrorMessage(err, "Could not load contacts"))
		return err
	}
	a.printContacts(contacts)
	return nil
}

// Search filters the loaded list locally.
func (a *App) Search(_ context.Context, term string) error {
	if !a.isLoggedIn() {
		a.printf("Please log in first\n")
		return client.ErrNotLoggedIn
	}
	a.printContacts(a.session.Filter(term))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Please log in first\n")
		return client.ErrNotLoggedIn
	}
	var fields model.ContactFields
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Name", &fields.Name},
		{"Email", &fields.Email},
		{"Phone", &fields.Phone},
		{"Message (optional)", &fields.Message},
	} {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	contact, err := a.session.Add(ctx, fields)
	if err != nil {
		a.printf("Error: %s\n", client.ErrorMessage(err, "Could not add contact"))
		return err
	}
	a.printf("Added %s (%s)\n", contact.Name, contact.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		a.printf("Please log in first\n")
		return client.ErrNotLoggedIn
	}
	if id == "" {
		var err error
		if id, err = GetSimpleText(a.reader, "Contact id", a.out); err != nil {
			return err
		}
	}
	if !Confirm(a.reader, fmt.Sprintf("Delete contact %s?", id), a.out) {
		a.printf("Cancelled\n")
		return nil
	}
	if err := a.session.Delete(ctx, id); err != nil {
		a.printf("Error: %s\n", client.ErrorMessage(err, "Could not delete contact"))
		return err
	}
	a.printf("Contact removed\n")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.printf("Logged out\n")
	return err
}

func (a *App) printContacts(contacts []model.Contact) {
	if len(contacts) == 0 {
		a.printf("No contacts\n")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tMESSAGE\tADDED")
	for _, c := range contacts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Email, c.Phone, c.Message, c.Date.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}
