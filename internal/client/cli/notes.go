package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/flows"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
)

var errNotLoggedIn = errors.New("not logged in")

// AddNote opens the dashboard and reads a title and a multi-line
// description. Blank input is ignored, as on the web dashboard. Without a
// session nothing is read.
func (a *App) AddNote(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Please log in first")
		return errNotLoggedIn
	}
	a.router.Navigate(flows.RouteDashboard)

	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	a.dashboard.SetTitle(title)

	description, err := GetMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	a.dashboard.SetDescription(description)

	if !a.dashboard.Commit() {
		a.println("Nothing added: title and description must not be blank")
		return nil
	}
	a.println("Note added")
	return nil
}

// List prints the notes of this run in the order they were added.
func (a *App) List(ctx context.Context) error {
	notes := a.dashboard.Notes()
	if len(notes) == 0 {
		a.println("No notes yet")
		return nil
	}
	for i, n := range notes {
		a.println(fmt.Sprintf("%d. %s (%s)", i+1, n.Title, n.CreatedAt.Format(time.DateTime)))
		a.println("   " + n.Description)
	}
	return nil
}

// WhoAmI prints the stored identity and, when the token is a JWT, its
// expiry.
func (a *App) WhoAmI(ctx context.Context) error {
	rec, ok := a.store.Get()
	if !ok {
		a.println("Not logged in")
		return errNotLoggedIn
	}

	a.println(fmt.Sprintf("Username: %s", rec.Username))
	a.println(fmt.Sprintf("User ID:  %s", rec.UserID))
	if exp, ok := session.TokenExpiry(rec.Token); ok {
		state := "valid"
		if time.Now().After(exp) {
			state = "expired"
		}
		a.println(fmt.Sprintf("Token:    %s until %s", state, exp.Local().Format(time.DateTime)))
	} else {
		a.println("Token:    no expiry information")
	}
	return nil
}
