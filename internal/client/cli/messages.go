package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/messagely/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func fullName(p models.UserProfile) string {
	return fmt.Sprintf("%s (%s %s)", p.Username, p.FirstName, p.LastName)
}

func (a *App) Users(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	users, err := a.api.ListUsers(ctx, a.token)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%-20s %s %s  %s\n", u.Username, u.FirstName, u.LastName, u.Phone)
	}
	return nil
}

func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	u, err := a.api.GetUser(ctx, a.token, a.userName)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Username:   %s\nName:       %s %s\nPhone:      %s\nJoined:     %s\nLast login: %s\n",
		u.Username, u.FirstName, u.LastName, u.Phone, formatTime(&u.JoinAt), formatTime(u.LastLoginAt))
	return nil
}

func (a *App) Inbox(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	msgs, err := a.api.Inbox(ctx, a.token, a.userName)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "Inbox is empty")
		return nil
	}
	for _, m := range msgs {
		unread := " "
		if m.ReadAt == nil {
			unread = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %s  from %s: %s\n", unread, m.ID, formatTime(&m.SentAt), m.FromUser.Username, m.Body)
	}
	return nil
}

func (a *App) Outbox(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	msgs, err := a.api.Outbox(ctx, a.token, a.userName)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "Outbox is empty")
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintf(a.out, "%s  %s  to %s (read: %s): %s\n", m.ID, formatTime(&m.SentAt), m.ToUser.Username, formatTime(m.ReadAt), m.Body)
	}
	return nil
}

// Send asks for the recipient (unless given) and the body, then posts it.
func (a *App) Send(ctx context.Context, to string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	if to == "" {
		v, err := getSimpleText(a.reader, "Enter recipient username", a.out)
		if err != nil {
			return err
		}
		to = v
	}

	body, err := GetMultiline(a.reader, "Enter message", a.out)
	if err != nil {
		return err
	}

	m, err := a.api.Send(ctx, a.token, to, body)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sent, id", m.ID)
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	m, err := a.api.GetMessage(ctx, a.token, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ID:   %s\nFrom: %s\nTo:   %s\nSent: %s\nRead: %s\n\n%s\n",
		m.ID, fullName(m.FromUser), fullName(m.ToUser), formatTime(&m.SentAt), formatTime(m.ReadAt), m.Body)
	return nil
}

func (a *App) Read(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	rc, err := a.api.MarkRead(ctx, a.token, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Message %s read at %s\n", rc.ID, formatTime(&rc.ReadAt))
	return nil
}
