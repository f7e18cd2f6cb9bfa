package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/messagely/internal/client/models"
	"github.com/dmitrijs2005/messagely/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates the account. The
// returned token logs the user in straight away.
func (a *App) Register(ctx context.Context) error {
	var r models.Registration

	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Enter username", &r.Username},
		{"Enter first name", &r.FirstName},
		{"Enter last name", &r.LastName},
		{"Enter phone", &r.Phone},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	r.Password = string(password)

	token, err := a.api.Register(ctx, r)
	if err != nil {
		return err
	}

	a.token, a.userName = token, r.Username
	fmt.Fprintln(a.out, "Registered and logged in as", r.Username)
	return nil
}

// Login prompts for credentials and keeps the issued token in memory.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, userName, string(password))
	if err != nil {
		return err
	}

	a.token, a.userName = token, userName
	fmt.Fprintln(a.out, "Logged in as", userName)
	return nil
}

// Logout forgets the token.
func (a *App) Logout(ctx context.Context) error {
	a.token, a.userName = "", ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
