package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/messagely/internal/client/config"
	"github.com/dmitrijs2005/messagely/internal/client/models"
	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	token   string
	lastReg models.Registration
	sent    []string
	pingErr error
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (string, error) {
	if password != "pw" {
		return "", common.ErrInvalidCredentials
	}
	return "tok-" + username, nil
}
func (f *fakeAPI) Register(_ context.Context, r models.Registration) (string, error) {
	f.lastReg = r
	return "tok-" + r.Username, nil
}
func (f *fakeAPI) ListUsers(_ context.Context, token string) ([]models.UserProfile, error) {
	f.token = token
	return []models.UserProfile{{Username: "alice", FirstName: "Alice"}, {Username: "bob", FirstName: "Bob"}}, nil
}
func (f *fakeAPI) GetUser(_ context.Context, token, username string) (*models.User, error) {
	f.token = token
	return &models.User{Username: username, FirstName: "Alice", JoinAt: time.Now()}, nil
}
func (f *fakeAPI) Inbox(_ context.Context, token, _ string) ([]models.InboxMessage, error) {
	f.token = token
	return []models.InboxMessage{{ID: "m1", Body: "hey", FromUser: models.UserProfile{Username: "bob"}}}, nil
}
func (f *fakeAPI) Outbox(_ context.Context, token, _ string) ([]models.OutboxMessage, error) {
	f.token = token
	return nil, nil
}
func (f *fakeAPI) Send(_ context.Context, token, to, body string) (*models.SentMessage, error) {
	f.token = token
	if to == "ghost" {
		return nil, common.ErrValidation
	}
	f.sent = append(f.sent, to+":"+body)
	return &models.SentMessage{ID: "m2", ToUsername: to, Body: body}, nil
}
func (f *fakeAPI) GetMessage(_ context.Context, token, id string) (*models.MessageDetail, error) {
	f.token = token
	if id != "m1" {
		return nil, common.ErrNotFound
	}
	return &models.MessageDetail{ID: id, Body: "hey", FromUser: models.UserProfile{Username: "bob"}, ToUser: models.UserProfile{Username: "alice"}}, nil
}
func (f *fakeAPI) MarkRead(_ context.Context, token, id string) (*models.ReadReceipt, error) {
	f.token = token
	return &models.ReadReceipt{ID: id, ReadAt: time.Now()}, nil
}
func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func stubInputs(t *testing.T, texts []string, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func newTestApp(input string) (*App, *fakeAPI, *bytes.Buffer) {
	api := &fakeAPI{}
	out := &bytes.Buffer{}
	return &App{
		config: &config.Config{ServerURL: "http://test"},
		api:    api,
		reader: rdr(input),
		out:    out,
	}, api, out
}

func TestLogin_StoresToken(t *testing.T) {
	app, _, out := newTestApp("")
	stubInputs(t, []string{"alice"}, "pw")

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "tok-alice", app.token)
	assert.Equal(t, "(alice)", app.getStatus())
	assert.Contains(t, out.String(), "Logged in as alice")
}

func TestLogin_BadPassword(t *testing.T) {
	app, _, _ := newTestApp("")
	stubInputs(t, []string{"alice"}, "nope")

	err := app.Login(context.Background())
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.False(t, app.isLoggedIn())
}

func TestRegister_SendsAllFields(t *testing.T) {
	app, api, _ := newTestApp("")
	stubInputs(t, []string{"alice", "Alice", "Liddell", "555-0100"}, "pw")

	require.NoError(t, app.Register(context.Background()))
	assert.Equal(t, models.Registration{
		Username: "alice", Password: "pw", FirstName: "Alice", LastName: "Liddell", Phone: "555-0100",
	}, api.lastReg)
	assert.Equal(t, "tok-alice", app.token)
}

func TestCommands_RequireLogin(t *testing.T) {
	app, _, _ := newTestApp("")
	ctx := context.Background()

	for name, fn := range map[string]func() error{
		"users":  func() error { return app.Users(ctx) },
		"me":     func() error { return app.Me(ctx) },
		"inbox":  func() error { return app.Inbox(ctx) },
		"outbox": func() error { return app.Outbox(ctx) },
		"send":   func() error { return app.Send(ctx, "bob") },
		"show":   func() error { return app.Show(ctx, "m1") },
		"read":   func() error { return app.Read(ctx, "m1") },
	} {
		assert.ErrorIs(t, fn(), errNotLoggedIn, name)
	}
}

func TestCommands_LoggedIn(t *testing.T) {
	app, api, out := newTestApp("line one\nline two\n\n")
	app.token, app.userName = "tok-alice", "alice"
	ctx := context.Background()

	require.NoError(t, app.Users(ctx))
	assert.Contains(t, out.String(), "bob")
	assert.Equal(t, "tok-alice", api.token)

	require.NoError(t, app.Me(ctx))
	assert.Contains(t, out.String(), "Last login: -")

	require.NoError(t, app.Inbox(ctx))
	assert.Contains(t, out.String(), "* m1")

	require.NoError(t, app.Outbox(ctx))
	assert.Contains(t, out.String(), "Outbox is empty")

	require.NoError(t, app.Send(ctx, "bob"))
	assert.Equal(t, []string{"bob:line one\nline two"}, api.sent)

	require.NoError(t, app.Show(ctx, "m1"))
	assert.Contains(t, out.String(), "From: bob")

	assert.ErrorIs(t, app.Show(ctx, "zzz"), common.ErrNotFound)

	require.NoError(t, app.Read(ctx, "m1"))
	assert.Contains(t, out.String(), "Message m1 read at")

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, "", app.getStatus())
}

func TestSend_PromptsForRecipient(t *testing.T) {
	app, api, _ := newTestApp("hi there\n\n")
	app.token, app.userName = "tok-alice", "alice"
	stubInputs(t, []string{"ghost"}, "")

	err := app.Send(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, api.sent)
}

func TestRun_WarnsWhenServerDown(t *testing.T) {
	capturePrints(t)
	app, api, out := newTestApp("exit\n")
	api.pingErr = errors.New("connection refused")

	app.Run(context.Background())
	assert.Contains(t, out.String(), "is not reachable")
}
