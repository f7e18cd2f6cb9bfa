package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/messagely/internal/client/client"
	"github.com/dmitrijs2005/messagely/internal/client/config"
	"github.com/dmitrijs2005/messagely/internal/client/models"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' or 'register' first")

// apiClient is the part of client.Client the commands use.
type apiClient interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, r models.Registration) (string, error)
	ListUsers(ctx context.Context, token string) ([]models.UserProfile, error)
	GetUser(ctx context.Context, token, username string) (*models.User, error)
	Inbox(ctx context.Context, token, username string) ([]models.InboxMessage, error)
	Outbox(ctx context.Context, token, username string) ([]models.OutboxMessage, error)
	Send(ctx context.Context, token, to, body string) (*models.SentMessage, error)
	GetMessage(ctx context.Context, token, id string) (*models.MessageDetail, error)
	MarkRead(ctx context.Context, token, id string) (*models.ReadReceipt, error)
	Ping(ctx context.Context) error
}

type App struct {
	config   *config.Config
	api      apiClient
	reader   *bufio.Reader
	out      io.Writer
	token    string
	userName string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    client.New(c.ServerURL, c.Timeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to messagely CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
