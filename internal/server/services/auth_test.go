package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	e := newTestEnv(t)
	e.mustRegister(t, "alice")

	token, err := e.auth.Login(context.Background(), "alice", "alice-pw")
	require.NoError(t, err)

	username, err := e.auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestLogin_BadCredentials(t *testing.T) {
	e := newTestEnv(t)
	e.mustRegister(t, "alice")

	_, err := e.auth.Login(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = e.auth.Login(context.Background(), "mallory", "alice-pw")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_TouchesLastLogin(t *testing.T) {
	e := newTestEnv(t)
	e.mustRegister(t, "alice")

	before, err := e.users.Get(context.Background(), "alice")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)

	_, err = e.auth.Login(context.Background(), "alice", "alice-pw")
	require.NoError(t, err)

	after, err := e.users.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, after.LastLoginAt)
	assert.True(t, after.LastLoginAt.After(*before.LastLoginAt))
}

func TestLogin_TouchSurvivesCanceledRequest(t *testing.T) {
	e := newTestEnv(t)
	e.mustRegister(t, "alice")

	var captured func()
	e.auth.spawn = func(f func()) { captured = f }

	ctx, cancel := context.WithCancel(context.Background())
	_, err := e.auth.Login(ctx, "alice", "alice-pw")
	require.NoError(t, err)
	cancel()

	require.NotNil(t, captured)
	assert.NotPanics(t, captured)
}

func TestRegister_ReturnsToken(t *testing.T) {
	e := newTestEnv(t)

	token, err := e.auth.Register(context.Background(), registration("alice"))
	require.NoError(t, err)

	username, err := e.auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestRegister_PropagatesConflict(t *testing.T) {
	e := newTestEnv(t)
	e.mustRegister(t, "alice")

	_, err := e.auth.Register(context.Background(), registration("alice"))
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestVerifyToken_Rejects(t *testing.T) {
	e := newTestEnv(t)
	e.mustRegister(t, "alice")
	token, err := e.auth.Login(context.Background(), "alice", "alice-pw")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = e.auth.VerifyToken(tampered)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = e.auth.VerifyToken("")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	_, err = e.auth.VerifyToken("garbage")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
