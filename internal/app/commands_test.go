package app

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clouddrive/internal/api"
	"clouddrive/internal/domain"
	"clouddrive/internal/services"
	"clouddrive/internal/session"
)

// deadGateway fails the test if any request goes out.
type deadGateway struct {
	t *testing.T
	services.Accounts
}

func (g deadGateway) Activate(ctx context.Context, token string) (*api.AuthResult, error) {
	g.t.Fatal("unexpected Activate request")
	return nil, nil
}

func (g deadGateway) ResetPassword(ctx context.Context, token, password string) (*api.AuthResult, error) {
	g.t.Fatal("unexpected ResetPassword request")
	return nil, nil
}

func newTestCommands(t *testing.T, gateway services.Accounts) (*commands, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	sessions := session.NewStore(t.TempDir(), nil)
	return &commands{gateway: gateway, sessions: sessions, in: bufio.NewReader(strings.NewReader("")), out: out}, out
}

func stubInput(t *testing.T, lines map[string]string, passwords map[string]string) {
	t.Helper()
	origLine, origPassword := readLine, readPassword
	if lines != nil {
		readLine = func(reader *bufio.Reader, prompt string) (string, error) { return lines[prompt], nil }
	}
	readPassword = func(prompt string) (string, error) { return passwords[prompt], nil }
	t.Cleanup(func() {
		readLine = origLine
		readPassword = origPassword
	})
}

func TestResetPasswordWithoutTokenMakesNoRequest(t *testing.T) {
	cmd, out := newTestCommands(t, deadGateway{t: t})

	code := cmd.run(context.Background(), "reset-password", "", nil)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "invalid or has expired")
}

func TestActivateWithoutTokenMakesNoRequest(t *testing.T) {
	cmd, out := newTestCommands(t, deadGateway{t: t})

	code := cmd.run(context.Background(), "activate", "", nil)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "invalid or has expired")
}

func TestResetPasswordMismatchedConfirmation(t *testing.T) {
	cmd, out := newTestCommands(t, deadGateway{t: t})
	stubInput(t, nil, map[string]string{
		"Password: ":         "Abcdef12",
		"Confirm password: ": "Different1",
	})

	code := cmd.run(context.Background(), "reset-password", "sometoken", nil)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "do not match")
}

func TestRegisterReadsEachPromptFromPipedInput(t *testing.T) {
	mock := services.NewMockGateway()
	mock.RegisterFunc = func(ctx context.Context, data api.RegisterData) (*api.AuthResult, error) {
		assert.Equal(t, "Ada", data.FirstName)
		assert.Equal(t, "Lovelace", data.LastName)
		assert.Equal(t, "ada@example.com", data.Email)
		assert.Equal(t, "Abcdef12", data.Password)
		return &api.AuthResult{Envelope: api.Envelope{Success: true, Message: "Registered."}}, nil
	}
	cmd, out := newTestCommands(t, mock)
	cmd.in = bufio.NewReader(strings.NewReader("Ada\nLovelace\nada@example.com\n"))
	stubInput(t, nil, map[string]string{
		"Password: ":         "Abcdef12",
		"Confirm password: ": "Abcdef12",
	})

	code := cmd.run(context.Background(), "register", "", nil)

	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Registered.")
}

func TestLoginReadsEmailFromPipedInput(t *testing.T) {
	mock := services.NewMockGateway()
	mock.LoginFunc = func(ctx context.Context, email, password string) (*api.AuthResult, error) {
		assert.Equal(t, "ada@example.com", email)
		return &api.AuthResult{
			Envelope: api.Envelope{Success: true},
			Token:    "tok-2",
			User:     &domain.User{ID: "u1", Email: email, FirstName: "Ada"},
		}, nil
	}
	cmd, _ := newTestCommands(t, mock)
	cmd.in = bufio.NewReader(strings.NewReader("ada@example.com\n"))
	stubInput(t, nil, map[string]string{"Password: ": "Abcdef12"})

	code := cmd.run(context.Background(), "login", "", nil)

	assert.Equal(t, 0, code)
	assert.True(t, cmd.sessions.Authenticated())
}

func TestLoginEstablishesSession(t *testing.T) {
	mock := services.NewMockGateway()
	mock.LoginFunc = func(ctx context.Context, email, password string) (*api.AuthResult, error) {
		assert.Equal(t, "user@example.com", email)
		assert.Equal(t, "Abcdef12", password)
		return &api.AuthResult{
			Envelope: api.Envelope{Success: true},
			Token:    "tok-1",
			User:     &domain.User{ID: "u1", Email: email, FirstName: "Ada"},
		}, nil
	}
	cmd, out := newTestCommands(t, mock)
	stubInput(t,
		map[string]string{"Email: ": "user@example.com"},
		map[string]string{"Password: ": "Abcdef12"})

	code := cmd.run(context.Background(), "login", "", nil)

	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Signed in as Ada")
	assert.True(t, cmd.sessions.Authenticated())
	assert.Equal(t, "tok-1", cmd.sessions.Token())
}

func TestLoginRejection(t *testing.T) {
	mock := services.NewMockGateway()
	mock.LoginFunc = func(ctx context.Context, email, password string) (*api.AuthResult, error) {
		return &api.AuthResult{Envelope: api.Envelope{Success: false, Message: "invalid credentials"}}, nil
	}
	cmd, out := newTestCommands(t, mock)
	stubInput(t,
		map[string]string{"Email: ": "user@example.com"},
		map[string]string{"Password: ": "wrong"})

	code := cmd.run(context.Background(), "login", "", nil)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "invalid credentials")
	assert.False(t, cmd.sessions.Authenticated())
}

func TestLogoutIsIdempotent(t *testing.T) {
	cmd, out := newTestCommands(t, services.NewMockGateway())

	require.Equal(t, 0, cmd.run(context.Background(), "logout", "", nil))
	require.Equal(t, 0, cmd.run(context.Background(), "logout", "", nil))
	assert.Contains(t, out.String(), "Signed out.")
}

func TestWhoamiWithoutSession(t *testing.T) {
	cmd, out := newTestCommands(t, services.NewMockGateway())

	code := cmd.run(context.Background(), "whoami", "", nil)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Not signed in")
}

func TestUnknownCommand(t *testing.T) {
	cmd, out := newTestCommands(t, services.NewMockGateway())

	code := cmd.run(context.Background(), "explode", "", nil)

	assert.Equal(t, 2, code)
	assert.Contains(t, out.String(), "unknown command")
}
