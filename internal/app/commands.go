package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"clouddrive/internal/api"
	"clouddrive/internal/services"
	"clouddrive/internal/session"
)

const invalidLinkMessage = "This link is invalid or has expired. Request a new one."

// test seams for terminal input
var (
	readPassword = terminalPassword
	readLine     = bufferedLine
)

type commands struct {
	gateway  services.Accounts
	sessions *session.Store
	in       *bufio.Reader
	out      io.Writer
}

func (c *commands) run(ctx context.Context, name, resetToken string, args []string) int {
	switch name {
	case "login":
		return c.login(ctx)
	case "register":
		return c.register(ctx)
	case "activate":
		return c.activate(ctx, args)
	case "forgot-password":
		return c.forgotPassword(ctx)
	case "reset-password":
		return c.resetPassword(ctx, resetToken)
	case "logout":
		return c.logout()
	case "whoami":
		return c.whoami(ctx)
	default:
		fmt.Fprintf(c.out, "unknown command %q\n", name)
		fmt.Fprintln(c.out, "commands: login, register, activate, forgot-password, reset-password, logout, whoami")
		return 2
	}
}

func (c *commands) login(ctx context.Context) int {
	email, err := readLine(c.in, "Email: ")
	if err != nil {
		return c.fail(err)
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return c.fail(err)
	}

	result, err := c.gateway.Login(ctx, email, password)
	if err != nil {
		return c.fail(err)
	}
	if !result.Success || result.Token == "" || result.User == nil {
		return c.reject(result.Message, "login failed")
	}
	if err := c.sessions.Establish(result.Token, result.User); err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "Signed in as %s\n", result.User.FullName())
	return 0
}

func (c *commands) register(ctx context.Context) int {
	firstName, err := readLine(c.in, "First name: ")
	if err != nil {
		return c.fail(err)
	}
	lastName, err := readLine(c.in, "Last name: ")
	if err != nil {
		return c.fail(err)
	}
	email, err := readLine(c.in, "Email: ")
	if err != nil {
		return c.fail(err)
	}
	if err := services.ValidateEmail(email); err != nil {
		return c.fail(err)
	}
	password, code := c.promptNewPassword()
	if code != 0 {
		return code
	}

	result, err := c.gateway.Register(ctx, api.RegisterData{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return c.fail(err)
	}
	if !result.Success {
		return c.reject(result.Message, "registration failed")
	}
	fmt.Fprintln(c.out, firstOf(result.Message, "Registered. Check your email to activate your account."))
	return 0
}

func (c *commands) activate(ctx context.Context, args []string) int {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(c.out, invalidLinkMessage)
		return 1
	}
	result, err := c.gateway.Activate(ctx, strings.TrimSpace(args[0]))
	if err != nil {
		return c.fail(err)
	}
	if !result.Success {
		return c.reject(result.Message, "activation failed")
	}
	fmt.Fprintln(c.out, firstOf(result.Message, "Account activated."))

	if c.sessions.Authenticated() {
		if profile, err := c.gateway.Profile(ctx); err == nil && profile.Success && profile.User != nil {
			_ = c.sessions.UpdateUser(profile.User)
		}
	}
	return 0
}

func (c *commands) forgotPassword(ctx context.Context) int {
	email, err := readLine(c.in, "Email: ")
	if err != nil {
		return c.fail(err)
	}
	if err := services.ValidateEmail(email); err != nil {
		return c.fail(err)
	}
	result, err := c.gateway.ForgotPassword(ctx, email)
	if err != nil {
		return c.fail(err)
	}
	if !result.Success {
		return c.reject(result.Message, "request failed")
	}
	fmt.Fprintln(c.out, firstOf(result.Message, "Check your email for a reset link."))
	return 0
}

// resetPassword refuses an empty token before anything else happens.
// An emailed link with no token is broken; no request goes out for it.
func (c *commands) resetPassword(ctx context.Context, token string) int {
	if strings.TrimSpace(token) == "" {
		fmt.Fprintln(c.out, invalidLinkMessage)
		return 1
	}
	password, code := c.promptNewPassword()
	if code != 0 {
		return code
	}
	result, err := c.gateway.ResetPassword(ctx, strings.TrimSpace(token), password)
	if err != nil {
		return c.fail(err)
	}
	if !result.Success {
		return c.reject(result.Message, "password reset failed")
	}
	fmt.Fprintln(c.out, firstOf(result.Message, "Password updated. You can sign in now."))
	return 0
}

func (c *commands) logout() int {
	c.sessions.Clear()
	fmt.Fprintln(c.out, "Signed out.")
	return 0
}

func (c *commands) whoami(ctx context.Context) int {
	if !c.sessions.Authenticated() {
		fmt.Fprintln(c.out, "Not signed in.")
		return 1
	}
	user := c.sessions.User()
	if profile, err := c.gateway.Profile(ctx); err == nil && profile.Success && profile.User != nil {
		user = profile.User
		_ = c.sessions.UpdateUser(user)
	}
	fmt.Fprintf(c.out, "%s <%s>\n", user.FullName(), user.Email)
	if !user.IsActivated {
		fmt.Fprintln(c.out, "Account not activated yet. Check your email.")
	}
	return 0
}

func (c *commands) promptNewPassword() (string, int) {
	password, err := readPassword("Password: ")
	if err != nil {
		return "", c.fail(err)
	}
	if err := services.ValidatePassword(password); err != nil {
		return "", c.fail(err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return "", c.fail(err)
	}
	if password != confirm {
		fmt.Fprintln(c.out, "Passwords do not match.")
		return "", 1
	}
	return password, 0
}

func (c *commands) fail(err error) int {
	fmt.Fprintln(c.out, "Error:", err)
	return 1
}

func (c *commands) reject(message, fallback string) int {
	fmt.Fprintln(c.out, firstOf(message, fallback))
	return 1
}

func firstOf(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}

func terminalPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// bufferedLine reads from the one shared reader so input buffered
// ahead of a prompt survives for the next one.
func bufferedLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
