package app

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"clouddrive/internal/api"
	"clouddrive/internal/config"
	"clouddrive/internal/logging"
	"clouddrive/internal/session"
	"clouddrive/internal/state"
	"clouddrive/internal/ui"
)

// Run wires the process and dispatches: no subcommand starts the TUI,
// a subcommand runs non-interactively. The email-link flows (activate,
// reset-password) only exist as subcommands.
func Run(args []string) int {
	base := config.DefaultConfig()
	loaded, loadErr := config.LoadConfig()
	if loadErr == nil {
		base = loaded
	}

	command := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command = args[0]
		args = args[1:]
	}

	flagSet := flag.NewFlagSet("clouddrive", flag.ContinueOnError)
	config.RegisterFlags(flagSet, &base)
	var resetToken string
	if command == "reset-password" {
		flagSet.StringVar(&resetToken, "token", "", "Reset token from the email link")
	}
	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	if err := logging.Init(base.LogLevel, base.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "clouddrive: could not open log file:", err)
	}
	defer logging.Sync()
	if loadErr != nil {
		logging.L().Warn("config unreadable, using defaults", zap.Error(loadErr))
	}

	gateway := api.New(api.Config{
		BaseURL: base.APIBaseURL,
		Timeout: time.Duration(base.TimeoutSeconds) * time.Second,
	})

	sessionDir, err := session.DefaultDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "clouddrive:", err)
		return 1
	}
	sessions := session.NewStore(sessionDir, gateway)
	sessions.Load()

	if command != "" {
		commandSet := &commands{gateway: gateway, sessions: sessions, in: bufio.NewReader(os.Stdin), out: os.Stdout}
		return commandSet.run(context.Background(), command, resetToken, flagSet.Args())
	}

	dashboard := state.NewDashboard(base)
	model := ui.NewModel(dashboard, gateway, sessions, base)
	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "clouddrive:", err)
		return 1
	}
	if provider, ok := finalModel.(ui.ConfigProvider); ok {
		if err := config.SavePreferences(provider.ConfigSnapshot()); err != nil {
			logging.L().Warn("config save failed", zap.Error(err))
		}
	}
	return 0
}
