package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Pranshu115/tatva/app"
	"github.com/Pranshu115/tatva/config"
	"github.com/Pranshu115/tatva/observability"
	"github.com/Pranshu115/tatva/session"
)

// EnvPrefix is the prefix of environment variables read by the CLI.
const EnvPrefix = "TATVA"

// Env carries the I/O streams and app construction hooks of the CLI.
type Env struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// AppOptions are passed to every app.New call.
	AppOptions []app.Option
	// ReadPassword reads a password without echo. Nil reads a line from In.
	ReadPassword func() (string, error)
}

// DefaultEnv uses the process standard streams and the terminal.
func DefaultEnv() *Env {
	env := &Env{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		env.ReadPassword = func() (string, error) {
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(env.Err)
			return string(b), err
		}
	}
	return env
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	configFile string
	api        string
	logLevel   string
	output     string
}

func (e *Env) prompt(label string) (string, error) {
	fmt.Fprint(e.Err, label)
	line, err := bufio.NewReader(e.In).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimSpace(line), nil
}

func (e *Env) password() (string, error) {
	if e.ReadPassword != nil {
		fmt.Fprint(e.Err, "Password: ")
		return e.ReadPassword()
	}
	return e.prompt("Password: ")
}

// loadConfig reads the configuration and applies the CLI defaults: the
// session is kept in a badger database under the user config directory
// so it survives between invocations.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	opts := []config.Option{config.WithEnvPrefix(EnvPrefix)}
	if flags.configFile != "" {
		opts = append(opts, config.WithConfigFile(flags.configFile))
	}

	var cfg config.Config
	if err := config.LoadInto("tatva", &cfg, opts...); err != nil {
		return nil, err
	}
	if flags.api != "" {
		cfg.API.BaseURL = flags.api
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Session.Backend == "" {
		cfg.Session.Backend = session.BackendBadger
	}
	if cfg.Session.Backend == session.BackendBadger && cfg.Session.Badger.Path == "" && !cfg.Session.Badger.InMemory {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate session directory: %w", err)
		}
		cfg.Session.Badger.Path = filepath.Join(dir, "tatva", "session")
	}
	return &cfg, nil
}

// withApp builds the app for one command invocation and closes it after
// run returns. The invocation runs inside a span named after the command.
func (e *Env) withApp(cmd *cobra.Command, flags *globalFlags, run func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg, e.AppOptions...)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close(context.Background()) }()

	ctx, span := observability.StartSpan(ctx, cmd.CommandPath())
	defer span.End()

	err = run(ctx, a)
	observability.SetSpanError(ctx, err)
	return err
}
