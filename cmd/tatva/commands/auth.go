package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pranshu115/tatva/app"
	"github.com/Pranshu115/tatva/auth"
)

func newLoginCommand(env *Env, flags *globalFlags) *cobra.Command {
	var creds auth.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if creds.Username == "" {
				if creds.Username, err = env.prompt("Username: "); err != nil {
					return err
				}
			}
			if creds.Password == "" {
				if creds.Password, err = env.password(); err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}

			return env.withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				res, err := a.Auth.Login(ctx, creds)
				if err != nil {
					return err
				}
				if flags.output == outputJSON {
					return printJSON(env.Out, res.Body)
				}
				if !res.HasToken() {
					fmt.Fprintln(env.Out, "Login accepted but no session was issued.")
					return nil
				}
				fmt.Fprintf(env.Out, "Logged in as %s\n", displayName(res.User, creds.Username))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(env *Env, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				if err := a.Auth.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(env.Out, "Logged out")
				return nil
			})
		},
	}
}

func newWhoamiCommand(env *Env, flags *globalFlags) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				var (
					user map[string]any
					err  error
				)
				if refresh {
					user, err = a.Auth.Refresh(ctx)
					if errors.Is(err, auth.ErrNoToken) {
						return errNotLoggedIn
					}
				} else {
					user, err = a.Auth.CurrentUser(ctx)
				}
				if err != nil {
					return err
				}
				if !a.Auth.IsAuthenticated(ctx) {
					return errNotLoggedIn
				}
				if flags.output == outputJSON {
					return printJSON(env.Out, user)
				}
				return renderKeyValues(env.Out, user)
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch the profile from the server")
	return cmd
}

var errNotLoggedIn = errors.New("not logged in, run `tatva login`")

func displayName(user map[string]any, fallback string) string {
	for _, k := range []string{"name", "username", "email"} {
		if s, ok := user[k].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
