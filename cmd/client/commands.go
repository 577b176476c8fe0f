package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/sanoneto/registro-horas/internal/adapter"
	"github.com/sanoneto/registro-horas/models"
)

func getCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "version",
			Usage: "Print the server version",
			Action: withClient(func(ctx context.Context, cmd *cli.Command, client adapter.ServerAdapter) error {
				return runVersion(ctx, client, os.Stdout)
			}),
		},
		{
			Name:  "register",
			Usage: "Register a principal and print its token",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
				&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
				&cli.StringFlag{Name: "role", Aliases: []string{"r"}, Value: models.RoleIntern},
			},
			Action: withClient(func(ctx context.Context, cmd *cli.Command, client adapter.ServerAdapter) error {
				return runRegister(ctx, client, os.Stdout, models.RegisterRequest{
					Username: cmd.String("username"),
					Password: cmd.String("password"),
					Role:     cmd.String("role"),
				})
			}),
		},
		{
			Name:  "login",
			Usage: "Log in and print the token",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
				&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
			},
			Action: withClient(func(ctx context.Context, cmd *cli.Command, client adapter.ServerAdapter) error {
				return runLogin(ctx, client, os.Stdout, models.LoginRequest{
					Username: cmd.String("username"),
					Password: cmd.String("password"),
				})
			}),
		},
		{
			Name:  "me",
			Usage: "Describe the owner of the token",
			Action: withClient(func(ctx context.Context, cmd *cli.Command, client adapter.ServerAdapter) error {
				return runMe(ctx, client, os.Stdout)
			}),
		},
		{
			Name:  "logout",
			Usage: "Revoke the token",
			Action: withClient(func(ctx context.Context, cmd *cli.Command, client adapter.ServerAdapter) error {
				return client.Logout(ctx)
			}),
		},
		{
			Name:  "logout-all",
			Usage: "Revoke every token of the caller",
			Action: withClient(func(ctx context.Context, cmd *cli.Command, client adapter.ServerAdapter) error {
				msg, err := client.LogoutAll(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(os.Stdout, msg)
				return err
			}),
		},
		{
			Name:  "revoke",
			Usage: "Revoke an arbitrary token (ADMIN)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "target", Required: true, Usage: "Token to revoke"},
			},
			Action: withClient(func(ctx context.Context, cmd *cli.Command, client adapter.ServerAdapter) error {
				return client.RevokeToken(ctx, cmd.String("target"))
			}),
		},
		{
			Name:  "delete-principal",
			Usage: "Delete a principal and its tokens (ADMIN)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Required: true, Usage: "Principal public ID (UUID)"},
			},
			Action: withClient(func(ctx context.Context, cmd *cli.Command, client adapter.ServerAdapter) error {
				return runDeletePrincipal(ctx, client, cmd.String("id"))
			}),
		},
	}
}

func withClient(action func(ctx context.Context, cmd *cli.Command, client adapter.ServerAdapter) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		return action(ctx, cmd, client)
	}
}

func runVersion(ctx context.Context, client adapter.ServerAdapter, w io.Writer) error {
	v, err := client.Version(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

func runRegister(ctx context.Context, client adapter.ServerAdapter, w io.Writer, req models.RegisterRequest) error {
	token, err := client.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

func runLogin(ctx context.Context, client adapter.ServerAdapter, w io.Writer, req models.LoginRequest) error {
	token, err := client.Login(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

func runMe(ctx context.Context, client adapter.ServerAdapter, w io.Writer) error {
	me, err := client.Me(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(me)
}

func runDeletePrincipal(ctx context.Context, client adapter.ServerAdapter, rawID string) error {
	publicID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid public id %q: %w", rawID, err)
	}
	return client.DeletePrincipal(ctx, publicID)
}
