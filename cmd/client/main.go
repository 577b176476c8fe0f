// Command client is an operator tool for the registro-horas API.
//
// The bearer token used by authenticated commands comes from --token or the
// HORAS_TOKEN environment variable.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sanoneto/registro-horas/internal/adapter"
)

func main() {
	cmd := &cli.Command{
		Name:  "client",
		Usage: "Talk to a registro-horas server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Value:   "http://localhost:8080",
				Usage:   "Server address",
				Sources: cli.EnvVars("HORAS_ADDR"),
			},
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "Bearer token for authenticated commands",
				Sources: cli.EnvVars("HORAS_TOKEN"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 15 * time.Second,
				Usage: "Request timeout",
			},
		},
		Commands: getCommands(),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds the API client from the root flags.
func newClient(cmd *cli.Command) (adapter.ServerAdapter, error) {
	client, err := adapter.NewHTTPServerAdapter(cmd.String("addr"), cmd.Duration("timeout"))
	if err != nil {
		return nil, err
	}
	client.SetToken(cmd.String("token"))
	return client, nil
}
