package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
	"github.com/wichananm65/entries-backend/internal/interface/client"
)

const defaultServer = "http://localhost:5000"

type rootOptions struct {
	server  string
	timeout time.Duration
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.server, client.WithTimeout(o.timeout))
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "entriesctl",
		Short: "Manage entries on a running entries server",
		Long: `entriesctl lists, shows, creates, updates and deletes entries through the
entries REST API.

Examples:
  entriesctl list --hobby Reading --sort name --order desc
  entriesctl create --name Ann --email ann@gmail.com --phone 0812345678 \
    --hobbies Reading,Coding --place Bangkok --gender Female
  entriesctl update <id> --place "Chiang Mai"
  entriesctl delete <id>`,
		SilenceUsage: true,
	}

	server := os.Getenv("ENTRIES_SERVER")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&opts.server, "server", server, "base URL of the entries server (env ENTRIES_SERVER)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
	)
	return root
}

// describe turns client errors into messages for the terminal.
func describe(err error) error {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(verr.Messages(), "\n  - "))
	case errors.Is(err, entity.ErrNotFound):
		return errors.New("entry not found")
	case errors.Is(err, entity.ErrDuplicateEmail):
		return errors.New("email already exists")
	default:
		return err
	}
}
