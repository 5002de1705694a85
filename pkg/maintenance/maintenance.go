// Package maintenance implements the administrative CLI actions: schema
// create/drop, seeding, and a couple of inspection queries.
package maintenance

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/artem13815/trello/pkg/auth"
	"github.com/artem13815/trello/pkg/card"
)

// Schema is the storage administration surface.
type Schema interface {
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
}

// Admin identifies the account create_admin should ensure.
type Admin struct {
	Email    string
	Password string
	Name     string
}

type Runner struct {
	Schema Schema
	Cards  card.UseCase
	Auth   auth.AuthUseCase
	Admin  Admin
	Out    io.Writer
}

var ErrUnknownCommand = errors.New("unknown command")

type command struct {
	help string
	run  func(r *Runner, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"create": {"create the tables", func(r *Runner, ctx context.Context, _ []string) error {
		if err := r.Schema.CreateSchema(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.Out, "Tables created")
		return nil
	}},
	"drop": {"drop the tables", func(r *Runner, ctx context.Context, _ []string) error {
		if err := r.Schema.DropSchema(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.Out, "Tables dropped")
		return nil
	}},
	"seed": {"insert the starter cards", func(r *Runner, ctx context.Context, _ []string) error {
		if _, err := r.Cards.Seed(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.Out, "Tables seeded!")
		return nil
	}},
	"first_card": {"print the first card", func(r *Runner, ctx context.Context, _ []string) error {
		c, err := r.Cards.First(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "%+v\n", c)
		return nil
	}},
	"count_ongoing": {"count cards with status Ongoing", func(r *Runner, ctx context.Context, _ []string) error {
		return r.count(ctx, card.StatusOngoing)
	}},
	"count": {"count cards by status (-status)", func(r *Runner, ctx context.Context, args []string) error {
		fs := flag.NewFlagSet("count", flag.ContinueOnError)
		fs.SetOutput(r.Out)
		status := fs.String("status", card.StatusOngoing, "card status")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return r.count(ctx, *status)
	}},
	"create_admin": {"create the admin account from ADMIN_EMAIL/ADMIN_PASSWORD", func(r *Runner, ctx context.Context, _ []string) error {
		if r.Admin.Email == "" || r.Admin.Password == "" {
			return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required")
		}
		u, err := r.Auth.EnsureAdmin(ctx, r.Admin.Email, r.Admin.Password, r.Admin.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "Admin %s (id %d, is_admin=%t)\n", u.Email, u.ID, u.IsAdmin)
		return nil
	}},
}

func (r *Runner) count(ctx context.Context, status string) error {
	n, err := r.Cards.CountByStatus(ctx, status)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, n)
	return nil
}

// Run executes args[0] with the remaining args.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		r.Usage()
		return ErrUnknownCommand
	}
	cmd, ok := commands[args[0]]
	if !ok {
		r.Usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return cmd.run(r, ctx, args[1:])
}

// Usage lists the commands.
func (r *Runner) Usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(r.Out, "usage: cli <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(r.Out, "  %-14s %s\n", name, commands[name].help)
	}
}
