package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Users lists the Plex accounts selectable as sync targets.
func (r *Runner) Users(ctx context.Context, cmd *cli.Command) error {
	users, err := r.engine.Users(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(users, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Plex Accounts")
	for _, user := range users {
		r.writePlain("%-10s %s\n", user.ID, user.Title)
	}

	return nil
}
