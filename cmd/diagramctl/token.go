package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inamate/diagrammer/internal/auth"
	"github.com/inamate/diagrammer/internal/config"
)

// tokenCmd issues a guest token signed with the server's JWT_SECRET, for
// connecting to the relay without going through /auth/token.
func tokenCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a guest token for the relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			res, err := auth.NewService(cfg.JWTSecret).Guest(name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (default: Anonymous)")
	return cmd
}
