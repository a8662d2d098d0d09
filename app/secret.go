package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myapp-blog/myapp/internal/secret"
)

const flagLength = "length"

func newGenSecretCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "gen-secret",
		Short: "Print a random value for SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := secret.New(length)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)

			return err
		},
	}

	cmd.Flags().IntVar(&length, flagLength, secret.DefaultLength, "number of characters")

	return cmd
}
