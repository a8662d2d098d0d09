package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myapp-blog/myapp/internal/daemon"
)

func newInitDBCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Clear the existing data and create new tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.New(v.GetString(flagInstance), nil)
			if err != nil {
				return err
			}

			defer func() { _ = d.Store().Close() }()

			if err = d.Store().InitSchema(); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Initialized the database.")

			return err
		},
	}
}
