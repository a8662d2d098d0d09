package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myapp-blog/myapp/internal/config"
	"github.com/myapp-blog/myapp/internal/daemon"
)

const flagJSON = "json"

func newConfigCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.New(v.GetString(flagInstance), nil)
			if err != nil {
				return err
			}

			dump := config.DumpTOML
			if asJSON {
				dump = config.DumpJSON
			}

			out, err := dump(d.Config())
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, flagJSON, false, "print json instead of toml")

	return cmd
}
