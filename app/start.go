package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myapp-blog/myapp/internal/daemon"
)

const (
	flagListen = "listen"
	flagDev    = "dev"

	defaultListen = ":5000"
)

func newStartCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the web service",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts := []daemon.Option{daemon.WithAccessLog(logConfig(v))}
			if v.GetBool(flagDev) {
				opts = append(opts, daemon.WithDebug())
			}

			d, err := daemon.New(v.GetString(flagInstance), nil, opts...)
			if err != nil {
				return err
			}

			return d.Start(v.GetString(flagListen))
		},
	}

	cmd.Flags().String(flagListen, defaultListen, "listen address (env MYAPP_LISTEN)")
	cmd.Flags().Bool(flagDev, false, "load templates from disk and reload them on change")

	_ = v.BindPFlags(cmd.Flags())

	return cmd
}
