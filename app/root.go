// Package app implements the main application commands.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myapp-blog/myapp/internal/daemon"
	"github.com/myapp-blog/myapp/internal/logger"
)

const (
	// EnvPrefix is the prefix of the env vars bound to the flags.
	EnvPrefix = "MYAPP"

	appName     = "myapp"
	serviceName = "web"

	flagInstance  = "instance"
	flagLogLevel  = "log-level"
	flagLogPretty = "log-pretty"
	flagLogDir    = "log-dir"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   appName,
		Short: "myapp is a small blog",
		Long: `myapp is a small blog: users register, log in and write posts.
Settings and the SQLite database live in the instance directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Init(logConfig(v))
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(flagInstance, daemon.DefaultInstancePath, "instance directory (env MYAPP_INSTANCE)")
	flags.String(flagLogLevel, "info", "trace, debug, info, warn or error (env MYAPP_LOG_LEVEL)")
	flags.Bool(flagLogPretty, false, "human readable console logs")
	flags.String(flagLogDir, "", "write rolling log files below this directory")

	_ = v.BindPFlags(flags)

	cmd.AddCommand(
		newStartCmd(v),
		newInitDBCmd(v),
		newConfigCmd(v),
		newGenSecretCmd(),
	)

	return cmd
}

func logConfig(v *viper.Viper) logger.Log {
	cfg := logger.Log{
		LogLevel:                 v.GetString(flagLogLevel),
		EnableAccessLogToConsole: true,
		AppName:                  appName,
		ServiceName:              serviceName,
		Console: logger.Console{
			Enabled:          true,
			UseConsoleWriter: v.GetBool(flagLogPretty),
		},
	}

	if dir := v.GetString(flagLogDir); dir != "" {
		cfg.File = logger.DefaultLogFile(dir)
	}

	return cfg
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
