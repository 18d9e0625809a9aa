package cmd

import (
	"fmt"

	"github.com/bnema/wlhandle/internal/config"
	"github.com/bnema/wlhandle/internal/logger"
	"github.com/bnema/wlhandle/internal/ui"
	"github.com/bnema/wlhandle/internal/wayland"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps viper keys to the flags that override them.
var flagKeys = map[string]string{
	"display":           "display",
	"output":            "output",
	"logging.log_level": "log-level",
	"roundtrips":        "roundtrips",
	"track":             "track",
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "wlhandle",
		Short: "Probe a Wayland compositor",
		Long: `wlhandle connects to a Wayland compositor, binds the globals it knows
about and reports what the compositor advertised and announced for them.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			return probe(cmd, cfg.Track, cfg.Roundtrips)
		},
	}
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/wlhandle/wlhandle.toml)")
	rootCmd.PersistentFlags().StringP("display", "d", "", "Wayland display name or socket path (default $WAYLAND_DISPLAY)")
	rootCmd.PersistentFlags().StringP("output", "o", config.OutputText, "Output format: text or json")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.Flags().IntP("roundtrips", "n", config.DefaultConfig.Roundtrips, "Roundtrips to run before reporting")
	rootCmd.Flags().StringSlice("track", config.DefaultConfig.Track, "Interfaces to bind when advertised")

	rootCmd.AddCommand(newGlobalsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func initConfig(cmd *cobra.Command, configPath string) error {
	for key, name := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := viper.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	config.SetConfigPath(configPath)
	if err := config.Init(); err != nil {
		return err
	}
	if level := config.Get().Logging.LogLevel; level != "" {
		logger.SetLevel(level)
	}
	logger.Debug("configuration loaded", "path", config.GetConfigPath())
	return nil
}

// probe connects, pumps the event queue and prints the session report.
func probe(cmd *cobra.Command, track []string, roundtrips int) error {
	cfg := config.Get()

	c := wayland.NewClient(wayland.Default, track...)
	if err := c.Connect(cfg.Display); err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("failed to release Wayland objects", "err", err)
		}
	}()

	for i := 0; i < roundtrips; i++ {
		if err := c.Roundtrip(); err != nil {
			return err
		}
	}
	return ui.Render(cmd.OutOrStdout(), cfg.Output, c.Report())
}
