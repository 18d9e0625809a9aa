package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/wlhandle/internal/config"
	"github.com/bnema/wlhandle/internal/ui"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect wlhandle configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			out := cmd.OutOrStdout()

			display := cfg.Display
			if display == "" {
				display = "$WAYLAND_DISPLAY"
			}
			level := cfg.Logging.LogLevel
			if level == "" {
				level = "$LOG_LEVEL"
			}

			fmt.Fprintln(out, ui.FormatHeader("Configuration"))
			fmt.Fprintf(out, "Config file: %s\n", config.GetConfigPath())
			fmt.Fprintf(out, "  Display:    %s\n", display)
			fmt.Fprintf(out, "  Roundtrips: %d\n", cfg.Roundtrips)
			fmt.Fprintf(out, "  Track:      %s\n", strings.Join(cfg.Track, ", "))
			fmt.Fprintf(out, "  Output:     %s\n", cfg.Output)
			fmt.Fprintf(out, "  Log level:  %s\n", level)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
		},
	})
	return configCmd
}
