package cmd

import (
	"github.com/spf13/cobra"
)

func newGlobalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "globals",
		Short: "List the globals the compositor advertises",
		Long:  `List every global the registry advertises without binding any of them.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return probe(cmd, nil, 1)
		},
	}
}
