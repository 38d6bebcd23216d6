package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var endpointFlag string
	var configFlag string
	var jsonFlag bool

	ctx := newCommandContext(&endpointFlag, &configFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "downlink",
		Short:         "Control CLI for the receiver daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Daemon socket path or host:port (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of tables")

	rootCmd.AddCommand(newPingCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newTransfersCommand(ctx))
	rootCmd.AddCommand(newFilesCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newTunerCommand(ctx))
	rootCmd.AddCommand(newOutputCommand(ctx))
	rootCmd.AddCommand(newEventsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
