package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"downlink/internal/ipc"
)

func newOutputCommand(ctx *commandContext) *cobra.Command {
	outputCmd := &cobra.Command{
		Use:   "output",
		Short: "Inspect and change the daemon's delivery directory",
	}
	outputCmd.AddCommand(newOutputShowCommand(ctx))
	outputCmd.AddCommand(newOutputSetCommand(ctx))
	return outputCmd
}

func newOutputShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current delivery directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				path, err := client.OutputPath(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"path": path})
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
}

func newOutputSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path>",
		Short: "Point the daemon at a new delivery directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.SetOutputPath(cmd.Context(), args[0]); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"path": args[0]})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "output set to %s\n", args[0])
				return nil
			})
		},
	}
}
