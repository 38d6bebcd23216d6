package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"downlink/internal/ipc"
)

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the daemon answers on its socket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.Ping(cmd.Context()); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]bool{"reachable": true})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "daemon is reachable")
				return nil
			})
		},
	}
}
