package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"downlink/internal/ipc"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the daemon's download cache",
	}
	cacheCmd.AddCommand(newCacheInfoCommand(ctx))
	cacheCmd.AddCommand(newCacheResetCommand(ctx))
	return cacheCmd
}

func newCacheInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				info, err := client.CacheInfo(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, info)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Used:  %s\n", humanBytes(info.Used))
				fmt.Fprintf(out, "Free:  %s\n", humanBytes(info.Free))
				fmt.Fprintf(out, "Total: %s\n", humanBytes(info.Total()))
				if info.Files > 0 {
					fmt.Fprintf(out, "Files: %d\n", info.Files)
				}
				return nil
			})
		},
	}
}

func newCacheResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop the daemon's download cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.CacheReset(cmd.Context()); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]bool{"reset": true})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "cache reset")
				return nil
			})
		},
	}
}
