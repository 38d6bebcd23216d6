package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"downlink/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the daemon's current delivery state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, status)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "State:    %s\n", status.State)
				fmt.Fprintf(out, "Progress: %s\n", percent(status.Percent()))
				if status.Path != "" {
					fmt.Fprintf(out, "File:     %s\n", status.Path)
				}
				if status.Size > 0 {
					fmt.Fprintf(out, "Received: %s / %s\n", humanBytes(status.Received), humanBytes(status.Size))
				}
				return nil
			})
		},
	}
}

func newTransfersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transfers",
		Short: "List downloads currently in progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				transfers, err := client.Transfers(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, transfers)
				}
				if len(transfers) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No active transfers")
					return nil
				}
				rows := make([][]string, 0, len(transfers))
				for _, tr := range transfers {
					rows = append(rows, []string{
						tr.ID,
						tr.Path,
						humanBytes(tr.Size),
						humanBytes(tr.Received),
						percent(tr.Percent()),
						yesNo(tr.Complete),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Path", "Size", "Received", "Progress", "Complete"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newFilesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List files announced on the broadcast carousel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				files, err := client.Files(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, files)
				}
				if len(files) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No announced files")
					return nil
				}
				rows := make([][]string, 0, len(files))
				for _, f := range files {
					rows = append(rows, []string{f.Path, humanBytes(f.Size)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Path", "Size"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}
