package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"downlink/internal/ipc"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Show recent daemon events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				events, err := client.Events(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, events)
				}
				if len(events) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No events")
					return nil
				}
				const stampLayout = "2006-01-02 15:04:05"
				rows := make([][]string, 0, len(events))
				for _, e := range events {
					stamp := ""
					if !e.At.IsZero() {
						stamp = e.At.Local().Format(stampLayout)
					}
					rows = append(rows, []string{stamp, e.Type, e.Detail})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Time", "Type", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}
