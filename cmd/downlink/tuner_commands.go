package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"downlink/internal/ipc"
	"downlink/internal/lnb"
)

func newTunerCommand(ctx *commandContext) *cobra.Command {
	tunerCmd := &cobra.Command{
		Use:   "tuner",
		Short: "Inspect and configure the tuner frontend",
	}
	tunerCmd.AddCommand(newTunerStatusCommand(ctx))
	tunerCmd.AddCommand(newTunerStreamsCommand(ctx))
	tunerCmd.AddCommand(newTunerSettingsCommand(ctx))
	tunerCmd.AddCommand(newTunerSetCommand(ctx))
	return tunerCmd
}

func newTunerStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tuner lock, signal, and SNR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.TunerStatus(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, status)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Lock:   %s\n", yesNo(status.Lock))
				fmt.Fprintf(out, "Signal: %d%%\n", status.Signal)
				fmt.Fprintf(out, "SNR:    %.1f dB\n", status.SNR)
				return nil
			})
		},
	}
}

func newTunerStreamsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "streams",
		Short: "List data streams on the tuned transponder",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				streams, err := client.Streams(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, streams)
				}
				if len(streams) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No streams")
					return nil
				}
				rows := make([][]string, 0, len(streams))
				for _, s := range streams {
					rows = append(rows, []string{s.Ident, fmt.Sprintf("%d bps", s.Bitrate)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Ident", "Bitrate"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newTunerSettingsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the current tuner settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				settings, err := client.Settings(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, settings)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Frequency:    %d MHz\n", settings.Frequency)
				fmt.Fprintf(out, "Symbol rate:  %d kS/s\n", settings.SymbolRate)
				fmt.Fprintf(out, "Delivery:     %s\n", settings.Delivery)
				fmt.Fprintf(out, "Modulation:   %s\n", settings.Modulation)
				fmt.Fprintf(out, "Polarization: %s\n", settings.Polarization())
				fmt.Fprintf(out, "Tone:         %s\n", yesNo(settings.Tone))
				fmt.Fprintf(out, "Azimuth:      %d\n", settings.Azimuth)
				return nil
			})
		},
	}
}

func newTunerSetCommand(ctx *commandContext) *cobra.Command {
	var (
		frequency  int64
		symbolRate int64
		delivery   string
		modulation string
		voltage    int64
		tone       bool
		azimuth    int64
		lnbType    string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Apply new tuner settings",
		Long: "Apply new tuner settings. When --lnb is given, --frequency is taken as a\n" +
			"transponder frequency and converted to the L-band intermediate frequency,\n" +
			"and the 22 kHz tone is chosen automatically for the LNB type.",
		RunE: func(cmd *cobra.Command, args []string) error {
			freq := frequency
			useTone := tone
			if lnbType != "" {
				band := lnb.Band(lnbType)
				converted, err := lnb.Downconvert(frequency, band)
				if err != nil {
					return err
				}
				useTone = lnb.NeedsTone(frequency, band)
				freq = converted
			}
			return ctx.withClient(func(client *ipc.Client) error {
				req := ipc.TuneRequest{
					Frequency:  freq,
					SymbolRate: symbolRate,
					Delivery:   delivery,
					Modulation: modulation,
					Voltage:    voltage,
					Tone:       useTone,
					Azimuth:    azimuth,
				}
				if err := client.SetSettings(cmd.Context(), req); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, req)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "tuner set to %s MHz\n", strconv.FormatInt(freq, 10))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&frequency, "frequency", 0, "Frequency in MHz (transponder frequency when --lnb is set)")
	cmd.Flags().Int64Var(&symbolRate, "symbol-rate", 0, "Symbol rate in kS/s")
	cmd.Flags().StringVar(&delivery, "delivery", "dvb-s", "Delivery system (dvb-s or dvb-s2)")
	cmd.Flags().StringVar(&modulation, "modulation", "qpsk", "Modulation (qpsk or 8psk)")
	cmd.Flags().Int64Var(&voltage, "voltage", 13, "LNB voltage (13 or 18)")
	cmd.Flags().BoolVar(&tone, "tone", false, "Enable the 22 kHz tone (ignored when --lnb is set)")
	cmd.Flags().Int64Var(&azimuth, "azimuth", 0, "Dish azimuth in degrees")
	cmd.Flags().StringVar(&lnbType, "lnb", "", "LNB type for frequency conversion: k, c, or u")
	_ = cmd.MarkFlagRequired("frequency")
	_ = cmd.MarkFlagRequired("symbol-rate")

	return cmd
}
