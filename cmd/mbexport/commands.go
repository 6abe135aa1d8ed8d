package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"connectrpc.com/connect"
	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"github.com/mmynk/moneybalance/internal/export"
	"github.com/mmynk/moneybalance/internal/service"
)

var outDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all calculations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			resp, err := a.svc.ListCalculations(ctx, connect.NewRequest(&service.ListCalculationsRequest{}))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCURRENCY\tPERSONS\tEXPENSES\tCREATED")
			for _, c := range resp.Msg.Calculations {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					c.ID, c.Title, c.MainCurrency, c.PersonCount, c.ExpenseCount,
					time.Unix(c.CreatedAt, 0).Format(time.DateOnly))
			}
			return w.Flush()
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <calculation-id>",
	Short: "Print the settlement of a calculation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			resp, err := a.svc.GetSummary(ctx, connect.NewRequest(&service.GetSummaryRequest{CalculationID: args[0]}))
			if err != nil {
				return err
			}
			s := resp.Msg
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s (%s)\n", s.Title, s.MainCurrency)
			if s.FirstDate != "" {
				span := durafmt.Parse(time.Duration(s.DurationDays) * 24 * time.Hour).LimitFirstN(2)
				fmt.Fprintf(out, "%s to %s, %s\n", s.FirstDate, s.LastDate, span)
			}
			fmt.Fprintf(out, "Total: %s\n\n", s.FormattedTotal)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "PERSON\tPAID\tCONSUMED\tBALANCE\t")
			for _, b := range s.Balances {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", b.Name, b.FormattedPaid, b.FormattedConsumed, b.FormattedBalance)
			}
			return w.Flush()
		})
	},
}

var csvCmd = &cobra.Command{
	Use:   "csv <calculation-id>",
	Short: "Export a calculation as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			resp, err := a.svc.ExportCSV(ctx, connect.NewRequest(&service.ExportCSVRequest{CalculationID: args[0]}))
			if err != nil {
				return err
			}
			return writeExport(cmd, exportDir(a), resp.Msg.FileName, []byte(resp.Msg.Content))
		})
	},
}

var xlsxCmd = &cobra.Command{
	Use:   "xlsx <calculation-id>",
	Short: "Export a calculation as an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			resp, err := a.svc.ExportXLSX(ctx, connect.NewRequest(&service.ExportXLSXRequest{CalculationID: args[0]}))
			if err != nil {
				return err
			}
			return writeExport(cmd, exportDir(a), resp.Msg.FileName, resp.Msg.Content)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{csvCmd, xlsxCmd} {
		c.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: export_dir from config)")
	}
	rootCmd.AddCommand(listCmd, summaryCmd, csvCmd, xlsxCmd)
}

func exportDir(a *app) string {
	if outDir != "" {
		return outDir
	}
	return a.cfg.ExportDir
}

// writeExport stores content under the first free variant of name in dir.
func writeExport(cmd *cobra.Command, dir, name string, content []byte) error {
	dot := strings.LastIndex(name, ".")
	path, err := export.FileName(dir, name[:dot], name[dot+1:])
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
