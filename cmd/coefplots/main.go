// Command coefplots renders the quantile regression versus OLS coefficient
// charts as PDF and PNG files.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lrud/credit-market-volatility-research/src/coefplot"
	"github.com/lrud/credit-market-volatility-research/src/datasets"
	"github.com/lrud/credit-market-volatility-research/src/logging"
)

var summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

func newRootCmd() *cobra.Command {
	var (
		outDir   string
		logLevel string
		only     []string
	)
	cmd := &cobra.Command{
		Use:   "coefplots",
		Short: "Render QR vs OLS coefficient charts",
		Long: `Renders one chart per predictor comparing quantile regression
coefficients (shaded 95% confidence band) with the OLS estimate.
Each chart is written as {basename}.pdf and {basename}.png.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !logging.ValidLevel(logLevel) {
				return fmt.Errorf("unknown log level %q", logLevel)
			}
			logging.SetLogLevel(logLevel)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, outDir, only)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "figures", "output directory, created when missing")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	cmd.Flags().StringSliceVar(&only, "only", nil, "render only these basenames (comma separated)")
	return cmd
}

func run(cmd *cobra.Command, outDir string, only []string) error {
	defer logging.TimeTrack(time.Now(), "all charts")

	selected, unknown := datasets.Select(only)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown basename(s): %s", strings.Join(unknown, ", "))
	}
	r := coefplot.NewRenderer(coefplot.Options{Stdout: cmd.OutOrStdout()})
	for _, d := range selected {
		if _, err := r.Render(d.Request(outDir)); err != nil {
			return fmt.Errorf("%s: %w", d.Basename, err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), summaryStyle.Render(fmt.Sprintf("All plots generated and saved in '%s' directory.", outDir)))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Errorf("%v", err)
		_ = logging.Sync()
		os.Exit(1)
	}
}
