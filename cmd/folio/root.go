package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aristath/stockfolio/internal/clients/stocksapi"
	"github.com/aristath/stockfolio/internal/modules/dashboard"
	"github.com/aristath/stockfolio/internal/modules/holdings"
	"github.com/aristath/stockfolio/internal/modules/portfolio"
	"github.com/aristath/stockfolio/internal/modules/quotes"
	"github.com/aristath/stockfolio/internal/render"
	"github.com/aristath/stockfolio/pkg/logger"
)

// newRootCmd builds the folio command tree. Every flag can also be set
// through a FOLIO_ prefixed environment variable, e.g. FOLIO_PROVIDER=yahoo.
func newRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("folio")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:          "folio",
		Short:        "Print the portfolio table for a sector",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDashboard(v)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), v.GetDuration("timeout"))
			defer cancel()

			// A failed fetch leaves the quote map empty: rows render with a
			// zero CMP and unknown P/E and earnings.
			result := d.Refresh(ctx)
			if !result.Quotes.OK {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: live quotes unavailable: %s\n", result.Quotes.Error)
			}

			sector := v.GetString("sector")
			if !portfolio.IsAllSectors(sector) && !contains(d.Portfolio().Sectors(), sector) {
				return fmt.Errorf("unknown sector %q (available: %s)", sector, strings.Join(d.Portfolio().Sectors(), ", "))
			}

			r := render.New(v.GetBool("json"))
			if err := r.Render(out, d.View(sector), render.Options{
				Color:      v.GetBool("color"),
				PrettyJSON: true,
			}); err != nil {
				return err
			}

			if v.GetBool("strict") && !result.Quotes.OK {
				return fmt.Errorf("failed to fetch quotes: %s", result.Quotes.Error)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("holdings", "", "holdings YAML file (default: embedded sample portfolio)")
	flags.String("percent-mode", string(portfolio.PercentOfFiltered), "portfolio percent base: filtered or portfolio")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.Flags().String("sector", portfolio.AllSectors, "sector to show")
	rootCmd.Flags().String("provider", quotes.ProviderMock, "quote provider: mock or yahoo")
	rootCmd.Flags().String("server", "", "fetch quotes from a stockfolio server at this base URL instead")
	rootCmd.Flags().Int("days", 60, "days of daily history to fetch")
	rootCmd.Flags().Int64("seed", 0, "mock provider seed (0 = time based)")
	rootCmd.Flags().Duration("timeout", 30*time.Second, "overall fetch timeout")
	rootCmd.Flags().Bool("json", false, "print the view as JSON")
	rootCmd.Flags().Bool("color", true, "color gains and losses")
	rootCmd.Flags().Bool("strict", false, "exit non-zero when live quotes could not be fetched")

	_ = v.BindPFlags(flags)
	_ = v.BindPFlags(rootCmd.Flags())

	rootCmd.AddCommand(newSectorsCmd(out, v))

	return rootCmd
}

func newSectorsCmd(out io.Writer, v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "sectors",
		Short: "List the sectors in the holdings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := holdings.NewLoader(v.GetString("holdings"), newLogger(v)).Load()
			if err != nil {
				return err
			}
			for _, s := range portfolio.DistinctSectors(list) {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
}

// buildDashboard wires holdings, a fetcher and the dashboard state the same
// way the server does, minus the scheduler.
func buildDashboard(v *viper.Viper) (*dashboard.Dashboard, error) {
	log := newLogger(v)

	mode, err := portfolio.ParsePercentMode(v.GetString("percent-mode"))
	if err != nil {
		return nil, err
	}

	list, err := holdings.NewLoader(v.GetString("holdings"), log).Load()
	if err != nil {
		return nil, err
	}

	var fetcher dashboard.Fetcher
	if base := v.GetString("server"); base != "" {
		fetcher = stocksapi.NewClient(base, v.GetDuration("timeout"), log)
	} else {
		provider, err := quotes.NewProvider(v.GetString("provider"), quotes.Options{Seed: v.GetInt64("seed")}, log)
		if err != nil {
			return nil, err
		}
		fetcher = quotes.NewFetcher(provider, v.GetDuration("timeout"), log)
	}

	days := v.GetInt("days")
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	if days > quotes.MaxHistoryDays {
		return nil, fmt.Errorf("days must not exceed %d, got %d", quotes.MaxHistoryDays, days)
	}

	return dashboard.New(dashboard.Config{
		Portfolio:   portfolio.NewPortfolioService(list, mode, log),
		Fetcher:     fetcher,
		HistoryDays: days,
		Log:         log,
	}), nil
}

func newLogger(v *viper.Viper) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  v.GetString("log-level"),
		Pretty: true,
	})
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
