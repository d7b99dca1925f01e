package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendy-app/spendy/internal/ingest"
	"github.com/spendy-app/spendy/internal/session"
)

func importPlaidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-plaid",
		Short: "Analyze transactions from a linked Plaid account",
		Long: `Fetch transactions for a date range from a bank account linked through
Plaid and feed the expenses into an analysis session. Requires
plaid.client_id, plaid.secret and plaid.access_token in the config.`,
		RunE: runImportPlaid,
	}

	cmd.Flags().String("start", "", "start date (YYYY-MM-DD, default: 30 days ago)")
	cmd.Flags().String("end", "", "end date (YYYY-MM-DD, default: today)")
	cmd.Flags().Bool("finish", false, "save the analysis as a snapshot and reset the session")
	cmd.Flags().StringSlice("exclude", nil, "categories to exclude from the displayed aggregate")
	cmd.Flags().Bool("icons", false, "generate persona icons for the result")

	return cmd
}

func runImportPlaid(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	startDate, endDate, err := dateRange(cmd)
	if err != nil {
		return err
	}

	environment := viper.GetString("plaid.environment")
	if environment == "" {
		environment = "sandbox"
	}

	fetcher, err := ingest.NewPlaidFetcher(ingest.PlaidConfig{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: environment,
		AccessToken: viper.GetString("plaid.access_token"),
	})
	if err != nil {
		return err
	}

	rows, err := fetcher.Fetch(ctx, startDate, endDate)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sess := session.New(store)
	sess.Ingest(rows)

	return showResult(cmd, ctx, store, sess)
}

func dateRange(cmd *cobra.Command) (start, end time.Time, err error) {
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")

	end = time.Now()
	if endStr != "" {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endStr, err)
		}
	}

	start = end.AddDate(0, 0, -30)
	if startStr != "" {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startStr, err)
		}
	}

	return start, end, nil
}
