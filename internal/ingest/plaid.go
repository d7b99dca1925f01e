package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"

	"github.com/spendy-app/spendy/internal/common"
	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/service"
)

// PlaidConfig holds Plaid API configuration.
type PlaidConfig struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c *PlaidConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: plaid client ID is required", common.ErrMissingConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: plaid secret is required", common.ErrMissingConfig)
	}
	if c.AccessToken == "" {
		return fmt.Errorf("%w: plaid access token is required", common.ErrMissingConfig)
	}
	switch c.Environment {
	case "sandbox", "production":
		return nil
	default:
		return fmt.Errorf("%w: plaid environment must be sandbox or production", common.ErrInvalidConfig)
	}
}

// PlaidFetcher pulls expense rows from a linked bank account. It is the
// one remote row source; everything else parses local files.
type PlaidFetcher struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	accessToken string
	retryOpts   service.RetryOptions
}

// NewPlaidFetcher creates a Plaid-backed row source.
func NewPlaidFetcher(cfg PlaidConfig) (*PlaidFetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &PlaidFetcher{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
		logger:      slog.Default().With("component", "plaid"),
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// Fetch returns expense rows for the date range. Plaid reports expenses as
// positive amounts and deposits as negative ones; deposits are skipped and
// Plaid's own category hint is carried through as the raw category.
func (f *PlaidFetcher) Fetch(ctx context.Context, startDate, endDate time.Time) ([]model.RawRecord, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	f.logger.Info("Fetching transactions from Plaid",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var all []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		var page []plaid.Transaction

		retryErr := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				f.accessToken,
				startDate.Format("2006-01-02"),
				endDate.Format("2006-01-02"),
			)
			request.SetOptions(plaid.TransactionsGetRequestOptions{
				Count:  plaid.PtrInt32(pageSize),
				Offset: plaid.PtrInt32(offset),
			})

			resp, _, err := f.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				if plaidError := extractPlaidError(err); plaidError != nil {
					if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
						f.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
						return &common.RetryableError{Err: err, Retryable: true}
					}
					return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
				}
				return fmt.Errorf("failed to fetch transactions: %w", err)
			}

			page = resp.GetTransactions()
			return nil
		}, f.retryOpts)
		if retryErr != nil {
			return nil, retryErr
		}

		all = append(all, page...)
		if len(page) < int(pageSize) {
			break
		}
		offset += pageSize
	}

	rows := make([]model.RawRecord, 0, len(all))
	for _, tx := range all {
		if tx.GetAmount() <= 0 {
			continue
		}

		categoryHint := model.CategoryUnknown.String()
		if cats := tx.GetCategory(); len(cats) > 0 {
			categoryHint = cats[len(cats)-1]
		}

		item := tx.GetMerchantName()
		if item == "" {
			item = tx.GetName()
		}
		if item == "" {
			continue
		}

		rows = append(rows, model.RawRecord{
			Category: categoryHint,
			Item:     item,
			Amount:   tx.GetAmount(),
		})
	}

	f.logger.Info("Fetched all transactions", "rows", len(rows))
	return rows, nil
}

// extractPlaidError pulls the structured Plaid error out of an API error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}
