package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/voxfin/go-voxfin/internal/httpc"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// ErrNoData is returned when the provider answers without usable price data.
var ErrNoData = errors.New("marketdata: no price data")

// Yahoo fetches live quotes from the Yahoo Finance JSON API.
// The latest close comes from the chart endpoint; analyst fields come from
// quoteSummary and are strictly best-effort.
type Yahoo struct {
	config *Config
	client *http.Client
}

// NewYahoo creates a live Yahoo Finance provider.
func NewYahoo(opts ...Option) *Yahoo {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	return &Yahoo{
		config: cfg,
		client: httpc.NewClient(cfg.Timeout),
	}
}

// Snapshot fetches the latest data for symbol.
// It fails when no price can be obtained; missing analyst fields degrade to
// defaults instead (target = price * 1.12, rating "Buy").
func (y *Yahoo) Snapshot(ctx context.Context, symbol string) (*Snapshot, error) {
	price, err := y.latestClose(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	target := price * 1.12
	rating := "Buy"
	peRatio := "N/A"
	company := symbol

	if sum, err := y.quoteSummary(ctx, symbol); err != nil {
		y.config.Logger.Debug("quote summary unavailable", "symbol", symbol, "error", err)
	} else {
		if sum.targetMeanPrice > 0 {
			target = sum.targetMeanPrice
		}
		if sum.recommendationKey != "" {
			rating = sum.recommendationKey
		}
		if sum.trailingPE > 0 {
			peRatio = formatPE(sum.trailingPE)
		}
		if sum.shortName != "" {
			company = sum.shortName
		}
	}

	return New(symbol, company, price, target, HumanizeRating(rating), peRatio), nil
}

// latestClose returns the most recent close price for symbol.
func (y *Yahoo) latestClose(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", y.config.BaseURL, url.PathEscape(symbol))

	var result struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
				} `json:"meta"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := y.getJSON(ctx, u, &result); err != nil {
		return 0, err
	}

	if len(result.Chart.Result) == 0 {
		return 0, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}
	return result.Chart.Result[0].Meta.RegularMarketPrice, nil
}

// analystSummary carries the optional quoteSummary fields.
type analystSummary struct {
	targetMeanPrice   float64
	recommendationKey string
	trailingPE        float64
	shortName         string
}

// quoteSummary fetches analyst fields for symbol. All fields are optional.
func (y *Yahoo) quoteSummary(ctx context.Context, symbol string) (*analystSummary, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=financialData%%2CsummaryDetail%%2Cprice",
		y.config.BaseURL, url.PathEscape(symbol))

	var result struct {
		QuoteSummary struct {
			Result []struct {
				FinancialData *struct {
					TargetMeanPrice struct {
						Raw float64 `json:"raw"`
					} `json:"targetMeanPrice"`
					RecommendationKey string `json:"recommendationKey"`
				} `json:"financialData"`
				SummaryDetail *struct {
					TrailingPE struct {
						Raw float64 `json:"raw"`
					} `json:"trailingPE"`
				} `json:"summaryDetail"`
				Price *struct {
					ShortName string `json:"shortName"`
				} `json:"price"`
			} `json:"result"`
		} `json:"quoteSummary"`
	}
	if err := y.getJSON(ctx, u, &result); err != nil {
		return nil, err
	}

	if len(result.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	r := result.QuoteSummary.Result[0]
	sum := &analystSummary{}
	if r.FinancialData != nil {
		sum.targetMeanPrice = r.FinancialData.TargetMeanPrice.Raw
		sum.recommendationKey = r.FinancialData.RecommendationKey
	}
	if r.SummaryDetail != nil {
		sum.trailingPE = r.SummaryDetail.TrailingPE.Raw
	}
	if r.Price != nil {
		sum.shortName = r.Price.ShortName
	}
	return sum, nil
}

// getJSON performs a single GET and decodes the JSON body into v.
// One attempt only; callers treat any failure as provider degradation.
func (y *Yahoo) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("marketdata: create request: %w", err)
	}
	req.Header.Set("User-Agent", "voxfin/1.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return fmt.Errorf("marketdata: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("marketdata: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("marketdata: decode response: %w", err)
	}
	return nil
}

// Verify Yahoo implements Provider at compile time.
var _ Provider = (*Yahoo)(nil)
