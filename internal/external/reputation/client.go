// Package reputation reads seller trust tiers from the external reputation
// service. Tier ceilings are computed there; this core only consumes them.
package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/shopspring/decimal"

	"ticketescrow/internal/domain/listing"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type tierParams struct {
	SellerID string `url:"seller_id"`
}

type tierResp struct {
	Tier              string          `json:"tier"`
	MaxAskingPrice    decimal.Decimal `json:"max_asking_price"`
	MaxActiveListings int             `json:"max_active_listings"`
}

func (c *Client) SellerTier(ctx context.Context, sellerID string) (listing.SellerTier, error) {
	params, err := query.Values(tierParams{SellerID: sellerID})
	if err != nil {
		return listing.SellerTier{}, fmt.Errorf("encode params: %w", err)
	}

	url := fmt.Sprintf("%s/sellers/tier?%s", c.BaseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return listing.SellerTier{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return listing.SellerTier{}, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return listing.SellerTier{}, fmt.Errorf("reputation %s: %s", resp.Status, string(raw))
	}

	var out tierResp
	if err := json.Unmarshal(raw, &out); err != nil {
		return listing.SellerTier{}, fmt.Errorf("unmarshal: %w", err)
	}

	return listing.SellerTier{
		Tier:              out.Tier,
		MaxAskingPrice:    out.MaxAskingPrice,
		MaxActiveListings: out.MaxActiveListings,
	}, nil
}
