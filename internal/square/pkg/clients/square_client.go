package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"possync_api/internal/square/business/models/dto/response"
	"possync_api/internal/square/business/services"
	"possync_api/metrics"
	"possync_api/pkg/logger"
)

const (
	locationsEndpoint = "/v2/locations"
	catalogEndpoint   = "/v2/catalog/list"
	inventoryEndpoint = "/v2/inventory/counts"
	paymentsEndpoint  = "/v2/payments"
	ordersEndpoint    = "/v2/orders"
)

// SquareClient fetches raw records from the provider API. It owns
// pagination and rate-limit behavior and performs no data shaping:
// every list call returns the concatenation of all pages, in page
// order, as raw JSON records.
type SquareClient struct {
	apiURL      string
	auth        services.AuthEngine
	client      *http.Client
	limiter     *rate.Limiter
	backoff     time.Duration
	getAttempts int
	pageSize    int
	log         logger.Logger
}

type Config struct {
	Backoff           time.Duration
	RequestsPerMinute int
	GetAttempts       int
	PageSize          int
}

func NewSquareClient(apiURL string, auth services.AuthEngine, cfg Config, writer io.Writer) *SquareClient {
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute)
	}
	if cfg.GetAttempts <= 0 {
		cfg.GetAttempts = 5
	}
	return &SquareClient{
		apiURL:      apiURL,
		auth:        auth,
		client:      &http.Client{Timeout: 100 * time.Second},
		limiter:     limiter,
		backoff:     cfg.Backoff,
		getAttempts: cfg.GetAttempts,
		pageSize:    cfg.PageSize,
		log:         logger.NewLogger(writer, "[SquareClient]"),
	}
}

func (c *SquareClient) ListLocations(ctx context.Context) ([]json.RawMessage, error) {
	return c.fetchAllPages(ctx, locationsEndpoint, url.Values{}, func(body []byte) ([]json.RawMessage, string, error) {
		var page response.LocationsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, "", err
		}
		return page.Locations, page.Cursor, nil
	})
}

// ListCatalog returns catalog objects of the given comma-separated
// types, e.g. "ITEM,ITEM_VARIATION" or "CATEGORY".
func (c *SquareClient) ListCatalog(ctx context.Context, types string) ([]json.RawMessage, error) {
	query := c.pagedQuery()
	if types != "" {
		query.Set("types", types)
	}
	return c.fetchAllPages(ctx, catalogEndpoint, query, func(body []byte) ([]json.RawMessage, string, error) {
		var page response.CatalogListResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, "", err
		}
		return page.Objects, page.Cursor, nil
	})
}

func (c *SquareClient) ListInventoryCounts(ctx context.Context) ([]json.RawMessage, error) {
	return c.fetchAllPages(ctx, inventoryEndpoint, c.pagedQuery(), func(body []byte) ([]json.RawMessage, string, error) {
		var page response.InventoryCountsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, "", err
		}
		return page.Counts, page.Cursor, nil
	})
}

// ListPayments returns all payments in the half-open window [begin, end).
func (c *SquareClient) ListPayments(ctx context.Context, begin, end time.Time) ([]json.RawMessage, error) {
	query := c.pagedQuery()
	query.Set("begin_time", begin.UTC().Format(time.RFC3339))
	query.Set("end_time", end.UTC().Format(time.RFC3339))
	return c.fetchAllPages(ctx, paymentsEndpoint, query, func(body []byte) ([]json.RawMessage, string, error) {
		var page response.PaymentsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, "", err
		}
		return page.Payments, page.Cursor, nil
	})
}

// GetOrder fetches one order by id. A missing order is not an error:
// both return values are nil so the caller can skip it.
func (c *SquareClient) GetOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	endpoint := ordersEndpoint + "/" + url.PathEscape(orderID)
	for attempt := 1; attempt <= c.getAttempts; attempt++ {
		if err := c.waitLimiter(ctx); err != nil {
			return nil, err
		}

		status, body, err := c.doGet(ctx, endpoint, nil)
		if err != nil {
			return nil, err
		}

		switch {
		case status == http.StatusTooManyRequests:
			metrics.RecordRateLimitWait(ordersEndpoint)
			c.log.Log("Rate limited on %s (attempt %d/%d), backing off %s", endpoint, attempt, c.getAttempts, c.backoff)
			if err := c.sleep(ctx); err != nil {
				return nil, err
			}
		case status == http.StatusNotFound:
			return nil, nil
		case status != http.StatusOK:
			return nil, fmt.Errorf("unexpected status %d from %s: %s", status, endpoint, string(body))
		default:
			var resp response.OrderResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, fmt.Errorf("failed to decode order %s: %w", orderID, err)
			}
			return resp.Order, nil
		}
	}
	return nil, fmt.Errorf("order %s: still rate limited after %d attempts", orderID, c.getAttempts)
}

// pagedQuery seeds the page size for the list endpoints that accept
// one. The locations endpoint is not paged by size.
func (c *SquareClient) pagedQuery() url.Values {
	query := url.Values{}
	if c.pageSize > 0 {
		query.Set("limit", strconv.Itoa(c.pageSize))
	}
	return query
}

// fetchAllPages drives the cursor loop. A 429 repeats the request with
// the same cursor after the backoff pause, so no page is skipped or
// fetched twice.
func (c *SquareClient) fetchAllPages(
	ctx context.Context,
	endpoint string,
	baseQuery url.Values,
	extract func(body []byte) ([]json.RawMessage, string, error),
) ([]json.RawMessage, error) {
	var all []json.RawMessage
	cursor := ""

	for {
		if err := c.waitLimiter(ctx); err != nil {
			return nil, err
		}

		query := url.Values{}
		for k, vs := range baseQuery {
			query[k] = vs
		}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		status, body, err := c.doGet(ctx, endpoint, query)
		if err != nil {
			return nil, err
		}

		if status == http.StatusTooManyRequests {
			metrics.RecordRateLimitWait(endpoint)
			c.log.Log("Rate limited on %s, backing off %s", endpoint, c.backoff)
			if err := c.sleep(ctx); err != nil {
				return nil, err
			}
			continue
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s: %s", status, endpoint, string(body))
		}

		records, next, err := extract(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s page: %w", endpoint, err)
		}
		all = append(all, records...)

		if next == "" {
			return all, nil
		}
		cursor = next
	}
}

func (c *SquareClient) doGet(ctx context.Context, endpoint string, query url.Values) (int, []byte, error) {
	reqURL := c.apiURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.auth.SetApiKey(req)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return 0, nil, fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return 0, nil, fmt.Errorf("failed to execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	metrics.RecordProviderRequest(endpoint, resp.StatusCode, time.Since(start))

	return resp.StatusCode, body, nil
}

func (c *SquareClient) waitLimiter(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	return nil
}

func (c *SquareClient) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.backoff):
		return nil
	}
}
