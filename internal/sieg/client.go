package sieg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/frzanini/downloadSiegHub/internal/common"
)

// Client talks to the SIEG BaixarXmls endpoint. Calls are rate limited so a
// full-day sweep does not hammer the API.
type Client struct {
	httpc   *http.Client
	baseURL string
	apiKey  string
	take    int
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(cfg common.SiegConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	take := cfg.Take
	if take <= 0 || take > 50 {
		take = 50
	}
	return &Client{
		httpc:   &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		take:    take,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
	}
}

// FetchPage posts one payload and returns the page of base64 blobs. The
// response body is validated against the embedded schema before use.
func (c *Client) FetchPage(ctx context.Context, p Payload) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqID := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	url := fmt.Sprintf("%s?api_key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("sieg.http.request",
		"req_id", reqID,
		"xml_type", p.XmlType.String(),
		"skip", p.Skip,
		"window_start", p.DataEmissaoInicio,
		"window_end", p.DataEmissaoFim,
	)

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error("sieg.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("sieg.http.body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("sieg.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}

	if err := validateResponse(raw); err != nil {
		return nil, common.NewAppError("API_RESPONSE_ERROR", "unexpected BaixarXmls response shape", err)
	}

	var blobs []string
	if err := json.Unmarshal(raw, &blobs); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return blobs, nil
}

// FetchWindow pages through one emission-time window for one document type,
// advancing Skip until a short page signals the end.
func (c *Client) FetchWindow(ctx context.Context, t XmlType, start, end time.Time) ([]string, error) {
	var all []string
	skip := 0
	for {
		page, err := c.FetchPage(ctx, BuildPayload(t, c.take, skip, start, end))
		if err != nil {
			return all, err
		}
		all = append(all, page...)
		if len(page) < c.take {
			return all, nil
		}
		skip += c.take
	}
}

// windowsPerDay slices a day into twelve two-hour emission windows; large
// issuers overflow the page limit on anything coarser.
const windowsPerDay = 12

// DownloadDay sweeps every document type over one calendar day, handing each
// non-empty window's blobs to fn. A failed window is reported and the sweep
// continues; the first fn error aborts.
func (c *Client) DownloadDay(ctx context.Context, day time.Time, fn func(t XmlType, blobs []string) error) error {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	for _, t := range AllXmlTypes {
		for i := 0; i < windowsPerDay; i++ {
			start := dayStart.Add(time.Duration(2*i) * time.Hour)
			end := start.Add(2*time.Hour - time.Second)

			blobs, err := c.FetchWindow(ctx, t, start, end)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("sieg.window.failed",
					"xml_type", t.String(),
					"window_start", start.Format(time.RFC3339),
					"error", err,
				)
				continue
			}
			if len(blobs) == 0 {
				continue
			}
			if err := fn(t, blobs); err != nil {
				return err
			}
		}
	}
	return nil
}
