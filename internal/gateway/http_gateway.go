package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/VJNAVEEN2005/aic-query-service/internal/config"
	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
)

const tokenHeader = "token"

type httpGateway struct {
	client  *http.Client
	baseURL string
	screens map[string]config.ScreenConfig
	sf      singleflight.Group
}

// NewHTTPGateway creates a gateway against the CMS backend with a shared
// HTTP client. The configured timeout is enforced client-side and surfaces
// as a timeout FetchError.
func NewHTTPGateway(cfg config.UpstreamConfig, screens []config.ScreenConfig) Gateway {
	byName := make(map[string]config.ScreenConfig, len(screens))
	for _, s := range screens {
		byName[s.Name] = s
	}
	return &httpGateway{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		screens: byName,
	}
}

func (g *httpGateway) FetchPage(ctx context.Context, state domain.QueryState) (*domain.ResultPage, error) {
	screen, ok := g.screens[state.Screen]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScreen, state.Screen)
	}

	reqURL := g.buildURL(screen, state)

	// Identical concurrent requests (several sessions on the same screen
	// and page) share one upstream round trip.
	res, err, _ := g.sf.Do(reqURL, func() (interface{}, error) {
		return g.getPage(ctx, reqURL, screen.ItemsField)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.ResultPage), nil
}

func (g *httpGateway) buildURL(screen config.ScreenConfig, state domain.QueryState) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(state.Page))
	q.Set("limit", strconv.Itoa(state.PageSize))

	var path string
	if state.SearchMode && state.SearchTerm != "" {
		path = screen.SearchPath
		q.Set("search", state.SearchTerm)
	} else {
		path = strings.ReplaceAll(screen.ListPath, "{domain}", url.PathEscape(state.Domain))
	}
	if state.SortKey != "" {
		q.Set("sortBy", state.SortKey)
		q.Set("order", string(state.SortOrder))
	}

	return g.baseURL + path + "?" + q.Encode()
}

func (g *httpGateway) getPage(ctx context.Context, reqURL, itemsField string) (*domain.ResultPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchNetwork, "failed to build request", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchNetwork, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := upstreamMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		}
		return nil, domain.NewFetchError(domain.FetchServerRejected, msg, nil)
	}

	return normalizePage(body, itemsField)
}

func (g *httpGateway) DeleteRecord(ctx context.Context, screenName, id, token string) error {
	screen, ok := g.screens[screenName]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownScreen, screenName)
	}

	path := strings.ReplaceAll(screen.DeletePath, "{id}", url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, g.baseURL+path, nil)
	if err != nil {
		return domain.NewFetchError(domain.FetchNetwork, "failed to build request", err)
	}
	req.Header.Set(tokenHeader, token)

	resp, err := g.client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewFetchError(domain.FetchNetwork, "failed to read response", err)
	}

	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || json.Unmarshal(body, &env) != nil || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = upstreamMessage(body)
		}
		if msg == "" {
			msg = fmt.Sprintf("delete rejected with status %d", resp.StatusCode)
		}
		return domain.NewFetchError(domain.FetchServerRejected, msg, nil)
	}
	return nil
}

// paginationPayload mirrors the upstream pagination block. The total-count
// key varies per resource (totalUsers, totalEvents, ...), so it is resolved
// separately in normalizePage.
type paginationPayload struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// normalizePage turns a 2xx upstream body into a ResultPage. A payload
// missing the success flag, items array, or pagination block is malformed.
func normalizePage(body []byte, itemsField string) (*domain.ResultPage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, domain.NewFetchError(domain.FetchMalformed, "response is not a JSON object", err)
	}

	rawSuccess, ok := fields["success"]
	if !ok {
		return nil, domain.NewFetchError(domain.FetchMalformed, "response missing success flag", nil)
	}
	var success bool
	if err := json.Unmarshal(rawSuccess, &success); err != nil {
		return nil, domain.NewFetchError(domain.FetchMalformed, "invalid success flag", err)
	}
	if !success {
		msg := upstreamMessage(body)
		if msg == "" {
			msg = "upstream reported failure"
		}
		return nil, domain.NewFetchError(domain.FetchServerRejected, msg, nil)
	}

	rawItems, ok := fields[itemsField]
	if !ok {
		return nil, domain.NewFetchError(domain.FetchMalformed, fmt.Sprintf("response missing %q", itemsField), nil)
	}
	items := []domain.Record{}
	if err := json.Unmarshal(rawItems, &items); err != nil {
		return nil, domain.NewFetchError(domain.FetchMalformed, fmt.Sprintf("invalid %q array", itemsField), err)
	}

	rawPagination, ok := fields["pagination"]
	if !ok {
		return nil, domain.NewFetchError(domain.FetchMalformed, "response missing pagination", nil)
	}
	var p paginationPayload
	if err := json.Unmarshal(rawPagination, &p); err != nil {
		return nil, domain.NewFetchError(domain.FetchMalformed, "invalid pagination", err)
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}

	return &domain.ResultPage{
		Items:       items,
		TotalItems:  totalCount(rawPagination),
		TotalPages:  p.TotalPages,
		HasNext:     p.HasNextPage,
		HasPrevious: p.HasPreviousPage,
	}, nil
}

// totalCount picks the per-resource total out of the pagination block
// (totalUsers, totalEvents, totalEventRecords, ...).
func totalCount(rawPagination json.RawMessage) int {
	var counts map[string]json.RawMessage
	if err := json.Unmarshal(rawPagination, &counts); err != nil {
		return 0
	}
	for key, raw := range counts {
		if key == "totalPages" || !strings.HasPrefix(key, "total") {
			continue
		}
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			return n
		}
	}
	return 0
}

// upstreamMessage extracts the message field from an error body, if any.
func upstreamMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}

func classifyTransportError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return domain.NewFetchError(domain.FetchTimeout, "upstream request timed out", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewFetchError(domain.FetchTimeout, "upstream request timed out", err)
	}
	return domain.NewFetchError(domain.FetchNetwork, "upstream request failed", err)
}
