// Package query owns the per-screen filter state and decides when the
// gateway is asked for a fresh page.
package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/VJNAVEEN2005/aic-query-service/internal/config"
	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
	"github.com/VJNAVEEN2005/aic-query-service/internal/gateway"
)

// Controller is the single writer of one screen's QueryState. Every fetch
// carries a monotonic sequence number; only the latest issued fetch may
// apply its result, so a slow stale response can never overwrite a newer one.
type Controller struct {
	mu     sync.Mutex
	screen config.ScreenConfig
	gw     gateway.Gateway

	state    domain.QueryState
	page     *domain.ResultPage
	phase    domain.Phase
	errMsg   string
	seq      uint64
	inFlight bool
}

// NewController creates an idle controller for one screen. No fetch happens
// until Start is called (the screen "mount").
func NewController(screen config.ScreenConfig, gw gateway.Gateway) *Controller {
	return &Controller{
		screen: screen,
		gw:     gw,
		state: domain.QueryState{
			Screen:   screen.Name,
			Domain:   screen.DefaultDomain,
			Page:     1,
			PageSize: screen.PageSize,
		},
		page:  domain.EmptyPage(),
		phase: domain.PhaseIdle,
	}
}

// Start issues the initial domain-scoped fetch.
func (c *Controller) Start(ctx context.Context) error {
	return c.refetch(ctx)
}

// SetDomain switches the category filter, leaves search mode, resets to
// page 1 and refetches.
func (c *Controller) SetDomain(ctx context.Context, dom string) error {
	if c.screen.HasDomains() && !c.screen.KnowsDomain(dom) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownDomain, dom)
	}

	c.mu.Lock()
	c.state.Domain = dom
	c.state.SearchTerm = ""
	c.state.SearchMode = false
	c.state.Page = 1
	c.mu.Unlock()

	return c.refetch(ctx)
}

// SetSearchTerm updates the term without fetching. Suggestion recomputation
// is the caller's only reaction to a keystroke.
func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	c.state.SearchTerm = term
	c.mu.Unlock()
}

// SubmitSearch enters search mode at page 1 and fetches from the
// global-search endpoint. An empty term instead falls back to the current
// domain listing, exiting search mode.
func (c *Controller) SubmitSearch(ctx context.Context, term string) error {
	if term == "" {
		c.mu.Lock()
		dom := c.state.Domain
		c.mu.Unlock()
		return c.SetDomain(ctx, dom)
	}

	c.mu.Lock()
	c.state.SearchTerm = term
	c.state.SearchMode = true
	c.state.Page = 1
	c.mu.Unlock()

	return c.refetch(ctx)
}

// ClearSearch is equivalent to submitting an empty term.
func (c *Controller) ClearSearch(ctx context.Context) error {
	return c.SubmitSearch(ctx, "")
}

// ChangePage moves to another page of the current listing or search. The
// call is rejected silently when the target is out of range or a fetch is
// already in flight.
func (c *Controller) ChangePage(ctx context.Context, page int) error {
	c.mu.Lock()
	if c.inFlight || page < 1 || page > c.page.TotalPages || page == c.state.Page {
		c.mu.Unlock()
		return nil
	}
	c.state.Page = page
	c.mu.Unlock()

	return c.refetch(ctx)
}

// Refresh re-issues the fetch for the current state, e.g. after a delete.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.refetch(ctx)
}

// Items returns the currently loaded rows, the only material the
// suggestion engine ever sees.
func (c *Controller) Items() []domain.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page.Items
}

// Snapshot returns the visible state of the screen.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Snapshot{
		State:    c.state,
		Phase:    c.phase,
		Page:     c.page,
		ErrorMsg: c.errMsg,
	}
}

func (c *Controller) refetch(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.inFlight = true
	c.phase = domain.PhaseLoading
	state := c.state
	c.mu.Unlock()

	page, err := c.gw.FetchPage(ctx, state)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		// Superseded by a later operation; the newer fetch wins.
		return nil
	}
	c.inFlight = false

	if err != nil {
		// The reference screens blank the table on failure rather than
		// keeping the stale rows, so the page is cleared here too.
		c.page = domain.EmptyPage()
		c.phase = domain.PhaseError
		c.errMsg = fetchMessage(err)
		return err
	}

	c.page = page
	c.phase = domain.PhaseLoaded
	c.errMsg = ""
	if c.state.Page > page.TotalPages {
		c.state.Page = page.TotalPages
	}
	if c.state.Page < 1 {
		c.state.Page = 1
	}
	return nil
}

func fetchMessage(err error) string {
	if fe, ok := domain.AsFetchError(err); ok {
		return fe.Message
	}
	return err.Error()
}
