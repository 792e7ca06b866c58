package gateway

import (
	"context"

	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
)

// Gateway defines the interface to the CMS REST backend. It is the only
// component that issues network requests.
type Gateway interface {
	// FetchPage translates the query state into a domain-scoped list or a
	// global-search request and normalizes the response into a ResultPage.
	FetchPage(ctx context.Context, state domain.QueryState) (*domain.ResultPage, error)

	// DeleteRecord removes one upstream record, forwarding the opaque
	// auth token as the "token" request header.
	DeleteRecord(ctx context.Context, screen, id, token string) error
}
