package service

import (
	"context"

	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
)

// QueryService defines the operations a mounted admin screen triggers.
// Operations that issue a fetch report upstream failures through the
// snapshot's phase and error message, the way the screens render them.
type QueryService interface {
	CreateSession(ctx context.Context, screen string) (*domain.Snapshot, error)
	Snapshot(ctx context.Context, sessionID string) (*domain.Snapshot, error)
	SetDomain(ctx context.Context, sessionID, dom string) (*domain.Snapshot, error)
	SubmitSearch(ctx context.Context, sessionID, term string) (*domain.Snapshot, error)
	ClearSearch(ctx context.Context, sessionID string) (*domain.Snapshot, error)
	ChangePage(ctx context.Context, sessionID string, page int) (*domain.Snapshot, error)
	Suggest(ctx context.Context, sessionID, term string) (*domain.SuggestionPanel, error)
	Cursor(ctx context.Context, sessionID, move, term string) (*domain.CursorResult, error)
	DeleteRecord(ctx context.Context, sessionID, recordID, token string) (*domain.Snapshot, error)
	CloseSession(ctx context.Context, sessionID string) error
}
