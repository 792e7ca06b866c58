package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/VJNAVEEN2005/aic-query-service/internal/config"
	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
	"github.com/VJNAVEEN2005/aic-query-service/internal/gateway"
	"github.com/VJNAVEEN2005/aic-query-service/internal/query"
	"github.com/VJNAVEEN2005/aic-query-service/internal/session"
	"github.com/VJNAVEEN2005/aic-query-service/internal/suggest"
	"github.com/VJNAVEEN2005/aic-query-service/pkg/log"
)

// Cursor moves accepted by Cursor.
const (
	CursorDown   = "down"
	CursorUp     = "up"
	CursorSelect = "select"
	CursorEscape = "escape"
)

// ErrInvalidCursorMove is returned for an unrecognized cursor move.
var ErrInvalidCursorMove = errors.New("invalid cursor move")

type queryServiceImpl struct {
	cfg      *config.Config
	gw       gateway.Gateway
	sessions *session.Manager
}

// NewQueryService creates the orchestration layer over sessions.
func NewQueryService(cfg *config.Config, gw gateway.Gateway, sessions *session.Manager) QueryService {
	return &queryServiceImpl{
		cfg:      cfg,
		gw:       gw,
		sessions: sessions,
	}
}

func (s *queryServiceImpl) CreateSession(ctx context.Context, screenName string) (*domain.Snapshot, error) {
	screen, ok := s.cfg.Screen(screenName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScreen, screenName)
	}

	ctrl := query.NewController(screen, s.gw)
	sess := s.sessions.Create(screen.Name, ctrl)

	// Mount fetch. A failure is visible state, not a failed mount.
	if err := ctrl.Start(ctx); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldScreen, screen.Name).Msg("initial fetch failed")
	}

	return s.snapshot(sess), nil
}

func (s *queryServiceImpl) Snapshot(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

func (s *queryServiceImpl) SetDomain(ctx context.Context, sessionID, dom string) (*domain.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Ctrl.SetDomain(ctx, dom); err != nil {
		if errors.Is(err, domain.ErrUnknownDomain) {
			return nil, err
		}
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldScreen, sess.Screen).Msg("domain fetch failed")
	}
	sess.ClearSuggestions()
	return s.snapshot(sess), nil
}

func (s *queryServiceImpl) SubmitSearch(ctx context.Context, sessionID, term string) (*domain.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Ctrl.SubmitSearch(ctx, term); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldScreen, sess.Screen).Msg("search fetch failed")
	}
	sess.ClearSuggestions()
	return s.snapshot(sess), nil
}

func (s *queryServiceImpl) ClearSearch(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	return s.SubmitSearch(ctx, sessionID, "")
}

func (s *queryServiceImpl) ChangePage(ctx context.Context, sessionID string, page int) (*domain.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Ctrl.ChangePage(ctx, page); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldScreen, sess.Screen).Msg("page fetch failed")
	}
	return s.snapshot(sess), nil
}

func (s *queryServiceImpl) Suggest(ctx context.Context, sessionID, term string) (*domain.SuggestionPanel, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Ctrl.SetSearchTerm(term)
	list := suggest.Compute(term, sess.Ctrl.Items(), suggest.MaxSuggestions)
	sess.SetSuggestions(list)

	return &domain.SuggestionPanel{
		Term:        term,
		Suggestions: list,
		Highlight:   -1,
	}, nil
}

func (s *queryServiceImpl) Cursor(ctx context.Context, sessionID, move, term string) (*domain.CursorResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	switch move {
	case CursorDown:
		return &domain.CursorResult{Highlight: sess.CursorDown()}, nil
	case CursorUp:
		return &domain.CursorResult{Highlight: sess.CursorUp()}, nil
	case CursorEscape:
		sess.ClearSuggestions()
		return &domain.CursorResult{Highlight: -1, Closed: true}, nil
	case CursorSelect:
		if picked, ok := sess.Highlighted(); ok {
			// Selection only copies the value into the term; the user
			// still has to submit the search separately.
			sess.Ctrl.SetSearchTerm(picked.Value)
			sess.ClearSuggestions()
			return &domain.CursorResult{
				Highlight:     -1,
				SelectedValue: picked.Value,
				Closed:        true,
			}, nil
		}
		if err := sess.Ctrl.SubmitSearch(ctx, term); err != nil {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldScreen, sess.Screen).Msg("search fetch failed")
		}
		sess.ClearSuggestions()
		return &domain.CursorResult{Highlight: -1, Submitted: true, Closed: true}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCursorMove, move)
	}
}

func (s *queryServiceImpl) DeleteRecord(ctx context.Context, sessionID, recordID, token string) (*domain.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.gw.DeleteRecord(ctx, sess.Screen, recordID, token); err != nil {
		return nil, err
	}

	if err := sess.Ctrl.Refresh(ctx); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldScreen, sess.Screen).Msg("refresh after delete failed")
	}
	return s.snapshot(sess), nil
}

func (s *queryServiceImpl) CloseSession(ctx context.Context, sessionID string) error {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return err
	}
	s.sessions.Remove(sessionID)
	return nil
}

func (s *queryServiceImpl) snapshot(sess *session.Session) *domain.Snapshot {
	snap := sess.Ctrl.Snapshot()
	snap.SessionID = sess.ID
	return &snap
}
