// Package chat implements the region-scoped conversation flow. Every
// outgoing message runs through the province resolver first: a match moves
// the session's region focus, an ambiguous result pauses the send and offers
// choices, and anything else is forwarded to the assistant unchanged.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/enttlevo/mapai/internal/domain"
	"github.com/enttlevo/mapai/internal/geo"
	"github.com/enttlevo/mapai/internal/infra/assistant"
	"github.com/enttlevo/mapai/internal/infra/metrics"
	"github.com/enttlevo/mapai/internal/infra/sqlite"
)

// RegionFinder resolves a canonical province name to a catalog region.
type RegionFinder interface {
	FindByProvince(ctx context.Context, province string) (domain.Region, bool)
}

// Service drives chat sessions. The index function is called per message so
// a dataset reload can swap the index under a running service.
type Service struct {
	db      *sqlite.DB
	asker   assistant.Asker
	regions RegionFinder
	index   func() *geo.Index

	mu      sync.Mutex
	pending map[string][]string // session id -> options awaiting a choice
}

// NewService wires a chat service.
func NewService(db *sqlite.DB, asker assistant.Asker, regions RegionFinder, index func() *geo.Index) *Service {
	return &Service{
		db:      db,
		asker:   asker,
		regions: regions,
		index:   index,
		pending: make(map[string][]string),
	}
}

// Reply is the outcome of one Send. Either Answer is set (the message was
// forwarded) or Options is set (disambiguation required, nothing forwarded).
type Reply struct {
	SessionID string            `json:"session_id"`
	Detection geo.DetectionKind `json:"detection"`
	Province  string            `json:"province,omitempty"`
	Answer    string            `json:"answer,omitempty"`
	Options   []string          `json:"options,omitempty"`
}

// StartSession creates and persists a fresh session.
func (s *Service) StartSession() (domain.Session, error) {
	id := uuid.New().String()
	now := time.Now()
	if err := s.db.CreateSession(id, now); err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	metrics.SessionsCreated.Inc()
	return domain.Session{ID: id, CreatedAt: now, LastActive: now}, nil
}

// Send processes one user message for a session. Sessions the frontend
// minted itself (it keeps a uuid in local storage) are created on first use.
func (s *Service) Send(ctx context.Context, sessionID, text string) (Reply, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Reply{}, err
	}

	det := geo.DetectProvince(text, s.index())
	metrics.DetectionsTotal.WithLabelValues(string(det.Kind)).Inc()

	switch det.Kind {
	case geo.DetectionAmbiguous:
		// Pause the send; the UI presents the options as choices.
		s.mu.Lock()
		s.pending[sess.ID] = det.Options
		s.mu.Unlock()
		_ = s.db.TouchSession(sess.ID, time.Now())
		metrics.ChatRequests.WithLabelValues("disambiguation").Inc()
		return Reply{
			SessionID: sess.ID,
			Detection: det.Kind,
			Options:   det.Options,
		}, nil

	case geo.DetectionMatched:
		s.clearPending(sess.ID)
		sess.Province = det.Province
		if region, ok := s.regions.FindByProvince(ctx, det.Province); ok {
			sess.RegionID = region.RegionID
		}
		if err := s.db.FocusSession(sess.ID, sess.RegionID, sess.Province, time.Now()); err != nil {
			return Reply{}, fmt.Errorf("focus session: %w", err)
		}
	}

	return s.forward(ctx, sess, text, det.Kind)
}

// Choose resolves a pending disambiguation by direct selection. The text is
// never re-parsed; the choice is applied as-is.
func (s *Service) Choose(ctx context.Context, sessionID, province string) (domain.Session, error) {
	sess, err := s.db.GetSession(sessionID)
	if err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	options, ok := s.pending[sess.ID]
	s.mu.Unlock()
	if !ok {
		return domain.Session{}, domain.ErrNoPendingChoice
	}

	want := geo.Normalize(province)
	chosen := ""
	for _, o := range options {
		if geo.Normalize(o) == want {
			chosen = o
			break
		}
	}
	if chosen == "" {
		return domain.Session{}, domain.ErrInvalidChoice
	}

	sess.Province = chosen
	if region, found := s.regions.FindByProvince(ctx, chosen); found {
		sess.RegionID = region.RegionID
	}
	if err := s.db.FocusSession(sess.ID, sess.RegionID, sess.Province, time.Now()); err != nil {
		return domain.Session{}, fmt.Errorf("focus session: %w", err)
	}
	s.clearPending(sess.ID)

	sess.LastActive = time.Now()
	return sess, nil
}

// History returns a session's persisted transcript, oldest first.
func (s *Service) History(sessionID string, limit int) ([]domain.Exchange, error) {
	return s.db.SessionHistory(sessionID, limit)
}

// forward sends the message to the assistant and persists the exchange.
func (s *Service) forward(ctx context.Context, sess domain.Session, text string, kind geo.DetectionKind) (Reply, error) {
	start := time.Now()
	answer, err := s.asker.Ask(ctx, sess.RegionID, sess.ID, text)
	metrics.AssistantLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChatRequests.WithLabelValues("error").Inc()
		return Reply{}, fmt.Errorf("assistant: %w", err)
	}

	_, err = s.db.InsertExchange(domain.Exchange{
		SessionID: sess.ID,
		Prompt:    text,
		Response:  answer,
		Province:  sess.Province,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return Reply{}, fmt.Errorf("persist exchange: %w", err)
	}
	_ = s.db.TouchSession(sess.ID, time.Now())

	metrics.ChatRequests.WithLabelValues("answered").Inc()
	return Reply{
		SessionID: sess.ID,
		Detection: kind,
		Province:  sess.Province,
		Answer:    answer,
	}, nil
}

func (s *Service) session(id string) (domain.Session, error) {
	if id == "" {
		return s.StartSession()
	}
	sess, err := s.db.GetSession(id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		now := time.Now()
		if err := s.db.CreateSession(id, now); err != nil {
			return domain.Session{}, fmt.Errorf("create session: %w", err)
		}
		metrics.SessionsCreated.Inc()
		return domain.Session{ID: id, CreatedAt: now, LastActive: now}, nil
	}
	return sess, err
}

func (s *Service) clearPending(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}
