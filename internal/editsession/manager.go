package editsession

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const defaultTTL = time.Hour

// ManagerConfig tunes the session manager.
type ManagerConfig struct {
	// TTL is how long an untouched session survives.
	TTL         time.Duration
	Concurrency int
	Now         func() time.Time
	Observer    Observer
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

type managedSession struct {
	session *Session
	// owner is the subject that opened the session; only it may reach the session again.
	owner    string
	lastSeen time.Time
}

// Manager owns the live edit sessions of this process.
type Manager struct {
	stores     Stores
	cfg        ManagerConfig
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*managedSession
}

// NewManager constructs a manager over stores.
func NewManager(stores Stores, cfg ManagerConfig) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Manager{
		stores:     stores,
		cfg:        cfg,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger,
		sessions:   map[string]*managedSession{},
	}
}

// Open starts a session for stafferID on behalf of owner, or a create session
// when stafferID is empty.
func (m *Manager) Open(ctx context.Context, owner, stafferID string) (*Session, error) {
	session, err := Open(ctx, m.stores, stafferID, Options{
		Concurrency: m.cfg.Concurrency,
		Now:         m.cfg.Now,
		Observer:    m.cfg.Observer,
		Logger:      m.logger,
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.sessions[session.ID()] = &managedSession{session: session, owner: owner, lastSeen: m.cfg.Now()}
	m.logger.Debug("edit session opened",
		zap.String("session_id", session.ID()),
		zap.String("staffer_id", stafferID),
		zap.String("owner", owner))
	return session, nil
}

// Get returns owner's live session and refreshes its lifetime. A session
// opened by someone else reads as not found.
func (m *Manager) Get(owner, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	managed, ok := m.sessions[id]
	if !ok || managed.owner != owner {
		return nil, errorutil.NewNotFound("edit session", map[string]any{"session_id": id})
	}
	managed.lastSeen = m.cfg.Now()
	return managed.session, nil
}

// Commit commits the session. A fully successful commit closes it; otherwise
// the session stays open holding the failed operations.
func (m *Manager) Commit(ctx context.Context, owner, id string) (*CommitReport, error) {
	session, err := m.Get(owner, id)
	if err != nil {
		return nil, err
	}
	report, err := session.Commit(ctx)
	if err != nil {
		return nil, err
	}

	failed := len(report.Failed())
	m.logger.Info("edit session committed",
		zap.String("session_id", id),
		zap.String("staffer_id", report.StafferID),
		zap.Int("operations", len(report.Results)),
		zap.Int("failed", failed))
	if m.dispatcher != nil {
		event := events.NewEvent(events.EventStafferSaved, report.StafferID, events.StafferSavedPayload{
			Created:   report.Created,
			Succeeded: len(report.Results) - failed,
			Failed:    failed,
		})
		if err := m.dispatcher.Publish(ctx, event); err != nil {
			m.logger.Warn("staffer saved event failed", zap.Error(err))
		}
	}
	if failed == 0 {
		m.Close(owner, id)
	}
	return report, nil
}

// Close discards owner's session and its staged changes.
func (m *Manager) Close(owner, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	managed, ok := m.sessions[id]
	if !ok || managed.owner != owner {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Sweep drops sessions idle for longer than the TTL and reports how many.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked()
}

func (m *Manager) sweepLocked() int {
	cutoff := m.cfg.Now().Add(-m.cfg.TTL)
	expired := 0
	for id, managed := range m.sessions {
		if managed.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			expired++
		}
	}
	if expired > 0 {
		m.logger.Info("expired edit sessions", zap.Int("count", expired))
	}
	return expired
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
