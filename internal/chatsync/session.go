package chatsync

import (
	"context"
	"sync"
	"time"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/pkg/errors"
	"mentorlink/pkg/logger"
)

// State of a session: Idle until activation, Loading while the first
// fetch runs, Synced during the repeating cycle, Stopped after
// deactivation. Stopped is terminal.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateSynced
	StateStopped
)

const DefaultInterval = 5 * time.Second

// Config wires a session to its target and its observer callbacks.
// Callbacks are invoked from the session goroutine, never after Stop
// returns.
type Config struct {
	Target   Target
	ViewerID string
	Repo     repository.ChatRepository
	Receipts *ReceiptTracker

	// Interval between fetches; DefaultInterval when zero.
	Interval time.Duration

	// Prepare runs once on activation, before the first fetch, for
	// recipient or group metadata the view needs exactly once.
	Prepare func(ctx context.Context) error

	// OnMessages receives each full snapshot.
	OnMessages func(Snapshot)

	// OnNotice receives fetch failures worth showing the user. A failed
	// cycle does not kill the session; the next tick retries.
	OnNotice func(error)
}

// Session is the handle returned by Activate. Its lifetime belongs to
// the caller, not to any surrounding component: switching targets means
// stopping this handle and activating a new one, which is what keeps a
// stale poller from writing into the next target's view.
type Session struct {
	cfg      Config
	state    State
	stateMu  sync.Mutex
	cancel   context.CancelFunc
	force    chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Activate starts the poll loop for a target and returns its handle.
func Activate(ctx context.Context, cfg Config) *Session {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		cfg:    cfg,
		state:  StateIdle,
		cancel: cancel,
		force:  make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	go s.run(loopCtx)
	return s
}

// Stop deactivates the session and does not return until the loop has
// exited: no fetch or callback survives it. Safe to call twice.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}

// ForceSync schedules an immediate fetch ahead of the next tick. Used
// after a send so the sender's view reflects the authoritative stored
// state, including a concurrent write that may have displaced their own.
func (s *Session) ForceSync() {
	select {
	case s.force <- struct{}{}:
	default:
	}
}

func (s *Session) State() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.stateMu.Lock()
	s.state = st
	s.stateMu.Unlock()
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	defer s.setState(StateStopped)

	s.setState(StateLoading)

	if s.cfg.Prepare != nil {
		if err := s.cfg.Prepare(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("chatsync: prepare failed for %s: %v", s.cfg.Target.targetID(), err)
			s.notify(err)
		}
	}

	s.cycle(ctx)
	if ctx.Err() != nil {
		return
	}
	s.setState(StateSynced)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-s.force:
		}
		s.cycle(ctx)
	}
}

// cycle performs one fetch and delivers the full sequence. Direct
// targets additionally run the receipt catch-up after a successful
// fetch.
func (s *Session) cycle(ctx context.Context) {
	switch target := s.cfg.Target.(type) {
	case DirectTarget:
		s.cycleDirect(ctx, target)
	case GroupTarget:
		s.cycleGroup(ctx, target)
	}
}

func (s *Session) cycleDirect(ctx context.Context, target DirectTarget) {
	conv, err := s.cfg.Repo.GetConversation(ctx, target.ConversationID)
	if err != nil {
		// A conversation that has never been written is a valid empty
		// thread, not a failure.
		if errors.IsNotFound(err) {
			s.deliver(Snapshot{Direct: []entity.Message{}})
			return
		}
		if ctx.Err() != nil {
			return
		}
		logger.Warn("chatsync: fetch failed for conversation %s: %v", target.ConversationID, err)
		s.notify(err)
		return
	}

	// The document can appear after activation. A viewer it does not
	// name gets no snapshot and no receipt writes on their behalf.
	if !conv.HasParticipant(s.cfg.ViewerID) {
		logger.Warn("chatsync: viewer %s is not part of conversation %s", s.cfg.ViewerID, target.ConversationID)
		s.notify(errors.Forbidden("You are not part of this conversation", nil))
		return
	}

	s.deliver(Snapshot{Direct: conv.Messages})

	if s.cfg.Receipts != nil {
		if _, err := s.cfg.Receipts.CatchUp(ctx, conv, s.cfg.ViewerID); err != nil && ctx.Err() == nil {
			logger.Warn("chatsync: receipt write failed for %s: %v", target.ConversationID, err)
			s.notify(err)
		}
	}
}

func (s *Session) cycleGroup(ctx context.Context, target GroupTarget) {
	messages, err := s.cfg.Repo.ListGroupMessages(ctx, target.GroupID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Warn("chatsync: fetch failed for group %s: %v", target.GroupID, err)
		s.notify(err)
		return
	}

	s.deliver(Snapshot{Group: messages})
}

func (s *Session) deliver(snapshot Snapshot) {
	if s.cfg.OnMessages != nil {
		s.cfg.OnMessages(snapshot)
	}
}

func (s *Session) notify(err error) {
	if s.cfg.OnNotice != nil {
		s.cfg.OnNotice(err)
	}
}
