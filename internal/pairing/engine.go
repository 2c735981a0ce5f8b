package pairing

import (
	"errors"
	"log/slog"
	"time"

	"reelchat/backend/internal/config"
	"reelchat/backend/internal/models"

	"github.com/google/uuid"
)

// ErrMaintenance is reported to clients asking for a partner while matching is paused.
var ErrMaintenance = errors.New(config.TextMaintenance)

// ChatCounter is the identity collaborator's hook for counting chats per user.
// Implementations must not block the caller.
type ChatCounter interface {
	IncrementChatCount(userID string)
}

type noopCounter struct{}

func (noopCounter) IncrementChatCount(string) {}

// Engine binds the registry, queue, pair table and session store into one
// state machine. Every method must be called from the same goroutine.
type Engine struct {
	registry *Registry
	queue    *WaitingQueue
	pairs    *PairTable
	sessions *SessionStore

	counter     ChatCounter
	log         *slog.Logger
	maintenance bool
}

type Option func(*engineOptions)

type engineOptions struct {
	counter      ChatCounter
	now          func() time.Time
	newID        func() string
	historyLimit int
	maintenance  bool
}

func WithChatCounter(c ChatCounter) Option {
	return func(o *engineOptions) { o.counter = c }
}

func WithClock(now func() time.Time) Option {
	return func(o *engineOptions) { o.now = now }
}

func WithSessionIDs(newID func() string) Option {
	return func(o *engineOptions) { o.newID = newID }
}

func WithHistoryLimit(n int) Option {
	return func(o *engineOptions) { o.historyLimit = n }
}

func WithMaintenance(on bool) Option {
	return func(o *engineOptions) { o.maintenance = on }
}

func NewEngine(log *slog.Logger, opts ...Option) *Engine {
	o := engineOptions{
		counter:      noopCounter{},
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
		historyLimit: config.DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		registry:    NewRegistry(),
		queue:       NewWaitingQueue(),
		pairs:       NewPairTable(),
		sessions:    NewSessionStore(o.historyLimit, o.now, o.newID),
		counter:     o.counter,
		log:         log,
		maintenance: o.maintenance,
	}
}

// Connect registers a freshly opened transport and broadcasts the new online count.
func (e *Engine) Connect(conn Conn) {
	e.registry.Add(conn)
	e.log.Info("connection registered", "connection_id", conn.ID(), "online", e.registry.Len())
	e.broadcastOnline()
}

// Register binds an identity to a live connection.
func (e *Engine) Register(connID string, identity models.Identity) {
	if !e.registry.Bind(connID, identity) {
		e.log.Debug("register for unknown connection", "connection_id", connID)
		return
	}
	e.log.Debug("identity bound", "connection_id", connID, "user_id", identity.UserID)
}

// FindPartner drops any current pairing or queue slot and queues connID again.
// While maintenance mode is active the request is rejected and nothing changes.
func (e *Engine) FindPartner(connID string) {
	if !e.registry.IsRegistered(connID) {
		return
	}
	if e.maintenance {
		e.registry.Send(connID, models.NewError(models.ErrorCodeMaintenance, ErrMaintenance.Error()))
		return
	}
	e.teardown(connID, false)
	e.enqueue(connID)
}

// Message logs text to connID's session and forwards it to the partner.
// Messages from unpaired connections are dropped.
func (e *Engine) Message(connID, text string) {
	partner, ok := e.pairs.PartnerOf(connID)
	if !ok {
		e.log.Debug("message from unpaired connection dropped", "connection_id", connID)
		return
	}
	sender := e.registry.IdentityOf(connID).Username
	if _, ok := e.sessions.Append(connID, sender, text); !ok {
		e.log.Debug("message without session link dropped", "connection_id", connID)
		return
	}
	e.registry.Send(partner, models.Event{Type: models.EventMessage, Payload: models.TextPayload{Text: text}})
}

// ShareReel passes reelID through to the partner without logging it.
func (e *Engine) ShareReel(connID, reelID string) {
	partner, ok := e.pairs.PartnerOf(connID)
	if !ok {
		return
	}
	e.registry.Send(partner, models.Event{Type: models.EventReelShared, Payload: models.ReelPayload{ReelID: reelID}})
}

// Next leaves the current partner and queues connID again.
func (e *Engine) Next(connID string) {
	if !e.registry.IsRegistered(connID) {
		return
	}
	if e.maintenance {
		e.teardown(connID, false)
		e.registry.Send(connID, models.NewError(models.ErrorCodeMaintenance, ErrMaintenance.Error()))
		return
	}
	e.teardown(connID, true)
}

// Leave ends the current pairing or queue slot; the connection stays registered.
func (e *Engine) Leave(connID string) {
	e.teardown(connID, false)
}

// Disconnect handles transport loss: teardown, then registry removal.
func (e *Engine) Disconnect(connID string) {
	if !e.registry.IsRegistered(connID) {
		return
	}
	e.teardown(connID, false)
	e.registry.Unregister(connID)
	e.log.Info("connection unregistered", "connection_id", connID, "online", e.registry.Len())
	e.broadcastOnline()
}

// SetMaintenance pauses or resumes matching. Existing pairs are untouched.
func (e *Engine) SetMaintenance(on bool) {
	if e.maintenance == on {
		return
	}
	e.maintenance = on
	e.log.Info("maintenance mode changed", "enabled", on)
}

func (e *Engine) Maintenance() bool { return e.maintenance }

func (e *Engine) broadcastOnline() {
	e.registry.Broadcast(models.Event{Type: models.EventOnlineCount, Payload: e.registry.Len()})
}
