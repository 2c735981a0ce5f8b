package pairing

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"reelchat/backend/internal/models"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id     string
	live   bool
	events []models.Event
}

func newFakeConn(id string) *fakeConn { return &fakeConn{id: id, live: true} }

func (c *fakeConn) ID() string   { return c.id }
func (c *fakeConn) IsLive() bool { return c.live }

func (c *fakeConn) Send(ev models.Event) bool {
	if !c.live {
		return false
	}
	c.events = append(c.events, ev)
	return true
}

func (c *fakeConn) ofType(eventType string) []models.Event {
	return lo.Filter(c.events, func(ev models.Event, _ int) bool { return ev.Type == eventType })
}

type recordingCounter struct{ userIDs []string }

func (r *recordingCounter) IncrementChatCount(userID string) { r.userIDs = append(r.userIDs, userID) }

// testClock advances by one second per reading.
type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	clock := &testClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	seq := 0
	base := []Option{
		WithClock(clock.Now),
		WithSessionIDs(func() string {
			seq++
			return fmt.Sprintf("session-%d", seq)
		}),
	}
	return NewEngine(discardLogger(), append(base, opts...)...)
}

// connect registers connections with the given ids.
func connect(e *Engine, ids ...string) map[string]*fakeConn {
	conns := make(map[string]*fakeConn, len(ids))
	for _, id := range ids {
		c := newFakeConn(id)
		e.Connect(c)
		conns[id] = c
	}
	return conns
}

// requireInvariants checks the pairing invariants across all four structures.
func requireInvariants(t *testing.T, e *Engine) {
	t.Helper()

	for a, b := range e.pairs.partners {
		require.Equal(t, a, e.pairs.partners[b], "pair table must be symmetric for %s", a)
		require.NotEqual(t, a, b, "self pairing")
		require.False(t, e.queue.Contains(a), "%s is both queued and paired", a)
	}
	require.Len(t, e.queue.index, e.queue.Len())

	for _, s := range e.sessions.sessions {
		if s.EndedAt != nil {
			require.False(t, s.EndedAt.Before(s.StartedAt), "session %s ends before it starts", s.ID)
			continue
		}
		for _, side := range []models.Participant{s.SideA, s.SideB} {
			linked, ok := e.sessions.links[side.ConnectionID]
			require.True(t, ok, "open session %s lacks link for %s", s.ID, side.ConnectionID)
			require.Same(t, s, linked)
		}
	}
	for connID, s := range e.sessions.links {
		require.Nil(t, s.EndedAt, "link for %s points at ended session", connID)
		require.True(t, e.pairs.Contains(connID), "link without pair for %s", connID)
	}
}
