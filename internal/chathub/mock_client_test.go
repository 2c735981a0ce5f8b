package chathub_test

import (
	"sync"
	"time"

	"reelchat/backend/internal/models"

	"github.com/samber/lo"
)

type MockClient struct {
	id       string
	identity models.Identity

	mu     sync.Mutex
	live   bool
	events []models.Event
	closes int
}

func newMockClient(id string) *MockClient {
	return &MockClient{id: id, live: true}
}

func (c *MockClient) ID() string                { return c.id }
func (c *MockClient) Identity() models.Identity { return c.identity }
func (c *MockClient) Run()                      {}

func (c *MockClient) IsLive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

func (c *MockClient) Send(ev models.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live {
		return false
	}
	c.events = append(c.events, ev)
	return true
}

func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live = false
	c.closes++
}

func (c *MockClient) ofType(eventType string) []models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Filter(c.events, func(ev models.Event, _ int) bool { return ev.Type == eventType })
}

// waitFor polls until the client has received n events of eventType.
func (c *MockClient) waitFor(eventType string, n int) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(c.ofType(eventType)) >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
