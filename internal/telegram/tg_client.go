package telegram

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"reelchat/backend/internal/localization"
	"reelchat/backend/internal/models"
	"reelchat/backend/internal/chathub"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the transport needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client реалізує інтерфейс chathub.Client for one Telegram chat.
type Client struct {
	id       string
	chatID   int64
	lang     string
	identity models.Identity
	bot      Sender
	loc      *localization.Localizer
	send     chan models.Event
	log      *slog.Logger

	// unregister reports a client the transport gave up on. Telegram has no
	// read pump to notice it.
	unregister func(chathub.Client)

	mu     sync.Mutex
	closed bool
}

func NewClient(chatID int64, lang string, identity models.Identity, bot Sender, loc *localization.Localizer, bufferSize int, unregister func(chathub.Client), log *slog.Logger) *Client {
	id := ConnectionID(chatID)
	return &Client{
		id:         id,
		chatID:     chatID,
		lang:       lang,
		identity:   identity,
		bot:        bot,
		loc:        loc,
		send:       make(chan models.Event, bufferSize),
		unregister: unregister,
		log:        log.With("connection_id", id, "transport", "telegram"),
	}
}

// ConnectionID is stable per chat, so a restarted client replaces the old one
// in the hub.
func ConnectionID(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

func (c *Client) ID() string                { return c.id }
func (c *Client) Identity() models.Identity { return c.identity }

func (c *Client) IsLive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *Client) Send(ev models.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- ev:
		return true
	default:
		c.log.Warn("send buffer full, closing slow client")
		c.closeLocked()
		if c.unregister != nil {
			// Send runs on the hub goroutine, which cannot take its own unregister.
			go c.unregister(c)
		}
		return false
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Run запускає 'write pump'. Updates are read centrally by BotService.
func (c *Client) Run() {
	go c.writePump()
}

func (c *Client) writePump() {
	defer c.log.Debug("telegram write pump stopped")

	for ev := range c.send {
		text, ok := renderEvent(c.loc, c.lang, ev)
		if !ok {
			continue
		}
		if _, err := c.bot.Send(tgbotapi.NewMessage(c.chatID, text)); err != nil {
			c.log.Error("failed to send telegram message", "event", ev.Type, "error", err)
		}
	}
}

// renderEvent turns an outbound event into chat text. Events with nothing to
// show in a chat, like the online counter, report false.
func renderEvent(loc *localization.Localizer, lang string, ev models.Event) (string, bool) {
	switch ev.Type {
	case models.EventWaiting:
		return loc.GetString(lang, "waiting"), true
	case models.EventMatched:
		return loc.GetString(lang, "matched"), true
	case models.EventPartnerLeft:
		return loc.GetString(lang, "partner_left"), true
	case models.EventMessage:
		p, ok := ev.Payload.(models.TextPayload)
		if !ok {
			return "", false
		}
		return p.Text, true
	case models.EventReelShared:
		p, ok := ev.Payload.(models.ReelPayload)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(loc.GetString(lang, "reel_shared"), p.ReelID), true
	case models.EventError:
		p, ok := ev.Payload.(models.NoticePayload)
		if !ok {
			return "", false
		}
		if p.Code == models.ErrorCodeMaintenance {
			return loc.GetString(lang, "maintenance"), true
		}
		return p.Message, true
	default:
		return "", false
	}
}
