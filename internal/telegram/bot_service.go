// Package telegram handles the integration with the Telegram Bot API.
// It is responsible for receiving updates from Telegram, processing them,
// and communicating with the central chat hub.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"reelchat/backend/internal/chathub"
	"reelchat/backend/internal/localization"
	"reelchat/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UserStore resolves a Telegram account to a persistent user.
type UserStore interface {
	EnsureTelegramUser(ctx context.Context, telegramID int64, username string) (*models.User, error)
}

// BotService is responsible for receiving Telegram updates and routing them to the hub.
type BotService struct {
	BotAPI    *tgbotapi.BotAPI
	Hub       *chathub.Hub
	Storage   UserStore
	Localizer *localization.Localizer

	sender     Sender
	bufferSize int
	clients    map[int64]*Client
	log        *slog.Logger
}

// NewBotService creates a new BotService instance.
func NewBotService(token string, hub *chathub.Hub, store UserStore, loc *localization.Localizer, bufferSize int, log *slog.Logger) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorization: %w", err)
	}
	bot.Debug = false
	log.Info("authorized on telegram account", "username", bot.Self.UserName)

	s := newBotService(bot, hub, store, loc, bufferSize, log)
	s.BotAPI = bot
	return s, nil
}

func newBotService(sender Sender, hub *chathub.Hub, store UserStore, loc *localization.Localizer, bufferSize int, log *slog.Logger) *BotService {
	return &BotService{
		Hub:        hub,
		Storage:    store,
		Localizer:  loc,
		sender:     sender,
		bufferSize: bufferSize,
		clients:    make(map[int64]*Client),
		log:        log.With("transport", "telegram"),
	}
}

// Run polls for updates until ctx is cancelled. Updates are handled one at a
// time, so the client map needs no locking.
func (s *BotService) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)
	defer s.BotAPI.StopReceivingUpdates()

	s.log.Info("telegram bot started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("telegram bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil {
				s.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (s *BotService) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	c, err := s.getOrCreateClient(ctx, msg)
	if err != nil {
		s.log.Error("failed to attach telegram chat", "chat_id", msg.Chat.ID, "error", err)
		return
	}

	if msg.IsCommand() {
		s.handleCommand(ctx, c, msg)
		return
	}

	if msg.Text == "" {
		s.reply(c, "unsupported_message_type")
		return
	}
	s.submit(ctx, c, models.EventMessage, models.TextPayload{Text: msg.Text})
}

func (s *BotService) handleCommand(ctx context.Context, c *Client, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		s.reply(c, "welcome")
		s.submit(ctx, c, models.EventFindPartner, nil)
	case "find":
		s.submit(ctx, c, models.EventFindPartner, nil)
	case "next":
		s.submit(ctx, c, models.EventNext, nil)
	case "stop":
		s.submit(ctx, c, models.EventLeave, nil)
	case "reel":
		reelID := strings.TrimSpace(msg.CommandArguments())
		if reelID == "" {
			s.reply(c, "help")
			return
		}
		s.submit(ctx, c, models.EventShareReel, models.ReelPayload{ReelID: reelID})
	default:
		s.reply(c, "help")
	}
}

// getOrCreateClient retrieves an existing Telegram client or creates a new one.
// A client closed by the hub is replaced on the chat's next message.
func (s *BotService) getOrCreateClient(ctx context.Context, msg *tgbotapi.Message) (*Client, error) {
	chatID := msg.Chat.ID
	if c, ok := s.clients[chatID]; ok && c.IsLive() {
		return c, nil
	}

	identity := models.Identity{Username: msg.From.UserName}
	user, err := s.Storage.EnsureTelegramUser(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		s.log.Warn("telegram user lookup failed, continuing as guest", "chat_id", chatID, "error", err)
	} else {
		identity.UserID = user.ID
		if identity.Username == "" {
			identity.Username = user.Username
		}
	}

	c := NewClient(chatID, s.languageOf(msg.From), identity, s.sender, s.Localizer, s.bufferSize, s.Hub.Unregister, s.log)
	if err := s.Hub.Register(ctx, c); err != nil {
		c.Close()
		return nil, err
	}
	c.Run()
	s.clients[chatID] = c
	return c, nil
}

func (s *BotService) languageOf(u *tgbotapi.User) string {
	lang, _, _ := strings.Cut(strings.ToLower(u.LanguageCode), "-")
	if lang != "" && s.Localizer.Supports(lang) {
		return lang
	}
	return localization.DefaultLanguage
}

func (s *BotService) submit(ctx context.Context, c *Client, eventType string, payload any) {
	ev := models.InboundEvent{ConnectionID: c.ID(), Type: eventType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			s.log.Error("failed to encode payload", "event", eventType, "error", err)
			return
		}
		ev.Payload = raw
	}
	if err := s.Hub.Submit(ctx, ev); err != nil {
		s.log.Warn("event not delivered to hub", "connection_id", c.ID(), "event", eventType, "error", err)
	}
}

// reply answers the chat directly, outside the hub.
func (s *BotService) reply(c *Client, key string) {
	if _, err := s.sender.Send(tgbotapi.NewMessage(c.chatID, s.Localizer.GetString(c.lang, key))); err != nil {
		s.log.Error("failed to send telegram reply", "chat_id", c.chatID, "error", err)
	}
}
