package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/cloudwego/eino/schema"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	"github.com/tashfin/contractbot/bot"
	"github.com/tashfin/contractbot/docgen"
)

func main() {
	conf := flag.String("config", "config.json", "path to config file")
	flag.Parse()
	config, err := loadConfig(*conf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := startApp(context.Background(), config); err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context, config *Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.slogLevel(),
	}))
	slog.SetDefault(logger)

	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return fmt.Errorf("telegram auth: %w", err)
	}
	logger.Info("authorized", "account", api.Self.UserName)

	sessions, transcript, err := newStores(ctx, config)
	if err != nil {
		return err
	}
	sender := &telegramSender{api: api}
	engine, err := bot.NewEngine(sessions, docgen.NewDocxAssembler(config.Templates), sender,
		bot.WithTranscript(transcript), bot.WithLogger(logger))
	if err != nil {
		return err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	for update := range api.GetUpdatesChan(u) {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		chatID := update.Message.Chat.ID
		chatCtx := bot.WithSessionKey(ctx, strconv.FormatInt(chatID, 10))

		reply, err := engine.Invoke(chatCtx, update.Message.Text)
		if err != nil {
			logger.Error("turn failed", "chat", chatID, "err", err)
			reply = &bot.Reply{Text: "Что-то пошло не так. Отправьте /start, чтобы начать заново."}
		}
		msg := tgbotapi.NewMessage(chatID, reply.Text)
		msg.ReplyMarkup = replyMarkup(reply)
		if _, err := api.Send(msg); err != nil {
			logger.Error("send failed", "chat", chatID, "err", err)
		}
	}
	return nil
}

// newStores picks redis when an address is configured, memory otherwise.
func newStores(ctx context.Context, config *Config) (*bot.SessionStore, *bot.TranscriptStore, error) {
	const keepTranscript = 40
	if config.RedisAddr == "" {
		return bot.NewMemorySessionStore(), bot.NewMemoryTranscriptStore(keepTranscript), nil
	}
	client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis %s: %w", config.RedisAddr, err)
	}
	sessions := bot.NewSessionStore(bot.NewRedisCache[*bot.Session](client))
	transcript := bot.NewTranscriptStore(bot.NewRedisCache[[]*schema.Message](client), keepTranscript)
	return sessions, transcript, nil
}

// replyMarkup maps the engine's keyboard to the chat: a one-time reply
// keyboard when buttons are offered, explicit removal otherwise.
func replyMarkup(reply *bot.Reply) interface{} {
	if len(reply.Keyboard) == 0 {
		if reply.RemoveKeyboard {
			return tgbotapi.NewRemoveKeyboard(false)
		}
		return nil
	}
	rows := make([][]tgbotapi.KeyboardButton, 0, len(reply.Keyboard))
	for _, row := range reply.Keyboard {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = true
	return markup
}

// telegramSender uploads a generated document into the chat named by the
// session key.
type telegramSender struct {
	api *tgbotapi.BotAPI
}

func (t *telegramSender) SendDocument(ctx context.Context, path string) error {
	key, ok := bot.SessionKeyFromContext(ctx)
	if !ok {
		return fmt.Errorf("send document: no session key in context")
	}
	chatID, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return fmt.Errorf("send document: session key %q is not a chat id: %w", key, err)
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	if _, err := t.api.Send(doc); err != nil {
		return fmt.Errorf("send document %s: %w", path, err)
	}
	return nil
}
