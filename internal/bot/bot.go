package bot

import (
	"context"
	"strings"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/j0lvera/relaybot/internal/ai"
	"github.com/j0lvera/relaybot/internal/config"
	"github.com/j0lvera/relaybot/internal/metrics"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Config    *config.Config
	Generator ai.Generator
	Recorder  metrics.Recorder
	Logger    zerolog.Logger
}

type Result struct {
	fx.Out

	Bot       *tbot.Bot
	Forwarder *Forwarder
}

func New(lc fx.Lifecycle, p Params) (Result, error) {
	log := p.Logger
	fwd := NewForwarder(p.Generator, p.Config.Messages, p.Recorder, log)
	listener := NewListener(fwd, p.Config.Messages, p.Recorder, log)

	opts := []tbot.Option{
		tbot.WithDefaultHandler(
			func(ctx context.Context, tg *tbot.Bot, update *models.Update) {
				listener.Handle(ctx, tg, update)
			},
		),
		tbot.WithErrorsHandler(func(err error) {
			log.Error().Err(err).Msg("telegram client error")
		}),
		tbot.WithWorkers(p.Config.Workers),
		// a missing or bad token surfaces on the first request, not at startup
		tbot.WithSkipGetMe(),
	}

	tg, err := tbot.New(p.Config.Token, opts...)
	if err != nil {
		return Result{}, err
	}

	var cancel context.CancelFunc
	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				log.Info().Msg("starting telegram bot...")
				var runCtx context.Context
				runCtx, cancel = context.WithCancel(context.Background())
				go tg.Start(runCtx)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				log.Info().Msg("stopping telegram bot...")
				if cancel != nil {
					cancel()
				}
				return nil
			},
		},
	)

	return Result{
		Bot:       tg,
		Forwarder: fwd,
	}, nil
}

func Module() fx.Option {
	return fx.Module(
		"bot",
		fx.Provide(
			New,
		),
		fx.Invoke(
			func(bot *tbot.Bot) {},
		),
	)
}

// Listener turns inbound updates into Forwarder calls.
type Listener struct {
	forwarder *Forwarder
	messages  config.Messages
	metrics   metrics.Recorder
	log       zerolog.Logger
}

func NewListener(
	forwarder *Forwarder,
	messages config.Messages,
	recorder metrics.Recorder,
	log zerolog.Logger,
) *Listener {
	if recorder == nil {
		recorder = metrics.Noop{}
	}

	return &Listener{
		forwarder: forwarder,
		messages:  messages,
		metrics:   recorder,
		log:       log,
	}
}

// Handle is called once per update, possibly concurrently.
func (l *Listener) Handle(ctx context.Context, tg Sender, update *models.Update) {
	// Guard against updates without a message (edits, callbacks, channel posts)
	if update == nil || update.Message == nil {
		l.log.Debug().Msg("ignoring update without message")
		return
	}

	target := newChatTarget(tg, update.Message.Chat.ID)
	l.handleText(ctx, target, update.Message.Text)
}

func (l *Listener) handleText(ctx context.Context, target Target, text string) {
	if strings.TrimSpace(text) == "" {
		l.metrics.IncForward(metrics.OutcomeEmptyPrompt)
		if err := target.Reply(ctx, l.messages.PromptRequest); err != nil {
			l.log.Error().Err(err).Int64("chat_id", target.ID()).Msg("unable to send reply")
		}
		return
	}

	l.forwarder.Forward(ctx, target, text)
}
