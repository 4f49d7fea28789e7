package bot

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/j0lvera/relaybot/internal/ai"
	"github.com/j0lvera/relaybot/internal/config"
	"github.com/j0lvera/relaybot/internal/metrics"
	"github.com/rs/zerolog"
)

// Forwarder relays a prompt to the Generator and replies with the result.
// It holds no per-request state and is safe for concurrent use.
type Forwarder struct {
	generator ai.Generator
	messages  config.Messages
	metrics   metrics.Recorder
	log       zerolog.Logger
}

func NewForwarder(
	generator ai.Generator,
	messages config.Messages,
	recorder metrics.Recorder,
	log zerolog.Logger,
) *Forwarder {
	if recorder == nil {
		recorder = metrics.Noop{}
	}

	return &Forwarder{
		generator: generator,
		messages:  messages,
		metrics:   recorder,
		log:       log,
	}
}

// Forward sends the generated text, or the failure message, to target and
// returns what was sent. Errors never leave Forward.
func (f *Forwarder) Forward(ctx context.Context, target Target, prompt string) string {
	log := f.log.With().
		Int64("chat_id", target.ID()).
		Str("request_id", uuid.NewString()).
		Logger()

	// best effort, the result is ignored
	go func() {
		if err := target.Typing(ctx); err != nil {
			log.Debug().Err(err).Msg("unable to send typing indicator")
		}
	}()

	log.Info().Int("prompt_length", len(prompt)).Msg("ai request sending")

	start := time.Now()
	text, err := f.generator.Generate(ctx, prompt)
	f.metrics.ObserveUpstream(time.Since(start).Seconds())

	reply := text
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = f.logFailure(log, err)
		reply = f.messages.Failure
	} else {
		log.Info().Int("response_length", len(text)).Msg("ai response received")
	}
	f.metrics.IncForward(outcome)

	if err := target.Reply(ctx, reply); err != nil {
		log.Error().Err(err).Msg("unable to send reply")
		f.metrics.IncForward(metrics.OutcomeReplyError)
	}

	return reply
}

// logFailure logs err with its diagnostics and returns the metric outcome.
func (f *Forwarder) logFailure(log zerolog.Logger, err error) string {
	var apiErr *ai.APIError
	var missing *ai.MissingFieldError

	switch {
	case errors.As(err, &apiErr):
		log.Error().
			Err(err).
			Int("status_code", apiErr.StatusCode).
			Str("status", apiErr.Status).
			Str("upstream_message", apiErr.Message).
			Msg("generative API returned an error")
		return metrics.OutcomeAPIError
	case errors.As(err, &missing):
		log.Error().
			Err(err).
			Str("field", missing.Field).
			Str("block_reason", missing.BlockReason).
			Msg("invalid response from generative API")
		return metrics.OutcomeInvalidResponse
	case errors.Is(err, ai.ErrInvalidResponse):
		log.Error().Err(err).Msg("invalid response from generative API")
		return metrics.OutcomeInvalidResponse
	default:
		log.Error().Err(err).Msg("unable to generate ai response")
		return metrics.OutcomeTransportError
	}
}
