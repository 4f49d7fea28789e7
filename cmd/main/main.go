package main

import (
	"github.com/j0lvera/relaybot/internal/ai"
	"github.com/j0lvera/relaybot/internal/bot"
	"github.com/j0lvera/relaybot/internal/config"
	"github.com/j0lvera/relaybot/internal/health"
	"github.com/j0lvera/relaybot/internal/log"
	"github.com/j0lvera/relaybot/internal/metrics"
	"go.uber.org/fx"
)

func options() []fx.Option {
	return []fx.Option{
		config.Module(),
		log.Module(),
		metrics.Module(),
		ai.Module(),
		bot.Module(),
		health.Module(),
	}
}

func main() {
	fx.New(options()...).Run()
}
