package commands

import (
	"github.com/rs/zerolog"

	"github.com/textbox-bot/textbox/internal/bot"
	"github.com/textbox-bot/textbox/internal/core/catalog"
	"github.com/textbox-bot/textbox/internal/core/config"
	"github.com/textbox-bot/textbox/internal/core/textbox"
)

// App holds the shared dependencies built in the Before hook.
type App struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Log     zerolog.Logger
}

func boxOptions(cfg *config.Config) bot.BoxOptions {
	return bot.BoxOptions{
		RendererURL: cfg.Render.BaseURL,
		ChunkLimit:  cfg.Render.ChunkLimit,
		Fallback:    fallback(cfg),
	}
}

func fallback(cfg *config.Config) textbox.Fallback {
	return textbox.Fallback{
		CharacterID: cfg.Render.DefaultCharacter,
		Expression:  cfg.Render.DefaultExpression,
	}
}
