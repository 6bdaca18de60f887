package completion

import (
	"fmt"

	"github.com/rs/zerolog"

	"todo-server/internal/config"
	"todo-server/internal/domain/chat"
)

// NewAdapter selects the completion backend from configuration.
func NewAdapter(cfg *config.Config, logger zerolog.Logger) (chat.Adapter, error) {
	switch cfg.CompletionProvider {
	case "openai":
		return NewOpenAIAdapter(cfg, logger), nil
	case "gemini":
		return NewGeminiAdapter(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.CompletionProvider)
	}
}
