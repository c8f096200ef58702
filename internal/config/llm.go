package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/slzp03/BuyWise/internal/llm"
)

// LoadLLMConfig loads the advice provider configuration. Precedence:
// 1. Viper configuration (from config file or BUYWISE_ env vars)
// 2. Provider environment variables (OPENAI_API_KEY, ANTHROPIC_API_KEY)
// 3. Default values
func LoadLLMConfig() llm.Config {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}

	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}

	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return cfg
}
