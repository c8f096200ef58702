package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "openai provider",
			cfg:  Config{Provider: "openai", APIKey: "sk-test"},
		},
		{
			name: "anthropic provider",
			cfg:  Config{Provider: "anthropic", APIKey: "sk-ant-test"},
		},
		{
			name: "provider name is case insensitive",
			cfg:  Config{Provider: "OpenAI", APIKey: "sk-test"},
		},
		{
			name:    "missing api key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "unsupported provider",
			cfg:     Config{Provider: "carrier-pigeon", APIKey: "key"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestUsageTotalTokens(t *testing.T) {
	u := Usage{InputTokens: 120, OutputTokens: 80}
	assert.Equal(t, int64(200), u.TotalTokens())
}
