package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("BUYWISE_TEST_DIR", "/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "/tmp/x.db", want: "/tmp/x.db"},
		{name: "tilde", in: "~/x.db", want: filepath.Join(home, "x.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$BUYWISE_TEST_DIR/x.db", want: "/data/x.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaultDBPath(t *testing.T) {
	assert.True(t, filepath.IsAbs(DefaultDBPath()))
	assert.Equal(t, "buywise.db", filepath.Base(DefaultDBPath()))
}
