package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
	assert.Equal(t, "bge-small-en-v1.5", cfg.EmbeddingModel)
	assert.Equal(t, "llama3", cfg.ChatModel)
	assert.Equal(t, 384, cfg.VectorSize)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://embed:9000/v1"),
		WithChatHost("http://chat:9001/v1"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithChatModel("gpt-4o-mini"),
		WithVectorSize(1536),
	)

	assert.Equal(t, "http://embed:9000/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://chat:9001/v1", cfg.ChatHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, 1536, cfg.VectorSize)
}

func TestNewConfig_WithHost(t *testing.T) {
	cfg := NewConfig(WithHost("http://ollama:11434/v1"))
	assert.Equal(t, "http://ollama:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://ollama:11434/v1", cfg.ChatHost)
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"missing suffix", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"empty left alone", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host, ChatHost: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.ChatHost)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return DefaultConfig() }

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default config is valid", func(c *Config) {}, true},
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }, false},
		{"missing chat host", func(c *Config) { c.ChatHost = "" }, false},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }, false},
		{"missing chat model", func(c *Config) { c.ChatModel = "" }, false},
		{"zero vector size", func(c *Config) { c.VectorSize = 0 }, false},
		{"negative vector size", func(c *Config) { c.VectorSize = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_ValidateNormalizes(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434"))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
}
