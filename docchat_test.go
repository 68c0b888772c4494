package docchat

import (
	"context"
	"testing"

	"github.com/poiesic/docchat/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistant(t *testing.T, opts ...AssistantOption) *Assistant {
	t.Helper()
	assistant, err := NewAssistant(t.TempDir(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })
	return assistant
}

func TestNewAssistant(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assistant := newTestAssistant(t)
		assert.NotNil(t, assistant.Store())
	})

	t.Run("invalid AI config is rejected", func(t *testing.T) {
		_, err := NewAssistant(t.TempDir(), WithAIConfig(&ai.Config{}))
		assert.Error(t, err)
	})
}

func TestAssistant_Factories(t *testing.T) {
	assistant := newTestAssistant(t)

	pipeline, err := assistant.NewIngestionPipeline()
	require.NoError(t, err)
	assert.NotNil(t, pipeline)

	searcher, err := assistant.NewSearcher()
	require.NoError(t, err)
	assert.NotNil(t, searcher)
}

func TestAssistant_StoreIsUsable(t *testing.T) {
	ctx := context.Background()
	assistant := newTestAssistant(t)

	require.NoError(t, assistant.Store().CreateCollection(ctx, "user_alice_docs", 384))
	exists, err := assistant.Store().CollectionExists(ctx, "user_alice_docs")
	require.NoError(t, err)
	assert.True(t, exists)
}
