package mock

import (
	"context"
	"testing"

	"github.com/poiesic/toolsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	ctx := context.Background()
	m := NewMockEmbedder()

	a, err := m.EmbedText(ctx, "GitLab Setup CI/CD Pipeline")
	require.NoError(t, err)
	b, err := m.EmbedText(ctx, "GitLab Setup CI/CD Pipeline")
	require.NoError(t, err)
	c, err := m.EmbedText(ctx, "Jira Create Project")
	require.NoError(t, err)

	assert.Len(t, a, DefaultDimension)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.InDelta(t, 1.0, core.Magnitude(a), 1e-5)
}

func TestMockEmbedder_BatchMatchesSingle(t *testing.T) {
	ctx := context.Background()
	m := NewMockEmbedder()

	batch, err := m.EmbedTexts(ctx, []string{"one", "two"})
	require.NoError(t, err)
	require.Len(t, batch, 2)

	single, err := m.EmbedText(ctx, "two")
	require.NoError(t, err)
	assert.Equal(t, single, batch[1])

	assert.Equal(t, 1, m.EmbedTextsCalls())
	assert.Equal(t, 1, m.EmbedTextCalls())
	assert.Equal(t, 2, m.CallCount())
}

func TestMockEmbedder_CustomFuncsAndReset(t *testing.T) {
	ctx := context.Background()
	m := NewMockEmbedder()
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, assert.AnError
	}

	_, err := m.EmbedText(ctx, "x")
	assert.ErrorIs(t, err, assert.AnError)

	m.Reset()
	assert.Equal(t, 0, m.CallCount())

	v, err := m.EmbedText(ctx, "x")
	require.NoError(t, err)
	assert.Len(t, v, DefaultDimension)
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider()
	require.NotNil(t, p.Embedder())

	mp, ok := p.(*MockProvider)
	require.True(t, ok)
	assert.NotNil(t, mp.GetMockEmbedder())

	require.NoError(t, p.Close())
	assert.True(t, mp.Closed())

	vocab := NewMockProviderWithEmbedder(NewVocabularyEmbedder(8))
	assert.Nil(t, vocab.GetMockEmbedder())
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"gitlab", "setup", "ci", "cd", "pipeline"}, Tokenize("GitLab Setup CI/CD Pipeline"))
	assert.Empty(t, Tokenize("  --  "))
}

func TestVocabularyEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("shared terms give positive similarity", func(t *testing.T) {
		v := NewVocabularyEmbedder(64)
		vectors, err := v.EmbedTexts(ctx, []string{"gitlab pipeline", "gitlab runner"})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, core.Dot(vectors[0], vectors[1]), 1e-6)
	})

	t.Run("unrelated texts are orthogonal", func(t *testing.T) {
		v := NewVocabularyEmbedder(64)
		vectors, err := v.EmbedTexts(ctx, []string{"gitlab pipeline", "banana smoothie"})
		require.NoError(t, err)
		assert.Equal(t, float32(0), core.Dot(vectors[0], vectors[1]))
	})

	t.Run("stable across calls", func(t *testing.T) {
		v := NewVocabularyEmbedder(64)
		first, err := v.EmbedText(ctx, "sonarqube quality gate")
		require.NoError(t, err)
		_, err = v.EmbedText(ctx, "something else entirely")
		require.NoError(t, err)
		again, err := v.EmbedText(ctx, "sonarqube quality gate")
		require.NoError(t, err)
		assert.Equal(t, first, again)
		assert.Equal(t, 6, v.VocabularySize())
		assert.Equal(t, 3, v.CallCount())
	})

	t.Run("no terms gives zero vector", func(t *testing.T) {
		v := NewVocabularyEmbedder(4)
		vector, err := v.EmbedText(ctx, "!!!")
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 0, 0, 0}, vector)
	})

	t.Run("vocabulary full", func(t *testing.T) {
		v := NewVocabularyEmbedder(2)
		_, err := v.EmbedText(ctx, "one two three")
		assert.ErrorIs(t, err, ErrVocabularyFull)
	})
}
