package cartstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/farmstore/backend/internal/domain/cart"
	"github.com/farmstore/backend/internal/domain/catalog"
	"github.com/farmstore/backend/internal/domain/shared/valueobject"
	"github.com/farmstore/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLines(t *testing.T) []cart.Line {
	t.Helper()
	p, err := catalog.NewProduct("Whole Chicken", valueobject.NewMoneyUSDFromFloat(12.99), "per kg", catalog.CategoryPoultry)
	require.NoError(t, err)
	return []cart.Line{{Product: *p, Quantity: 2}}
}

func TestCodec(t *testing.T) {
	t.Run("round-trips lines through the envelope", func(t *testing.T) {
		lines := sampleLines(t)

		data, err := encodeSlot(lines)
		require.NoError(t, err)

		decoded, err := decodeSlot(data)
		require.NoError(t, err)
		require.Len(t, decoded, 1)
		assert.Equal(t, lines[0].Product.ID, decoded[0].Product.ID)
		assert.Equal(t, 2, decoded[0].Quantity)
		assert.True(t, lines[0].Product.UnitPrice.Equal(decoded[0].Product.UnitPrice))
	})

	t.Run("empty payload reads as absent", func(t *testing.T) {
		lines, err := decodeSlot(nil)
		require.NoError(t, err)
		assert.Nil(t, lines)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := decodeSlot([]byte(`{"version":1,"lines":[`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "corrupt cart slot")
	})

	t.Run("rejects an unknown version", func(t *testing.T) {
		_, err := decodeSlot([]byte(`{"version":99,"lines":[]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported version")
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a cart", func(t *testing.T) {
		store := NewMemoryStore()
		slot := store.Storage("s1")

		require.NoError(t, slot.Save(ctx, sampleLines(t)))

		loaded, err := slot.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "Whole Chicken", loaded[0].Product.Name)
	})

	t.Run("absent slot loads as nil", func(t *testing.T) {
		store := NewMemoryStore()

		loaded, err := store.Storage("unknown").Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("sessions do not share slots", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Storage("alice").Save(ctx, sampleLines(t)))

		loaded, err := store.Storage("bob").Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a cart through disk", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		slot := store.Storage("s1")

		require.NoError(t, slot.Save(ctx, sampleLines(t)))

		loaded, err := slot.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, 2, loaded[0].Quantity)
	})

	t.Run("missing file loads as nil", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		loaded, err := store.Storage("unknown").Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("corrupted file surfaces as corrupt slot", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "s1.json"), []byte("not json"), 0644))

		_, err = store.Storage("s1").Load(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "corrupt cart slot")
	})

	t.Run("save replaces the previous snapshot", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		slot := store.Storage("s1")

		require.NoError(t, slot.Save(ctx, sampleLines(t)))
		require.NoError(t, slot.Save(ctx, []cart.Line{}))

		loaded, err := slot.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}

func TestNewStorageFactory(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		factory, err := NewStorageFactory(config.CartConfig{Backend: "memory"}, nil)
		require.NoError(t, err)
		require.NotNil(t, factory)
		assert.NotNil(t, factory("s1"))
	})

	t.Run("file backend", func(t *testing.T) {
		factory, err := NewStorageFactory(config.CartConfig{Backend: "file", FileDir: t.TempDir()}, nil)
		require.NoError(t, err)
		assert.NotNil(t, factory("s1"))
	})

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		cfg := config.CartConfig{Backend: "redis", RedisHost: "127.0.0.1", RedisPort: 1}

		factory, err := NewStorageFactory(cfg, nil)
		require.NoError(t, err)

		slot := factory("s1")
		require.NoError(t, slot.Save(context.Background(), sampleLines(t)))
		loaded, err := slot.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		_, err := NewStorageFactory(config.CartConfig{Backend: "dynamo"}, nil)
		assert.Error(t, err)
	})
}
