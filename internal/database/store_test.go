package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID     string  `json:"id" bson:"id"`
	Mobile string  `json:"mobile" bson:"mobile"`
	Status string  `json:"status" bson:"status"`
	Note   *string `json:"note" bson:"note"`
}

// runStoreSuite checks the behavior every Store implementation shares.
func runStoreSuite(t *testing.T, store Store) {
	ctx := context.Background()
	note := "window seat"

	require.NoError(t, store.Ping(ctx))

	require.NoError(t, store.Insert(ctx, Orders, "order-a", testDoc{ID: "order-a", Mobile: "9000000001", Status: "pending", Note: &note}))
	require.NoError(t, store.Insert(ctx, Orders, "order-b", testDoc{ID: "order-b", Mobile: "9000000002", Status: "pending"}))
	require.NoError(t, store.Insert(ctx, Orders, "order-c", testDoc{ID: "order-c", Mobile: "9000000001", Status: "confirmed"}))

	t.Run("duplicate insert", func(t *testing.T) {
		err := store.Insert(ctx, Orders, "order-a", testDoc{ID: "order-a", Mobile: "9000000009"})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("get", func(t *testing.T) {
		var got testDoc
		require.NoError(t, store.Get(ctx, Orders, "order-a", &got))
		assert.Equal(t, "9000000001", got.Mobile)
		require.NotNil(t, got.Note)
		assert.Equal(t, note, *got.Note)

		assert.ErrorIs(t, store.Get(ctx, Orders, "missing", &got), ErrNotFound)
	})

	t.Run("find newest first with filter", func(t *testing.T) {
		var all []testDoc
		require.NoError(t, store.Find(ctx, Orders, nil, &all))
		require.Len(t, all, 3)
		assert.Equal(t, "order-c", all[0].ID)
		assert.Equal(t, "order-a", all[2].ID)

		var mine []testDoc
		require.NoError(t, store.Find(ctx, Orders, Filter{"mobile": "9000000001"}, &mine))
		require.Len(t, mine, 2)
		assert.Equal(t, []string{"order-c", "order-a"}, []string{mine[0].ID, mine[1].ID})

		var none []testDoc
		require.NoError(t, store.Find(ctx, Orders, Filter{"mobile": "nobody"}, &none))
		assert.Empty(t, none)
	})

	t.Run("merge sets only given fields", func(t *testing.T) {
		require.NoError(t, store.Merge(ctx, Orders, "order-a", map[string]any{"status": "success", "note": nil}))

		var got testDoc
		require.NoError(t, store.Get(ctx, Orders, "order-a", &got))
		assert.Equal(t, "success", got.Status)
		assert.Equal(t, "9000000001", got.Mobile)
		assert.Nil(t, got.Note)

		assert.ErrorIs(t, store.Merge(ctx, Orders, "missing", map[string]any{"status": "x"}), ErrNotFound)
	})

	t.Run("upsert", func(t *testing.T) {
		require.NoError(t, store.Upsert(ctx, Orders, "order-b", testDoc{ID: "order-b", Mobile: "9000000002", Status: "cancelled"}))
		require.NoError(t, store.Upsert(ctx, Orders, "order-d", testDoc{ID: "order-d", Mobile: "9000000004", Status: "pending"}))

		var got testDoc
		require.NoError(t, store.Get(ctx, Orders, "order-b", &got))
		assert.Equal(t, "cancelled", got.Status)
		require.NoError(t, store.Get(ctx, Orders, "order-d", &got))
		assert.Equal(t, "9000000004", got.Mobile)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, Orders, "order-d"))
		var got testDoc
		assert.ErrorIs(t, store.Get(ctx, Orders, "order-d", &got), ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, Orders, "order-d"), ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}

func TestUnconfiguredStore(t *testing.T) {
	ctx := context.Background()
	store := Unconfigured()
	var doc testDoc

	assert.ErrorIs(t, store.Ping(ctx), ErrNotConfigured)
	assert.ErrorIs(t, store.Insert(ctx, Users, "9000000001", doc), ErrNotConfigured)
	assert.ErrorIs(t, store.Get(ctx, Users, "9000000001", &doc), ErrNotConfigured)
	assert.ErrorIs(t, store.Find(ctx, Users, nil, &[]testDoc{}), ErrNotConfigured)
	assert.NoError(t, store.Close(ctx))
}
