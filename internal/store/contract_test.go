package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/store"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

func testOffer(id string) *domain.Offer {
	return &domain.Offer{
		ID:        id,
		Title:     "Placa de video RTX 3060 " + id,
		Price:     12500.5,
		Permalink: "https://articulo.mercadolibre.com.uy/" + id,
	}
}

// runStoreContract exercises behavior every Store backend must share.
func runStoreContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("init is repeatable", func(t *testing.T) {
		require.NoError(t, s.Init(ctx))
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, s.Ping(ctx))
	})

	t.Run("insert then get", func(t *testing.T) {
		o := testOffer("MLU100")
		require.NoError(t, s.InsertOffer(ctx, o))
		assert.False(t, o.SeenAt.IsZero())

		got, err := s.GetOffer(ctx, "MLU100")
		require.NoError(t, err)
		assert.Equal(t, o.Title, got.Title)
		assert.InDelta(t, 12500.5, got.Price, 0.001)
		assert.Equal(t, o.Permalink, got.Permalink)
		assert.False(t, got.SeenAt.IsZero())
	})

	t.Run("insert is idempotent and keeps first copy", func(t *testing.T) {
		first := testOffer("MLU200")
		require.NoError(t, s.InsertOffer(ctx, first))

		dup := testOffer("MLU200")
		dup.Title = "changed"
		dup.Price = 1
		require.NoError(t, s.InsertOffer(ctx, dup))
		assert.True(t, first.SeenAt.Equal(dup.SeenAt))

		got, err := s.GetOffer(ctx, "MLU200")
		require.NoError(t, err)
		assert.Equal(t, first.Title, got.Title)

		ids, err := s.ExistingIDs(ctx)
		require.NoError(t, err)
		assert.True(t, ids.Has("MLU200"))
	})

	t.Run("get missing offer", func(t *testing.T) {
		_, err := s.GetOffer(ctx, "MLU-missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.InsertOffer(ctx, testOffer("MLU300")))
		require.NoError(t, s.RemoveOffer(ctx, "MLU300"))

		ids, err := s.ExistingIDs(ctx)
		require.NoError(t, err)
		assert.False(t, ids.Has("MLU300"))

		_, err = s.GetOffer(ctx, "MLU300")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("remove absent id is a no-op", func(t *testing.T) {
		require.NoError(t, s.RemoveOffer(ctx, "MLU-never-stored"))
	})

	t.Run("list offers pages", func(t *testing.T) {
		ids, err := s.ExistingIDs(ctx)
		require.NoError(t, err)

		all, total, err := s.ListOffers(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, ids.Len(), total)
		assert.Len(t, all, total)

		one, total2, err := s.ListOffers(ctx, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, total, total2)
		assert.Len(t, one, 1)

		none, _, err := s.ListOffers(ctx, 10, total+5)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("record and list runs", func(t *testing.T) {
		base := time.Now().UTC().Truncate(time.Millisecond)
		older := &domain.Run{
			ID:         uuid.NewString(),
			StartedAt:  base.Add(-time.Hour),
			FinishedAt: base.Add(-time.Hour + time.Second),
			Status:     domain.RunCompleted,
			Fetched:    10,
			New:        2,
		}
		newer := &domain.Run{
			ID:         uuid.NewString(),
			StartedAt:  base,
			FinishedAt: base.Add(time.Second),
			Status:     domain.RunFailed,
			Error:      "inserting offer MLU1: boom",
		}
		require.NoError(t, s.RecordRun(ctx, older))
		require.NoError(t, s.RecordRun(ctx, newer))

		runs, err := s.ListRuns(ctx, 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(runs), 2)
		assert.Equal(t, newer.ID, runs[0].ID)
		assert.Equal(t, domain.RunFailed, runs[0].Status)
		assert.Equal(t, newer.Error, runs[0].Error)
		assert.Equal(t, older.ID, runs[1].ID)
		assert.Equal(t, 10, runs[1].Fetched)
		assert.Equal(t, 2, runs[1].New)

		limited, err := s.ListRuns(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})
}
