package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imexspec/pkg/platform/sentinel"
)

func TestInMemoryStore_List(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	t.Run("returns all pressure classes in catalog order", func(t *testing.T) {
		items, err := store.List(ctx, CategoryPressureClasses)
		require.NoError(t, err)
		require.Len(t, items, 7)
		assert.Equal(t, "150", items[0].Code)
		assert.Equal(t, "1", items[0].ImexCode)
		assert.Equal(t, "2500", items[6].Code)
		assert.Equal(t, "Y", items[6].ImexCode)
	})

	t.Run("every category is populated", func(t *testing.T) {
		for _, category := range Categories() {
			items, err := store.List(ctx, category)
			require.NoError(t, err, "category %s", category)
			assert.NotEmpty(t, items, "category %s", category)
		}
	})

	t.Run("unknown category returns not found", func(t *testing.T) {
		_, err := store.List(ctx, Category("bogus"))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestInMemoryStore_FindByCode(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	t.Run("resolves valve model to its imex code", func(t *testing.T) {
		item, err := store.FindByCode(ctx, CategoryValveModels, "ESFERA")
		require.NoError(t, err)
		assert.Equal(t, "TRUF", item.ImexCode)
	})

	t.Run("resolves body material", func(t *testing.T) {
		item, err := store.FindByCode(ctx, CategoryBodyMaterials, "ASTM_A216_WCB")
		require.NoError(t, err)
		assert.Equal(t, "WCB", item.ImexCode)
	})

	t.Run("flanged raised face overrides the generic flanged code", func(t *testing.T) {
		generic, err := store.FindByCode(ctx, CategoryEndConnections, "FLANGEADO")
		require.NoError(t, err)
		rf, err := store.FindByCode(ctx, CategoryEndConnections, "FLANGEADO_RF")
		require.NoError(t, err)
		assert.Equal(t, "FRE", generic.ImexCode)
		assert.Equal(t, "FRF", rf.ImexCode)
	})

	t.Run("miss returns not found", func(t *testing.T) {
		_, err := store.FindByCode(ctx, CategoryValveModels, "SLUICE")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestInMemoryStore_FindByImexCode(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	item, err := store.FindByImexCode(ctx, CategoryActuationCodes, "0L0000")
	require.NoError(t, err)
	assert.Equal(t, "MANUAL", item.Code)

	_, err = store.FindByImexCode(ctx, CategoryActuationCodes, "ZZZZZZ")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStore_ListCopiesItems(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	first, err := store.List(ctx, CategorySuffixes)
	require.NoError(t, err)
	first[0].Code = "mutated"

	second, err := store.List(ctx, CategorySuffixes)
	require.NoError(t, err)
	assert.Equal(t, "NEW", second[0].Code)
}
