package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soukly/internal/domain/entity"
	"soukly/pkg/errors"
)

func newItemFixture(t *testing.T) (*ItemUseCase, *memItemRepo) {
	t.Helper()
	items := newMemItemRepo()
	return NewItemUseCase(items), items
}

func TestCreateItemStartsUnderReview(t *testing.T) {
	uc, _ := newItemFixture(t)

	item, err := uc.CreateItem(context.Background(), "seller", ItemInput{
		Title: "Lamp", Category: "home", Price: 20, AvailableQuantity: 5, AllowQuantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusUnderReview, item.Status)
	assert.Equal(t, "seller", item.SellerID)
}

func TestCreateItemValidation(t *testing.T) {
	uc, _ := newItemFixture(t)

	_, err := uc.CreateItem(context.Background(), "seller", ItemInput{Title: "Lamp", Price: 0})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.CreateItem(context.Background(), "seller", ItemInput{Title: "Lamp", Price: 20, Discount: 100})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestModerateTransitions(t *testing.T) {
	uc, _ := newItemFixture(t)

	item, err := uc.CreateItem(context.Background(), "seller", ItemInput{Title: "Lamp", Price: 20})
	require.NoError(t, err)

	_, err = uc.Moderate(context.Background(), item.ID, "ARCHIVED")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	published, err := uc.Moderate(context.Background(), item.ID, entity.ItemStatusPublished)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusPublished, published.Status)

	rejected, err := uc.Moderate(context.Background(), item.ID, entity.ItemStatusReject)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusReject, rejected.Status)

	_, err = uc.Moderate(context.Background(), "no-such-item", entity.ItemStatusPublished)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestUpdateAndDeleteOwnerOnly(t *testing.T) {
	uc, items := newItemFixture(t)

	item, err := uc.CreateItem(context.Background(), "seller", ItemInput{Title: "Lamp", Price: 20})
	require.NoError(t, err)

	_, err = uc.UpdateItem(context.Background(), "intruder", item.ID, ItemInput{Price: 1})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	err = uc.DeleteItem(context.Background(), "intruder", item.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	updated, err := uc.UpdateItem(context.Background(), "seller", item.ID, ItemInput{Price: 25})
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.Price)

	require.NoError(t, uc.DeleteItem(context.Background(), "seller", item.ID))
	_, err = items.GetByID(context.Background(), item.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
