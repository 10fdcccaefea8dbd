package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"mandiflow/internal/core/apperror"
)

type fakeRepo struct {
	items        []Item
	availability []Availability
}

func (r *fakeRepo) ListItems(ctx context.Context) ([]Item, error) { return r.items, nil }
func (r *fakeRepo) GetItemByCode(ctx context.Context, code string) (*Item, error) {
	for _, item := range r.items {
		if item.Code == code {
			return &item, nil
		}
	}
	return nil, nil
}
func (r *fakeRepo) UpsertItem(ctx context.Context, item Item) error {
	r.items = append(r.items, item)
	return nil
}
func (r *fakeRepo) ListAvailability(ctx context.Context) ([]Availability, error) {
	return r.availability, nil
}
func (r *fakeRepo) UpsertAvailability(ctx context.Context, row Availability) error {
	r.availability = append(r.availability, row)
	return nil
}

func TestSetAvailability_BlankNameRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.SetAvailability(context.Background(), "VEG_OKRA", "   ", true)

	appErr, ok := apperror.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, repo.availability)
}

func TestSetAvailability_TrimsAndUpserts(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.SetAvailability(context.Background(), " VEG_OKRA ", " Okra ", false)

	assert.NoError(t, err)
	assert.Len(t, repo.availability, 1)
	assert.Equal(t, "VEG_OKRA", repo.availability[0].ItemCode)
	assert.Equal(t, "Okra", repo.availability[0].ItemEN)
	assert.False(t, repo.availability[0].IsInStock)
}

func TestSaveItem_InvalidCategoryRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.SaveItem(context.Background(), Item{Code: "VEG_OKRA", NameEN: "Okra", Category: "frozen"})

	appErr, ok := apperror.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, repo.items)
}
