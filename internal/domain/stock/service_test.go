package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"mandiflow/internal/core/apperror"
)

type fakeRepo struct {
	rows map[string]QtyRow
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]QtyRow)}
}

func (r *fakeRepo) List(ctx context.Context) ([]QtyRow, error) {
	out := make([]QtyRow, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeRepo) Get(ctx context.Context, itemCode string) (*QtyRow, error) {
	if row, ok := r.rows[itemCode]; ok {
		return &row, nil
	}
	return nil, nil
}

func (r *fakeRepo) Upsert(ctx context.Context, row QtyRow) error {
	r.rows[row.ItemCode] = row
	return nil
}

func TestSet_BlankCodeRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	err := svc.Set(context.Background(), "", "Okra", 4)

	appErr, ok := apperror.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, repo.rows)
}

func TestSet_ClampsAndRounds(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	assert.NoError(t, svc.Set(context.Background(), "VEG_OKRA", "Okra", -2))
	assert.Equal(t, 0.0, repo.rows["VEG_OKRA"].AvailableQty)

	assert.NoError(t, svc.Set(context.Background(), "VEG_OKRA", "Okra", 3.456))
	assert.Equal(t, 3.46, repo.rows["VEG_OKRA"].AvailableQty)
}

func TestApplyDeltas_AddsToExisting(t *testing.T) {
	repo := newFakeRepo()
	repo.rows["VEG_OKRA"] = QtyRow{ItemCode: "VEG_OKRA", ItemEN: "Okra", AvailableQty: 1.5}
	svc := NewService(repo)

	err := svc.ApplyDeltas(context.Background(), map[string]Delta{
		"VEG_OKRA":   {ItemEN: "Okra", Qty: 2},
		"VEG_TOMATO": {ItemEN: "Tomato", Qty: 0.5},
	})

	assert.NoError(t, err)
	assert.Equal(t, 3.5, repo.rows["VEG_OKRA"].AvailableQty)
	assert.Equal(t, 0.5, repo.rows["VEG_TOMATO"].AvailableQty)
}
