package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"mandiflow/internal/domain/accounts"
)

const (
	voucherTable  = "doc_cash_vouchers"
	dayCloseTable = "doc_cash_day_closes"
)

// AccountsRepo implements accounts.Repository.
type AccountsRepo struct {
	txManager *TxManager
	audit     *AuditService
}

// NewAccountsRepo creates a new accounts repository.
func NewAccountsRepo(txManager *TxManager, audit *AuditService) *AccountsRepo {
	return &AccountsRepo{txManager: txManager, audit: audit}
}

var _ accounts.Repository = (*AccountsRepo)(nil)

// CreateVoucher inserts one cash movement.
func (r *AccountsRepo) CreateVoucher(ctx context.Context, voucher *accounts.Voucher) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sql, args, err := psql.
			Insert(voucherTable).
			Columns("id", "voucher_date", "target_user_id", "voucher_type", "amount", "notes", "posted_by", "created_at").
			Values(
				voucher.ID, voucher.VoucherDate, voucher.TargetUserID, voucher.Type,
				voucher.Amount, voucher.Notes, voucher.PostedBy, voucher.CreatedAt,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}

		querier := r.txManager.GetQuerier(ctx)
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return translateError(fmt.Errorf("insert voucher: %w", err), "voucher")
		}

		return r.audit.LogChange(ctx, "cash_voucher", voucher.ID.String(), AuditActionCreate, voucher)
	})
}

// ListVouchers returns vouchers for dates in [fromDate, toDate], oldest
// first.
func (r *AccountsRepo) ListVouchers(ctx context.Context, fromDate, toDate string) ([]accounts.Voucher, error) {
	sql, args, err := psql.
		Select("id", "voucher_date", "target_user_id", "voucher_type", "amount", "notes", "posted_by", "created_at").
		From(voucherTable).
		Where(squirrel.GtOrEq{"voucher_date": fromDate}).
		Where(squirrel.LtOrEq{"voucher_date": toDate}).
		OrderBy("voucher_date ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var vouchers []accounts.Voucher
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &vouchers, sql, args...); err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	return vouchers, nil
}

// GetDayClose returns the close record for a date, nil when open.
func (r *AccountsRepo) GetDayClose(ctx context.Context, dayDate string) (*accounts.DayClose, error) {
	sql, args, err := psql.
		Select("id", "day_date", "close_note", "closed_by", "created_at").
		From(dayCloseTable).
		Where(squirrel.Eq{"day_date": dayDate}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var close accounts.DayClose
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &close, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get day close: %w", err)
	}
	return &close, nil
}

// ListDayCloses returns close records for dates in [fromDate, toDate].
func (r *AccountsRepo) ListDayCloses(ctx context.Context, fromDate, toDate string) ([]accounts.DayClose, error) {
	sql, args, err := psql.
		Select("id", "day_date", "close_note", "closed_by", "created_at").
		From(dayCloseTable).
		Where(squirrel.GtOrEq{"day_date": fromDate}).
		Where(squirrel.LtOrEq{"day_date": toDate}).
		OrderBy("day_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var closes []accounts.DayClose
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &closes, sql, args...); err != nil {
		return nil, fmt.Errorf("list day closes: %w", err)
	}
	return closes, nil
}

// CreateDayClose records that a day was closed.
func (r *AccountsRepo) CreateDayClose(ctx context.Context, close *accounts.DayClose) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sql, args, err := psql.
			Insert(dayCloseTable).
			Columns("id", "day_date", "close_note", "closed_by", "created_at").
			Values(close.ID, close.DayDate, close.CloseNote, close.ClosedBy, close.CreatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}

		querier := r.txManager.GetQuerier(ctx)
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return translateError(fmt.Errorf("insert day close: %w", err), "day close")
		}

		return r.audit.LogChange(ctx, "cash_day", close.DayDate, AuditActionClose, close)
	})
}
