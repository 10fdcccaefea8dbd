package accounts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mandiflow/internal/core/apperror"
	appctx "mandiflow/internal/core/context"
	"mandiflow/internal/core/id"
	"mandiflow/internal/core/security"
	"mandiflow/internal/core/types"
	"mandiflow/pkg/logger"
)

// ExpectedSpendSource supplies the purchase plan's spend total per date, so
// reconciliation can flag days where cash went out but no purchase was
// posted.
type ExpectedSpendSource interface {
	SpendForDate(ctx context.Context, date string) (float64, error)
}

// Service posts cash vouchers, derives day reconciliation and runs the
// day-close workflow. Every mutation checks role permissions from the
// actor context.
type Service struct {
	repo          Repository
	expectedSpend ExpectedSpendSource
}

// NewService creates a new accounts service.
func NewService(repo Repository, expectedSpend ExpectedSpendSource) *Service {
	return &Service{repo: repo, expectedSpend: expectedSpend}
}

// PostVoucherInput is one cash movement to post.
type PostVoucherInput struct {
	VoucherDate  string
	TargetUserID string
	Type         VoucherType
	Amount       float64
	Notes        *string
}

// PostVoucher records a cash movement. The actor must be allowed to post
// accounting at all, and purchase users may only post against themselves.
func (s *Service) PostVoucher(ctx context.Context, in PostVoucherInput) (*Voucher, error) {
	role := appctx.GetRole(ctx)
	if !security.CanPostAccounting(role) {
		return nil, apperror.NewForbidden("role cannot post cash vouchers")
	}
	actorID := appctx.GetActorID(ctx)
	if !security.CanPostForUser(role, actorID, in.TargetUserID) {
		return nil, apperror.NewForbidden("cannot post vouchers for another user")
	}

	if !IsValidVoucherType(in.Type) {
		return nil, apperror.NewValidation("unknown voucher type").
			WithDetail("type", string(in.Type))
	}
	amount := types.Round2(types.SafeNumber(in.Amount, 0))
	if amount <= 0 {
		return nil, apperror.NewValidation("voucher amount must be positive").
			WithDetail("amount", amount)
	}

	close, err := s.repo.GetDayClose(ctx, in.VoucherDate)
	if err != nil {
		return nil, fmt.Errorf("check day close: %w", err)
	}
	if close != nil {
		return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"cash day is closed").
			WithDetail("day_date", in.VoucherDate)
	}

	voucher := &Voucher{
		ID:           id.New(),
		VoucherDate:  in.VoucherDate,
		TargetUserID: in.TargetUserID,
		Type:         in.Type,
		Amount:       amount,
		Notes:        in.Notes,
		PostedBy:     actorID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateVoucher(ctx, voucher); err != nil {
		return nil, fmt.Errorf("create voucher: %w", err)
	}

	logger.Info(ctx, "voucher posted",
		"voucher_date", in.VoucherDate,
		"type", string(in.Type),
		"amount", amount,
		"target_user", in.TargetUserID,
	)
	return voucher, nil
}

// ListDays returns the derived reconciliation for every cash day in the
// range that has at least one voucher or a close record, oldest first.
func (s *Service) ListDays(ctx context.Context, fromDate, toDate string) ([]DayComputed, error) {
	vouchers, err := s.repo.ListVouchers(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	closes, err := s.repo.ListDayCloses(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list day closes: %w", err)
	}

	byDate := make(map[string]*VoucherSummary)
	summary := func(date string) *VoucherSummary {
		if sum, ok := byDate[date]; ok {
			return sum
		}
		sum := &VoucherSummary{Date: date}
		byDate[date] = sum
		return sum
	}

	for _, v := range vouchers {
		sum := summary(v.VoucherDate)
		switch v.Type {
		case VoucherCashIssue:
			sum.CashIssued += v.Amount
		case VoucherSpend:
			sum.Spend += v.Amount
		case VoucherCashReturn:
			sum.CashReturned += v.Amount
		}
	}
	for _, c := range closes {
		sum := summary(c.DayDate)
		sum.IsClosed = true
		sum.CloseNote = c.CloseNote
	}

	days := make([]DayComputed, 0, len(byDate))
	for date, sum := range byDate {
		expected, err := s.expectedSpend.SpendForDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("expected spend for %s: %w", date, err)
		}
		sum.ExpectedSpend = expected
		days = append(days, ComputeDay(*sum))
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days, nil
}

// GetDay returns the derived reconciliation for one cash day.
func (s *Service) GetDay(ctx context.Context, dayDate string) (*DayComputed, error) {
	days, err := s.ListDays(ctx, dayDate, dayDate)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		expected, err := s.expectedSpend.SpendForDate(ctx, dayDate)
		if err != nil {
			return nil, fmt.Errorf("expected spend for %s: %w", dayDate, err)
		}
		day := ComputeDay(VoucherSummary{Date: dayDate, ExpectedSpend: expected})
		return &day, nil
	}
	return &days[0], nil
}

// CloseDay closes a cash day. Admin only. A mismatched day needs a close
// note explaining the difference.
func (s *Service) CloseDay(ctx context.Context, dayDate, closeNote string) error {
	role := appctx.GetRole(ctx)
	if !security.CanCloseDay(role) {
		return apperror.NewForbidden("role cannot close a cash day")
	}

	existing, err := s.repo.GetDayClose(ctx, dayDate)
	if err != nil {
		return fmt.Errorf("check day close: %w", err)
	}
	if existing != nil {
		return apperror.NewConflict("cash day is already closed").
			WithDetail("day_date", dayDate)
	}

	day, err := s.GetDay(ctx, dayDate)
	if err != nil {
		return err
	}
	if day.Difference != 0 && closeNote == "" {
		return apperror.NewValidation("a mismatched day needs a close note").
			WithDetail("difference", day.Difference)
	}

	close := &DayClose{
		ID:        id.New(),
		DayDate:   dayDate,
		CloseNote: closeNote,
		ClosedBy:  appctx.GetActorID(ctx),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateDayClose(ctx, close); err != nil {
		return fmt.Errorf("create day close: %w", err)
	}

	logger.Info(ctx, "cash day closed",
		"day_date", dayDate,
		"difference", day.Difference,
	)
	return nil
}
