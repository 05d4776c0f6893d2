package services

import (
	"context"
	"fmt"

	"github.com/Yquannn/sibbap-admin/internal/models"
)

// DepositSource fetches the active time-deposit accounts
type DepositSource interface {
	ActiveDeposits(ctx context.Context) ([]models.DepositAccount, error)
}

// TimeDepositService backs the time-deposit list
type TimeDepositService struct {
	source DepositSource
}

func NewTimeDepositService(source DepositSource) *TimeDepositService {
	return &TimeDepositService{source: source}
}

// Fetch loads the active accounts
func (s *TimeDepositService) Fetch(ctx context.Context) ([]models.DepositAccount, error) {
	accounts, err := s.source.ActiveDeposits(ctx)
	if err != nil {
		return nil, fmt.Errorf("active deposits: %w", err)
	}
	return accounts, nil
}

// View fetches and filters in one call
func (s *TimeDepositService) View(ctx context.Context, query string) (*models.DepositListView, error) {
	accounts, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return DeriveDepositView(accounts, query), nil
}
