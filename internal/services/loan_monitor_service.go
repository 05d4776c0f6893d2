package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Yquannn/sibbap-admin/internal/charts"
	"github.com/Yquannn/sibbap-admin/internal/models"
	"github.com/Yquannn/sibbap-admin/internal/upstream"
)

// LoanSource fetches a member's loan bundle
type LoanSource interface {
	MemberLoans(ctx context.Context, memberID string) (*models.LoanBundle, error)
}

// LoanMonitorService backs the per-member loan monitor
type LoanMonitorService struct {
	source LoanSource
	charts *charts.Registry
	dist   UserDistribution
	now    func() time.Time
}

func NewLoanMonitorService(source LoanSource, registry *charts.Registry, dist UserDistribution) *LoanMonitorService {
	return &LoanMonitorService{
		source: source,
		charts: registry,
		dist:   dist,
		now:    time.Now,
	}
}

// Fetch loads the bundle of memberID. The id is required; there is no
// fallback to a session-scoped member.
func (s *LoanMonitorService) Fetch(ctx context.Context, memberID string) (*models.LoanBundle, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, upstream.ErrMissingMemberID
	}
	bundle, err := s.source.MemberLoans(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("member %s loans: %w", memberID, err)
	}
	return bundle, nil
}

// Derive builds the view for an already fetched bundle
func (s *LoanMonitorService) Derive(bundle *models.LoanBundle, filters models.LoanFilters) (*models.LoanMonitorView, error) {
	return DeriveLoanView(bundle, filters, LoanViewOptions{
		Charts:           s.charts,
		UserDistribution: s.dist,
		Now:              s.now(),
	})
}

// View fetches and derives in one call
func (s *LoanMonitorService) View(ctx context.Context, memberID string, filters models.LoanFilters) (*models.LoanMonitorView, error) {
	bundle, err := s.Fetch(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.Derive(bundle, filters)
}
