package services

import (
	"time"

	"github.com/Yquannn/sibbap-admin/internal/models"
)

// OverdueInstallments returns the unpaid installments due before now.
// An installment without a readable due date is never overdue.
func OverdueInstallments(installments []models.Installment, now time.Time) []models.Installment {
	var overdue []models.Installment
	for _, inst := range installments {
		if inst.IsUnpaid() && inst.DueDate.Before(now) {
			overdue = append(overdue, inst)
		}
	}
	return overdue
}

// ClassifyPayer looks at every loan and installment of the member,
// regardless of the screen filters.
//
// A good payer has no active loan and at least one paid-off loan. A member
// is on time when no unpaid installment is past due, which holds trivially
// for a member without loans.
func ClassifyPayer(apps []models.LoanApplication, installments []models.Installment, now time.Time) models.PayerStatus {
	var status models.PayerStatus
	for _, app := range apps {
		switch {
		case app.HasStatus(models.LoanStatusActive):
			status.ActiveCount++
		case app.HasStatus(models.LoanStatusPaidOff):
			status.PaidOffCount++
		}
	}

	status.OverdueCount = len(OverdueInstallments(installments, now))
	status.IsGoodPayer = status.ActiveCount == 0 && status.PaidOffCount > 0
	status.IsOnTime = status.OverdueCount == 0
	status.IsGoodOrOnTime = status.IsGoodPayer || status.IsOnTime
	return status
}
