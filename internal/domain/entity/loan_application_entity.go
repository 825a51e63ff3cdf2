package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentType is the applicant's declared employment category.
type EmploymentType string

const (
	EmploymentFullTime     EmploymentType = "full-time"
	EmploymentPartTime     EmploymentType = "part-time"
	EmploymentSelfEmployed EmploymentType = "self-employed"
	EmploymentUnemployed   EmploymentType = "unemployed"
	EmploymentRetired      EmploymentType = "retired"
)

func (e EmploymentType) IsValid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentSelfEmployed,
		EmploymentUnemployed, EmploymentRetired:
		return true
	}
	return false
}

// ApplicationStatus is the lifecycle state of a loan application.
// New applications are always created as pending; approval or rejection
// is driven externally (back office), never by this service.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the application has been decided.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// LoanApplication is a single submitted application. Records are immutable
// once created: the service only appends new applications and reads the
// latest one per user (max created_at).
type LoanApplication struct {
	ID              string
	UserID          string
	EmployerName    string
	JobTitle        string
	EmploymentType  EmploymentType
	MonthlyIncome   decimal.Decimal
	Amount          decimal.Decimal
	DurationMonths  int
	CreditScore     *int
	CreditCheck     bool
	TotalSavings    decimal.Decimal
	Assets          string
	CollateralType  string
	CollateralValue *decimal.Decimal
	ExistingDebt    bool
	Purpose         string
	Status          ApplicationStatus
	CreatedAt       time.Time
}
