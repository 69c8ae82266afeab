package payroll

import (
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateSalariesRequest struct {
	Month string `json:"month" validate:"required,yyyymm"`
}

func (r *GenerateSalariesRequest) Validate() error {
	return validator.Struct(r).Err()
}

type UpdateSalaryRequest struct {
	ID         string           `json:"-"`
	BaseAmount *decimal.Decimal `json:"base_amount,omitempty" validate:"omitempty,nonneg"`
	Allowances *decimal.Decimal `json:"allowances,omitempty" validate:"omitempty,nonneg"`
	Bonus      *decimal.Decimal `json:"bonus,omitempty" validate:"omitempty,nonneg"`
	Deductions *decimal.Decimal `json:"deductions,omitempty" validate:"omitempty,nonneg"`
	Status     *string          `json:"status,omitempty" validate:"omitempty,oneof=Pending Paid 'Partially Paid' Adjusted 'On Hold'"`
	Remarks    *string          `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateSalaryRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID == "" {
		errs.Add("id", "is required")
	}
	return errs.Err()
}

func (r *UpdateSalaryRequest) changesAmounts() bool {
	return r.BaseAmount != nil || r.Allowances != nil || r.Bonus != nil || r.Deductions != nil
}

// Apply merges the request into e. Identity (tutor, month) is never touched.
// The status is applied first, so one request can move an entry off Paid and
// correct its amounts. Amounts of an entry that stays Paid are frozen.
func (r *UpdateSalaryRequest) Apply(e *SalaryEntry, now time.Time, by string) error {
	if r.Status != nil {
		s := SalaryStatus(*r.Status)
		if !s.Valid() {
			return ErrInvalidStatus
		}
		e.setStatus(s, now, by)
	}
	if r.changesAmounts() && e.IsPaid() {
		return ErrPaidSalaryImmutable
	}
	if r.BaseAmount != nil {
		e.BaseAmount = *r.BaseAmount
	}
	if r.Allowances != nil {
		e.Allowances = *r.Allowances
	}
	if r.Bonus != nil {
		e.Bonus = *r.Bonus
	}
	if r.Deductions != nil {
		e.Deductions = *r.Deductions
	}
	if r.Remarks != nil {
		e.Remarks = r.Remarks
	}
	return nil
}

type SalaryFilter struct {
	Month   *string `json:"month,omitempty" validate:"omitempty,yyyymm"`
	TutorID *string `json:"tutor_id,omitempty"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=Pending Paid 'Partially Paid' Adjusted 'On Hold'"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *SalaryFilter) Validate() error {
	errs := validator.Struct(f)
	errs.Paging(&f.Page, &f.Limit)
	return errs.Err()
}

type SalaryResponse struct {
	ID          string          `json:"id"`
	TutorID     string          `json:"tutor_id"`
	Month       string          `json:"month"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	Allowances  decimal.Decimal `json:"allowances"`
	Bonus       decimal.Decimal `json:"bonus"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	Status      string          `json:"status"`
	PaymentDate *string         `json:"payment_date,omitempty"`
	PaidBy      *string         `json:"paid_by,omitempty"`
	Remarks     *string         `json:"remarks,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type ListSalaryResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Salaries   []SalaryResponse `json:"salaries"`
}

type PayrollSummaryResponse struct {
	Month           string          `json:"month"`
	EntryCount      int             `json:"entry_count"`
	TotalBase       decimal.Decimal `json:"total_base"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalBonus      decimal.Decimal `json:"total_bonus"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	PaidCount       int             `json:"paid_count"`
	PaidNet         decimal.Decimal `json:"paid_net"`
	OutstandingNet  decimal.Decimal `json:"outstanding_net"`
}

func ToResponse(e SalaryEntry) SalaryResponse {
	resp := SalaryResponse{
		ID:         e.ID,
		TutorID:    e.TutorID,
		Month:      e.Month,
		BaseAmount: e.BaseAmount,
		Allowances: e.Allowances,
		Bonus:      e.Bonus,
		Deductions: e.Deductions,
		NetSalary:  e.NetSalary(),
		Status:     string(e.Status),
		PaidBy:     e.PaidBy,
		Remarks:    e.Remarks,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
	if e.PaymentDate != nil {
		paid := e.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &paid
	}
	return resp
}

func ToSummaryResponse(s PayrollSummary) PayrollSummaryResponse {
	return PayrollSummaryResponse{
		Month:           s.Month,
		EntryCount:      s.EntryCount,
		TotalBase:       s.TotalBase,
		TotalAllowances: s.TotalAllowances,
		TotalBonus:      s.TotalBonus,
		TotalDeductions: s.TotalDeductions,
		TotalNet:        s.TotalNet,
		PaidCount:       s.PaidCount,
		PaidNet:         s.PaidNet,
		OutstandingNet:  s.OutstandingNet,
	}
}
