package fee

import (
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateFeesRequest struct {
	Month string `json:"month" validate:"required,yyyymm"`
}

func (r *GenerateFeesRequest) Validate() error {
	return validator.Struct(r).Err()
}

type UpdateFeeRequest struct {
	ID      string  `json:"-"`
	Remarks *string `json:"remarks" validate:"omitempty,max=500"`
}

func (r *UpdateFeeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID == "" {
		errs.Add("id", "is required")
	}
	return errs.Err()
}

type FeeFilter struct {
	Month     *string `json:"month,omitempty" validate:"omitempty,yyyymm"`
	StudentID *string `json:"student_id,omitempty"`
	SubjectID *string `json:"subject_id,omitempty"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=pending overdue paid"`

	// AsOf is the instant pending and overdue are told apart at.
	AsOf time.Time `json:"-"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *FeeFilter) Validate() error {
	errs := validator.Struct(f)
	errs.Paging(&f.Page, &f.Limit)
	return errs.Err()
}

type FeeResponse struct {
	ID           string          `json:"id"`
	StudentID    string          `json:"student_id"`
	SubjectID    string          `json:"subject_id"`
	BillingMonth string          `json:"billing_month"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      string          `json:"due_date"`
	Status       string          `json:"status"`
	PaidDate     *string         `json:"paid_date,omitempty"`
	PaidBy       *string         `json:"paid_by,omitempty"`
	Remarks      *string         `json:"remarks,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type ListFeeResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Fees       []FeeResponse `json:"fees"`
}

// ToResponse renders e with its status as seen at now.
func ToResponse(e FeeEntry, now time.Time) FeeResponse {
	resp := FeeResponse{
		ID:           e.ID,
		StudentID:    e.StudentID,
		SubjectID:    e.SubjectID,
		BillingMonth: e.BillingMonth,
		Amount:       e.Amount,
		DueDate:      e.DueDate.Format("2006-01-02"),
		Status:       string(e.EffectiveStatus(now)),
		PaidBy:       e.PaidBy,
		Remarks:      e.Remarks,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
	if e.PaidDate != nil {
		paid := e.PaidDate.Format(time.RFC3339)
		resp.PaidDate = &paid
	}
	return resp
}
