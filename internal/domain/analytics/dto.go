package analytics

import (
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AnalyticsRequest struct {
	Date      string  `json:"date" validate:"omitempty,date"` // defaults to today
	ClassID   *string `json:"class_id,omitempty"`
	SubjectID *string `json:"subject_id,omitempty"`
	TutorID   *string `json:"tutor_id,omitempty"`
}

func (r *AnalyticsRequest) Validate() error {
	return validator.Struct(r).Err()
}

func (r *AnalyticsRequest) Scope() Scope {
	return Scope{ClassID: r.ClassID, SubjectID: r.SubjectID, TutorID: r.TutorID}
}

// AnalyticsResponse is the combined dashboard payload.
type AnalyticsResponse struct {
	Date               string             `json:"date"`  // YYYY-MM-DD
	Month              string             `json:"month"` // YYYY-MM
	TodayPercentage    int                `json:"today_percentage"`
	WeeklyOverview     []DayPointResponse `json:"weekly_overview"`
	WeeklyAverage      int                `json:"weekly_average"`     // over days with data only
	MonthlyPercentage  int                `json:"monthly_percentage"` // pooled over the month
	Collected          decimal.Decimal    `json:"collected"`
	Pending            decimal.Decimal    `json:"pending"`
	PayrollPaid        decimal.Decimal    `json:"payroll_paid"`
	PayrollOutstanding decimal.Decimal    `json:"payroll_outstanding"`
}

type DayPointResponse struct {
	Date       string `json:"date"`
	Day        string `json:"day"` // Mon..Sun
	Percentage int    `json:"percentage"`
	HasData    bool   `json:"has_data"`
	Attended   int64  `json:"attended"`
	Total      int64  `json:"total"`
}

func ToDayPointResponses(points []DayPoint) []DayPointResponse {
	out := make([]DayPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, DayPointResponse{
			Date:       p.Date.Format(dayKey),
			Day:        p.Date.Format("Mon"),
			Percentage: p.Percentage,
			HasData:    p.HasData,
			Attended:   p.Attended,
			Total:      p.Total,
		})
	}
	return out
}
