package http

import (
	"net/http"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/handler/http/response"
)

type AnalyticsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{analyticsService: analyticsService}
}

func (h *analyticsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	req := analytics.AnalyticsRequest{
		Date:      r.URL.Query().Get("date"),
		ClassID:   queryString(r, "class_id"),
		SubjectID: queryString(r, "subject_id"),
		TutorID:   queryString(r, "tutor_id"),
	}

	result, err := h.analyticsService.GetAnalytics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
