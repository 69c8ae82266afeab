package http

import (
	"net/http"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/tuition-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type FeeHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type feeHandlerImpl struct {
	feeService fee.FeeService
}

func NewFeeHandler(feeService fee.FeeService) FeeHandler {
	return &feeHandlerImpl{feeService: feeService}
}

func (h *feeHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req fee.GenerateFeesRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.feeService.GenerateFees(r.Context(), middleware.ActorFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Fee generation completed", result)
}

func (h *feeHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	result, err := h.feeService.MarkFeePaid(r.Context(), middleware.ActorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Fee marked as paid", result)
}

func (h *feeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.feeService.GetFee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *feeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := fee.FeeFilter{
		Month:     queryString(r, "month"),
		StudentID: queryString(r, "student_id"),
		SubjectID: queryString(r, "subject_id"),
		Status:    queryString(r, "status"),
	}
	filter.Page, filter.Limit = queryPaging(r)

	result, err := h.feeService.ListFees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Fees, response.PageMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

func (h *feeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req fee.UpdateFeeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.feeService.UpdateFee(r.Context(), middleware.ActorFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Fee entry updated", result)
}
