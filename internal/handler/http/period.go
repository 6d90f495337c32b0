package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PeriodHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Dates(w http.ResponseWriter, r *http.Request)
}

type PeriodHandlerImpl struct {
	periodService period.PeriodService
}

func NewPeriodHandler(periodService period.PeriodService) PeriodHandler {
	return &PeriodHandlerImpl{periodService: periodService}
}

func (h *PeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	periods, err := h.periodService.ListPeriods(r.Context())
	if err != nil {
		slog.Error("ListPeriods service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, periods)
}

func (h *PeriodHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	current, err := h.periodService.GetCurrentPeriod(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, current)
}

func (h *PeriodHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.periodService.GetPeriod(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

func (h *PeriodHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req period.CreatePeriodRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePeriod decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.periodService.CreatePeriod(r.Context(), req)
	if err != nil {
		slog.Error("CreatePeriod service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created successfully", created)
}

func (h *PeriodHandlerImpl) Dates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.periodService.GetDates(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, dates)
}
