package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Save(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	DeleteDay(w http.ResponseWriter, r *http.Request)
	DeleteRecords(w http.ResponseWriter, r *http.Request)
	PeriodAttendance(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// pairFromQuery reads employee_id, payroll_period_id and an optional day_index.
func pairFromQuery(r *http.Request) (attendance.PairRequest, error) {
	query := r.URL.Query()
	req := attendance.PairRequest{
		EmployeeID: query.Get("employee_id"),
		PeriodID:   query.Get("payroll_period_id"),
	}
	if raw := query.Get("day_index"); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return req, err
		}
		req.DayIndex = &idx
	}
	return req, nil
}

// Save implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req attendance.SaveAttendanceRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.attendanceService.SaveAttendance(r.Context(), req)
	if err != nil {
		slog.Error("SaveAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if saved.Created {
		response.Created(w, "Attendance saved successfully", saved)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated successfully", saved)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req, err := pairFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", map[string]string{"day_index": "must be an integer"})
		return
	}

	entries, err := h.attendanceService.ListAttendance(r.Context(), req)
	if err != nil {
		slog.Error("ListAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// DeleteDay implements AttendanceHandler. The pair may come as a JSON body
// or as query parameters.
func (h *AttendanceHandlerImpl) DeleteDay(w http.ResponseWriter, r *http.Request) {
	req, err := pairFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", map[string]string{"day_index": "must be an integer"})
		return
	}

	var body attendance.PairRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("DeleteAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if body.EmployeeID != "" {
		req.EmployeeID = body.EmployeeID
	}
	if body.PeriodID != "" {
		req.PeriodID = body.PeriodID
	}
	if body.DayIndex != nil {
		req.DayIndex = body.DayIndex
	}

	deleted, err := h.attendanceService.DeleteDay(r.Context(), req)
	if err != nil {
		slog.Error("DeleteAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", deleted)
}

// DeleteRecords implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DeleteRecords(w http.ResponseWriter, r *http.Request) {
	req := attendance.PairRequest{
		EmployeeID: chi.URLParam(r, "employeeId"),
		PeriodID:   chi.URLParam(r, "periodId"),
	}

	deleted, err := h.attendanceService.DeleteRecords(r.Context(), req)
	if err != nil {
		slog.Error("DeleteAttendanceRecords service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance records deleted successfully", deleted)
}

// PeriodAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) PeriodAttendance(w http.ResponseWriter, r *http.Request) {
	grid, err := h.attendanceService.GetPeriodAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("GetPeriodAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, grid)
}
