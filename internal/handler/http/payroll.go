package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Approve(w http.ResponseWriter, r *http.Request)
	BulkApprove(w http.ResponseWriter, r *http.Request)
	Unapprove(w http.ResponseWriter, r *http.Request)
	CanEdit(w http.ResponseWriter, r *http.Request)
	ApprovalStatus(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	DailyTotals(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	DeleteSummary(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Approve implements PayrollHandler.
func (h *PayrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req payroll.ApproveRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApproveAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	approved, err := h.payrollService.Approve(r.Context(), req)
	if err != nil {
		slog.Error("ApproveAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	message := "Attendance approved"
	if approved.SyncedToPayroll {
		message = "Attendance approved and synced to payroll"
	}
	response.SuccessWithMessage(w, message, approved)
}

// BulkApprove implements PayrollHandler.
func (h *PayrollHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	var req payroll.BulkApproveRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkApprove decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.BulkApprove(r.Context(), req)
	if err != nil {
		slog.Error("BulkApprove service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w,
		fmt.Sprintf("Bulk approval completed: %d succeeded, %d failed", result.Succeeded, result.Failed),
		result)
}

// Unapprove implements PayrollHandler.
func (h *PayrollHandlerImpl) Unapprove(w http.ResponseWriter, r *http.Request) {
	var req attendance.PairRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UnapproveAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.Unapprove(r.Context(), req)
	if err != nil {
		slog.Error("UnapproveAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance unapproved", result)
}

// CanEdit implements PayrollHandler.
func (h *PayrollHandlerImpl) CanEdit(w http.ResponseWriter, r *http.Request) {
	req := attendance.PairRequest{
		EmployeeID: chi.URLParam(r, "employeeId"),
		PeriodID:   chi.URLParam(r, "periodId"),
	}

	result, err := h.payrollService.CanEdit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApprovalStatus implements PayrollHandler.
func (h *PayrollHandlerImpl) ApprovalStatus(w http.ResponseWriter, r *http.Request) {
	req, err := pairFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", nil)
		return
	}

	status, err := h.payrollService.ApprovalStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// Summary implements PayrollHandler.
func (h *PayrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("period_id")
	if periodID == "" {
		periodID = chi.URLParam(r, "id")
	}
	if periodID == "" {
		response.ValidationError(w, map[string]string{"period_id": "period_id is required"})
		return
	}

	report, err := h.payrollService.GetSummary(r.Context(), periodID)
	if err != nil {
		slog.Error("GetSummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// DailyTotals implements PayrollHandler.
func (h *PayrollHandlerImpl) DailyTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.payrollService.GetDailyTotals(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("GetDailyTotals service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, totals)
}

// ExportCSV implements PayrollHandler. The body is buffered so a failure
// part way through still yields a JSON error.
func (h *PayrollHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")

	var buf bytes.Buffer
	if err := h.payrollService.ExportCSV(r.Context(), periodID, &buf); err != nil {
		slog.Error("ExportCSV service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"payroll-%s.csv\"", periodID))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("ExportCSV write error", "error", err)
	}
}

// DeleteSummary implements PayrollHandler.
func (h *PayrollHandlerImpl) DeleteSummary(w http.ResponseWriter, r *http.Request) {
	req := attendance.PairRequest{
		EmployeeID: chi.URLParam(r, "employeeId"),
		PeriodID:   chi.URLParam(r, "periodId"),
	}

	deleted, err := h.payrollService.DeleteSummary(r.Context(), req)
	if err != nil {
		slog.Error("DeleteSummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll summary deleted successfully", deleted)
}
