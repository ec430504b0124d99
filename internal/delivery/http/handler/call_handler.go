package handler

import (
	"encoding/json"
	"net/http"

	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/delivery/http/middleware"
	"sehat-sathi-server/internal/usecase"
	"sehat-sathi-server/pkg/response"
	"sehat-sathi-server/pkg/validator"

	"github.com/gorilla/mux"
)

type CallHandler struct {
	callUsecase usecase.CallUsecase
	validator   *validator.CustomValidator
}

func NewCallHandler(callUsecase usecase.CallUsecase, validator *validator.CustomValidator) *CallHandler {
	return &CallHandler{
		callUsecase: callUsecase,
		validator:   validator,
	}
}

// CreateCall schedules or starts a consultation call
// @Summary Create a consultation call
// @Description Create an immediate call or schedule one with a pre-call reminder
// @Tags Calls
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateCallRequest true "Create Call Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /calls [post]
func (h *CallHandler) CreateCall(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	call, err := h.callUsecase.CreateCall(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrScheduledTimeNeeded:
			response.Error(w, http.StatusBadRequest, "scheduled_time is required for non-immediate calls", nil)
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to create call")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Call created successfully", call)
}

func (h *CallHandler) GetCall(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	call, err := h.callUsecase.GetCall(r.Context(), vars["id"])
	if err != nil {
		switch err {
		case usecase.ErrCallNotFound:
			response.NotFound(w, "Call not found")
		default:
			response.InternalServerError(w, "Failed to get call")
		}
		return
	}

	response.Success(w, http.StatusOK, "Call retrieved successfully", call)
}

// GetUpcomingCalls lists the authenticated patient's pending calls
func (h *CallHandler) GetUpcomingCalls(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	calls, err := h.callUsecase.GetUpcomingCalls(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get upcoming calls")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming calls retrieved successfully", calls)
}

// UpdateCallStatus moves a call through its lifecycle
// @Summary Update call status
// @Description Transition a call between pending, active, completed and cancelled
// @Tags Calls
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Call ID"
// @Param request body dto.UpdateCallStatusRequest true "Update Call Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /calls/{id}/status [patch]
func (h *CallHandler) UpdateCallStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.UpdateCallStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	call, err := h.callUsecase.UpdateCallStatus(r.Context(), vars["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrCallNotFound:
			response.NotFound(w, "Call not found")
		case usecase.ErrInvalidTransition:
			response.Error(w, http.StatusConflict, "Invalid call status transition", nil)
		default:
			response.InternalServerError(w, "Failed to update call status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Call status updated successfully", call)
}

// CancelCallReminder drops the pending reminder for a call. Unknown or
// already-fired reminders cancel cleanly.
func (h *CallHandler) CancelCallReminder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.callUsecase.CancelCall(r.Context(), vars["id"]); err != nil {
		response.InternalServerError(w, "Failed to cancel call reminder")
		return
	}

	response.Success(w, http.StatusOK, "Call reminder cancelled", nil)
}
