package handler

import (
	"encoding/json"
	"net/http"

	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/delivery/http/middleware"
	"sehat-sathi-server/internal/usecase"
	"sehat-sathi-server/pkg/response"
	"sehat-sathi-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase     usecase.ScheduleUsecase
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewScheduleHandler(
	scheduleUsecase usecase.ScheduleUsecase,
	availabilityUsecase usecase.AvailabilityUsecase,
	validator *validator.CustomValidator,
) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase:     scheduleUsecase,
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// UpsertMySchedule lets the authenticated doctor overwrite their weekly
// working windows. Days absent from the request keep their stored rule.
func (h *ScheduleHandler) UpsertMySchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpsertScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.UpsertSchedule(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDay:
			response.Error(w, http.StatusBadRequest, "Invalid weekday name", nil)
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Times must be in HH:MM format", nil)
		case usecase.ErrInvalidTimeWindow:
			response.Error(w, http.StatusBadRequest, "Start time must be before end time", nil)
		case usecase.ErrDuplicateDayInRules:
			response.Error(w, http.StatusBadRequest, "Each weekday may appear at most once", nil)
		default:
			response.InternalServerError(w, "Failed to save schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule saved successfully", schedule)
}

func (h *ScheduleHandler) GetDoctorSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	schedule, err := h.scheduleUsecase.GetSchedule(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// GetDoctorSlots returns the bookable one-hour slots for a doctor on a date
// @Summary Get available slots
// @Description Resolve a doctor's open one-hour consultation slots for a date
// @Tags Schedules
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{doctorId}/slots [get]
func (h *ScheduleHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	slots, err := h.availabilityUsecase.GetAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to resolve slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}
