package http

import (
	"net/http"

	"sehat-sathi-server/internal/delivery/http/handler"
	"sehat-sathi-server/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	doctorHandler      *handler.DoctorHandler
	scheduleHandler    *handler.ScheduleHandler
	appointmentHandler *handler.AppointmentHandler
	callHandler        *handler.CallHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	scheduleHandler *handler.ScheduleHandler,
	appointmentHandler *handler.AppointmentHandler,
	callHandler *handler.CallHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		doctorHandler:      doctorHandler,
		scheduleHandler:    scheduleHandler,
		appointmentHandler: appointmentHandler,
		callHandler:        callHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Own schedule management (doctor only). Registered before the
	// {doctorId} routes so "me" never parses as an ID.
	doctorMe := api.PathPrefix("/doctors/me").Subrouter()
	doctorMe.Use(r.authMiddleware.Authenticate)
	doctorMe.Use(middleware.RequireDoctor)
	doctorMe.HandleFunc("/schedule", r.scheduleHandler.UpsertMySchedule).Methods(http.MethodPut)

	// Doctor directory and availability (any authenticated user)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/{doctorId}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	doctors.HandleFunc("/{doctorId}/schedule", r.scheduleHandler.GetDoctorSchedule).Methods(http.MethodGet)
	doctors.HandleFunc("/{doctorId}/slots", r.scheduleHandler.GetDoctorSlots).Methods(http.MethodGet)

	// Appointments (patient only)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(middleware.RequirePatient)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/me", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPatch)

	// Consultation calls
	calls := api.PathPrefix("/calls").Subrouter()
	calls.Use(r.authMiddleware.Authenticate)
	calls.Use(middleware.RequireDoctorOrPatient)
	calls.HandleFunc("", r.callHandler.CreateCall).Methods(http.MethodPost)
	calls.HandleFunc("/upcoming", r.callHandler.GetUpcomingCalls).Methods(http.MethodGet)
	calls.HandleFunc("/{id}", r.callHandler.GetCall).Methods(http.MethodGet)
	calls.HandleFunc("/{id}/status", r.callHandler.UpdateCallStatus).Methods(http.MethodPatch)
	calls.HandleFunc("/{id}/cancel", r.callHandler.CancelCallReminder).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
