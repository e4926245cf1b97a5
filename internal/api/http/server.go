package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/service"
)

// Server owns the router and the HTTP listener.
type Server struct {
	services *service.Services
	router   *mux.Router
	httpSrv  *http.Server
}

func NewServer(services *service.Services, host string, port int) *Server {
	s := &Server{services: services}
	s.router = s.buildRouter()
	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      requestLogging(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()
	auth := s.services.Auth

	authH := &authHandler{server: s}
	roleH := &roleHandler{server: s}
	adminH := &adminHandler{server: s}
	eventH := &eventHandler{server: s}
	ticketH := &ticketHandler{server: s}
	sponsorH := &sponsorshipHandler{server: s}
	analyticsH := &analyticsHandler{server: s}

	api := r.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/signup", authH.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authH.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", requireAuth(auth, authH.Me)).Methods(http.MethodGet)

	// Role lifecycle, user-facing
	api.HandleFunc("/roles/apply", requireAuth(auth, roleH.Apply)).Methods(http.MethodPost)
	api.HandleFunc("/roles/eligibility", requireAuth(auth, roleH.Eligibility)).Methods(http.MethodGet)
	api.HandleFunc("/roles/applications/{id:[0-9]+}", requireAuth(auth, roleH.GetApplication)).Methods(http.MethodGet)

	// Public organizer pages and following
	api.HandleFunc("/organizers/{slug}", optionalAuth(auth, roleH.OrganizerProfile)).Methods(http.MethodGet)
	api.HandleFunc("/organizers/{slug}/follow", requireAuth(auth, roleH.FollowOrganizer)).Methods(http.MethodPost)
	api.HandleFunc("/organizers/{slug}/follow", requireAuth(auth, roleH.UnfollowOrganizer)).Methods(http.MethodDelete)

	// Public supplier pages
	api.HandleFunc("/suppliers/{slug}", roleH.SupplierProfile).Methods(http.MethodGet)

	// Events
	api.HandleFunc("/events", optionalAuth(auth, eventH.Search)).Methods(http.MethodGet)
	api.HandleFunc("/events", requireAuth(auth, eventH.Create)).Methods(http.MethodPost)
	api.HandleFunc("/events/mine", requireAuth(auth, eventH.ListMine)).Methods(http.MethodGet)
	api.HandleFunc("/events/{slug}", optionalAuth(auth, eventH.Get)).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", requireAuth(auth, eventH.Update)).Methods(http.MethodPut)
	api.HandleFunc("/events/{id:[0-9]+}/status", requireAuth(auth, eventH.SetStatus)).Methods(http.MethodPost)

	// Tickets and funnel telemetry
	api.HandleFunc("/events/{id:[0-9]+}/tickets", requireAuth(auth, ticketH.Register)).Methods(http.MethodPost)
	api.HandleFunc("/events/{id:[0-9]+}/funnel", optionalAuth(auth, ticketH.TrackFunnel)).Methods(http.MethodPost)
	api.HandleFunc("/tickets", requireAuth(auth, ticketH.ListMine)).Methods(http.MethodGet)
	api.HandleFunc("/tickets/{id:[0-9]+}/confirm", requireAuth(auth, ticketH.Confirm)).Methods(http.MethodPost)
	api.HandleFunc("/tickets/{id:[0-9]+}/cancel", requireAuth(auth, ticketH.Cancel)).Methods(http.MethodPost)

	// Sponsorships
	api.HandleFunc("/events/{id:[0-9]+}/sponsorships", requireAuth(auth, sponsorH.Apply)).Methods(http.MethodPost)
	api.HandleFunc("/events/{id:[0-9]+}/sponsorships", requireAuth(auth, sponsorH.ListForEvent)).Methods(http.MethodGet)
	api.HandleFunc("/sponsorships/mine", requireAuth(auth, sponsorH.ListMine)).Methods(http.MethodGet)
	api.HandleFunc("/sponsorships/{id:[0-9]+}/review", requireAuth(auth, sponsorH.Review)).Methods(http.MethodPost)

	// Dashboards
	api.HandleFunc("/analytics/organizer", requireAuth(auth, analyticsH.OrganizerDashboard)).Methods(http.MethodGet)
	api.HandleFunc("/analytics/platform", requireAuth(auth, analyticsH.PlatformDashboard)).Methods(http.MethodGet)
	api.HandleFunc("/analytics/daily-stats", requireAuth(auth, analyticsH.DailyStats)).Methods(http.MethodGet)

	// Management surface
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/applications", requireAuth(auth, adminH.ListApplications)).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{id:[0-9]+}/approve", requireAuth(auth, adminH.ApproveApplication)).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id:[0-9]+}/reject", requireAuth(auth, adminH.RejectApplication)).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id:[0-9]+}/review", requireAuth(auth, adminH.MarkUnderReview)).Methods(http.MethodPost)
	admin.HandleFunc("/users", requireAuth(auth, adminH.ListUsers)).Methods(http.MethodGet)
	admin.HandleFunc("/suppliers", requireAuth(auth, adminH.ListSuppliers)).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}/suspend", requireAuth(auth, adminH.SuspendRole)).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}/reactivate", requireAuth(auth, adminH.ReactivateRole)).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}/revoke", requireAuth(auth, adminH.RevokeRole)).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}/promote", requireAuth(auth, adminH.PromoteRole)).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}/activate", requireAuth(auth, adminH.ActivateAccount)).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}/deactivate", requireAuth(auth, adminH.DeactivateAccount)).Methods(http.MethodPost)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}

// Router exposes the handler tree for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) Start() error {
	logger.Info("HTTP server listening", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
