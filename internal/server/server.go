// Package server exposes the trip planner over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/voyago/voyago/internal/models"
	"github.com/voyago/voyago/internal/planner"
)

// PlannerService is what the http layer needs from the planning core.
type PlannerService interface {
	Plan(ctx context.Context, freeText string) (models.TripPlan, error)
}

type Server struct {
	Addr      string
	Planner   PlannerService
	ConfigDir string
	SavePlans bool

	limiter *RateLimiter
}

func New(addr string, plannerService PlannerService, configDir string, savePlans bool) *Server {
	return &Server{
		Addr:      addr,
		Planner:   plannerService,
		ConfigDir: configDir,
		SavePlans: savePlans,
		limiter:   NewRateLimiter(5, 1),
	}
}

// Run serves until ctx is done, then drains connections gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Addr,
		Handler:           s.handler(),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
		ReadHeaderTimeout: 2 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		ancli.Okf("serving on: '%v'\n", s.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handler() http.Handler {
	router := httprouter.New()
	router.GET("/health", s.health)
	router.POST("/api/v1/plan", s.limiter.Limit(s.plan))
	router.GET("/api/v1/plans", s.listPlans)
	router.GET("/api/v1/plans/:id", s.getPlan)
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type planRequest struct {
	Query string `json:"query"`
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err))
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing field 'query'"))
		return
	}
	plan, err := s.Planner.Plan(r.Context(), req.Query)
	if err != nil {
		writeError(w, planStatus(err), err)
		return
	}
	if s.SavePlans {
		if _, err := planner.SavePlan(s.ConfigDir, &plan); err != nil {
			ancli.Warnf("failed to save plan: %v\n", err)
		}
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	plans, err := planner.ListPlans(s.ConfigDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if plans == nil {
		plans = []models.TripPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	plan, err := planner.LoadPlan(s.ConfigDir, ps.ByName("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// planStatus maps planning failures onto http statuses: user-addressable
// problems become 422, infrastructure problems 502.
func planStatus(err error) int {
	var budgetErr models.BudgetExceededError
	if errors.As(err, &budgetErr) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, models.ErrNotFound) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		ancli.Errf("failed to encode response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
