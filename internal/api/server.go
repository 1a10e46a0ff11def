package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nuptial/flightcast/internal/engine"
	"github.com/nuptial/flightcast/internal/metrics"
	"github.com/nuptial/flightcast/internal/models"
	"github.com/nuptial/flightcast/internal/outlook"
	"github.com/nuptial/flightcast/internal/store"
)

const defaultConfidence = 0.7

type Server struct {
	store        *store.Store
	engine       *engine.Engine
	port         string
	outlookGen   *outlook.Generator
	outlookCache *outlook.Cache
}

func NewServer(st *store.Store, eng *engine.Engine, port string) *Server {
	// Outlook generation is optional - may not have an API key.
	var gen *outlook.Generator
	if g, err := outlook.NewGenerator(); err != nil {
		log.Printf("Outlook generation disabled: %v", err)
	} else {
		gen = g
	}

	return &Server{
		store:        st,
		engine:       eng,
		port:         port,
		outlookGen:   gen,
		outlookCache: outlook.NewCache("data/outlooks"),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/forecast", s.handleForecast)
	mux.HandleFunc("/api/sightings", s.handleSightings)
	mux.HandleFunc("/api/outlook", s.handleOutlook)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ForecastResponse is the /api/forecast payload: the engine result plus the
// request location.
type ForecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	*engine.Result
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		metrics.ForecastRequests.WithLabelValues("client_error").Inc()
		writeError(w, http.StatusBadRequest, "lat is required and must be numeric")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		metrics.ForecastRequests.WithLabelValues("client_error").Inc()
		writeError(w, http.StatusBadRequest, "lon is required and must be numeric")
		return
	}

	days := engine.DefaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}

	result, err := s.engine.Forecast(r.Context(), lat, lon, days)
	if err != nil {
		metrics.ForecastRequests.WithLabelValues("error").Inc()
		log.Printf("forecast: %v", err)
		writeError(w, http.StatusInternalServerError, "forecast failed")
		return
	}
	metrics.ForecastRequests.WithLabelValues("ok").Inc()

	if result.Notice != nil {
		w.Header().Set("X-Forecast-Days-Requested", strconv.Itoa(result.Notice.RequestedDays))
		w.Header().Set("X-Forecast-Days-Applied", strconv.Itoa(result.Notice.AppliedDays))
	}
	writeJSON(w, http.StatusOK, ForecastResponse{Latitude: lat, Longitude: lon, Result: result})
}

func (s *Server) handleSightings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listSightings(w)
	case http.MethodPost:
		s.createSighting(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listSightings(w http.ResponseWriter) {
	sightings, err := s.store.ListSightings()
	if err != nil {
		log.Printf("sightings: list: %v", err)
		writeError(w, http.StatusInternalServerError, "listing failed")
		return
	}
	if sightings == nil {
		sightings = []models.Sighting{}
	}
	writeJSON(w, http.StatusOK, sightings)
}

type sightingRequest struct {
	ObservedAt *time.Time `json:"observed_at"`
	Latitude   *float64   `json:"latitude"`
	Longitude  *float64   `json:"longitude"`
	Genus      string     `json:"genus"`
	Species    string     `json:"species"`
	Confidence *float64   `json:"confidence"`
}

func (s *Server) createSighting(w http.ResponseWriter, r *http.Request) {
	var req sightingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, http.StatusBadRequest, "latitude and longitude are required and must be numeric")
		return
	}

	confidence := defaultConfidence
	if req.Confidence != nil {
		if *req.Confidence < 0 || *req.Confidence > 1 {
			writeError(w, http.StatusBadRequest, "confidence must be within [0,1]")
			return
		}
		confidence = *req.Confidence
	}

	observedAt := time.Now().UTC()
	if req.ObservedAt != nil {
		observedAt = req.ObservedAt.UTC()
	}

	stored, err := s.store.InsertSighting(models.Sighting{
		ObservedAt: observedAt,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Genus:      req.Genus,
		Species:    req.Species,
		Confidence: confidence,
	})
	if err != nil {
		log.Printf("sightings: insert: %v", err)
		writeError(w, http.StatusInternalServerError, "store failed")
		return
	}

	metrics.SightingsSubmitted.Inc()
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleOutlook(w http.ResponseWriter, r *http.Request) {
	if s.outlookGen == nil {
		writeError(w, http.StatusServiceUnavailable, "outlook generation not configured")
		return
	}

	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "date is required in YYYY-MM-DD form")
		return
	}

	if text, ok := s.outlookCache.Get(date); ok {
		writeJSON(w, http.StatusOK, map[string]string{"date": date, "outlook": text})
		return
	}

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat is required and must be numeric")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lon is required and must be numeric")
		return
	}

	result, err := s.engine.Forecast(r.Context(), lat, lon, engine.MaxDays)
	if err != nil {
		log.Printf("outlook: forecast: %v", err)
		writeError(w, http.StatusInternalServerError, "forecast failed")
		return
	}

	for i, day := range result.Days {
		if day.Date != date {
			continue
		}
		text, err := s.outlookGen.Generate(r.Context(), day, result.Aggregates[i])
		if err != nil {
			log.Printf("outlook: generate: %v", err)
			writeError(w, http.StatusServiceUnavailable, "outlook generation failed")
			return
		}
		if err := s.outlookCache.Set(date, text); err != nil {
			log.Printf("outlook: cache: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]string{"date": date, "outlook": text})
		return
	}

	writeError(w, http.StatusNotFound, "date outside the forecast horizon")
}

type healthStatus struct {
	Status    string `json:"status"`
	Sightings int    `json:"sightings"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountSightings()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthStatus{Status: "error", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, healthStatus{Status: "ok", Sightings: count})
}
