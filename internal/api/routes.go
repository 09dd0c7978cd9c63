package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notion-sheets-sync/internal/store"
	"notion-sheets-sync/internal/sync"
)

type Handler struct {
	syncManager *sync.Manager
	store       store.Store
	authToken   string
}

func NewHandler(manager *sync.Manager, st store.Store, authToken string) *Handler {
	return &Handler{
		syncManager: manager,
		store:       st,
		authToken:   authToken,
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CorsMiddleware)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		r.Post("/sync/notion-to-sheets", h.TriggerNotionToSheets)
		r.Post("/sync/sheets-to-notion", h.TriggerSheetsToNotion)
		r.Get("/sync/status", h.GetSyncStatus)
		r.Get("/sync/stats", h.GetSyncStats)
		r.Get("/sync/runs", h.GetSyncRuns)
	})

	return r
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) TriggerNotionToSheets(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, sync.DirectionNotionToSheets)
}

func (h *Handler) TriggerSheetsToNotion(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, sync.DirectionSheetsToNotion)
}

func (h *Handler) trigger(w http.ResponseWriter, direction sync.Direction) {
	if err := h.syncManager.TriggerSync(direction); err != nil {
		if err == sync.ErrSyncRunning {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "started",
		"direction": string(direction),
	})
}

func (h *Handler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	status := h.syncManager.Status()
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (h *Handler) GetSyncStats(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.syncManager.LastStats())
}

func (h *Handler) GetSyncRuns(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	runs, err := h.store.ListSyncRuns(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []*store.SyncRun{}
	}
	json.NewEncoder(w).Encode(runs)
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Middleware

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")

		if r.Method == "OPTIONS" {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware requires a bearer token when one is configured.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.authToken != "" && r.Header.Get("Authorization") != "Bearer "+h.authToken {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
