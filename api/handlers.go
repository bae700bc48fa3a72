/*
handlers.go - HTTP API handlers for the cash-flow planning dashboard

PURPOSE:
  Exposes the plan document and the projection engine via REST. Handles
  HTTP request/response and JSON; all computation is delegated to the
  forecast and supply packages.

ENDPOINTS:
  Plan document:
    GET    /api/plan               Pull the current document
    PUT    /api/plan               Push a replacement (rev-checked)

  Projections:
    GET    /api/forecast           Flat balance series
    GET    /api/forecast/hybrid    Table rows with locked actuals

  Reference:
    GET    /api/leadtime           Resolve a SKU/supplier lead time
    GET    /api/config             Client sync configuration

  Dev:
    POST   /api/seed               Load the demo plan

REQUEST FLOW:
  1. Parse HTTP request
  2. Load the document (a missing document degrades to an empty plan
     for the projection endpoints - they always produce a result)
  3. Call domain logic
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed request body
  - 404: No plan document saved yet (pull only)
  - 409: Revision conflict on push
  - 500: Store failures

SECURITY NOTE:
  Single-tenant deployment behind the owner's reverse proxy; no
  authentication here by design.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - seed.go: Demo plan payload
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/warp/cashplan/config"
	"github.com/warp/cashplan/document"
	"github.com/warp/cashplan/forecast"
	"github.com/warp/cashplan/supply"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  document.Store
	Config *config.Config
}

// NewHandler creates a handler backed by the given document store.
func NewHandler(store document.Store, cfg *config.Config) *Handler {
	return &Handler{Store: store, Config: cfg}
}

// =============================================================================
// PLAN DOCUMENT HANDLERS
// =============================================================================

// GetPlan returns the full versioned document.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Store.Load(r.Context())
	if errors.Is(err, document.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no plan saved yet")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// SavePlan replaces the document if the client's revision is current.
func (h *Handler) SavePlan(w http.ResponseWriter, r *http.Request) {
	var req SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Data) == 0 {
		respondError(w, http.StatusBadRequest, "data payload is required")
		return
	}

	doc, err := h.Store.Save(r.Context(), req.Data, req.Rev)
	if errors.Is(err, document.ErrRevConflict) {
		respondError(w, http.StatusConflict, "plan was modified by another client; pull and retry")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// =============================================================================
// PROJECTION HANDLERS
// =============================================================================

// GetForecast returns the flat balance series for the stored plan.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshot(r)
	respondJSON(w, http.StatusOK, toSeriesDTO(forecast.BuildSeries(snap)))
}

// GetHybridForecast returns table rows with locked actuals applied.
func (h *Handler) GetHybridForecast(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshot(r)
	respondJSON(w, http.StatusOK, toPointDTOs(forecast.BuildHybridFromSnapshot(snap)))
}

// loadSnapshot unwraps the stored document into a Snapshot. A missing
// or unreadable document degrades to an empty snapshot so projection
// endpoints always answer.
func (h *Handler) loadSnapshot(r *http.Request) forecast.Snapshot {
	var snap forecast.Snapshot

	doc, err := h.Store.Load(r.Context())
	if err != nil {
		if !errors.Is(err, document.ErrNotFound) {
			log.Printf("[API] Falling back to empty plan: %v", err)
		}
		return snap
	}
	if err := json.Unmarshal(doc.Data, &snap); err != nil {
		log.Printf("[API] Stored plan payload unreadable, using empty plan: %v", err)
		return forecast.Snapshot{}
	}
	return snap
}

// =============================================================================
// REFERENCE HANDLERS
// =============================================================================

// GetLeadTime resolves the lead time for ?sku=&supplier=.
// Resolution never fails; an unmatched pair reports source "missing".
func (h *Handler) GetLeadTime(w http.ResponseWriter, r *http.Request) {
	sku := r.URL.Query().Get("sku")
	supplierID := r.URL.Query().Get("supplier")

	snap := h.loadSnapshot(r)
	res := supply.ResolveLeadTime(sku, supplierID, snap.Catalog())
	respondJSON(w, http.StatusOK, toLeadTimeDTO(res))
}

// GetClientConfig returns the sync tuning values for the frontend.
func (h *Handler) GetClientConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ClientConfigDTO{
		SchemaVersion:       document.CurrentSchemaVersion,
		SyncIntervalMs:      h.Config.SyncInterval.Milliseconds(),
		HeartbeatIntervalMs: h.Config.HeartbeatInterval.Milliseconds(),
	})
}

// SeedDemo replaces the stored plan with the demo dataset.
func (h *Handler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	payload, err := json.Marshal(demoPlan())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Read-rev and save are two store calls; a client saving in between
	// surfaces as a rev conflict. Retry once with the fresh rev, then
	// report the conflict like SavePlan does.
	for attempt := 0; attempt < 2; attempt++ {
		currentRev := ""
		if doc, err := h.Store.Load(r.Context()); err == nil {
			currentRev = doc.Rev
		}

		doc, err := h.Store.Save(r.Context(), payload, currentRev)
		if errors.Is(err, document.ErrRevConflict) {
			continue
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, doc)
		return
	}
	respondError(w, http.StatusConflict, "plan was modified while seeding; retry")
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}
