package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/eugenenazirov/webui-harness/internal/config"
	"github.com/eugenenazirov/webui-harness/internal/properties"
	"github.com/eugenenazirov/webui-harness/internal/suite"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// maxPropertiesBody bounds the PUT /api/properties payload.
const maxPropertiesBody = 1 << 20

// Properties is the property registry served by the handler.
type Properties interface {
	Lookup(key string) (string, bool)
	Snapshot() properties.Properties
	Extend(src properties.Properties)
	Len() int
}

// Handler exposes the merged properties and the registered suites over HTTP.
type Handler struct {
	props  Properties
	suites []suite.Suite

	clock func() time.Time

	mu        sync.RWMutex
	updatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithSuites lists suites on GET /api/suites.
func WithSuites(suites ...suite.Suite) HandlerOption {
	return func(h *Handler) {
		h.suites = suites
	}
}

// NewHandler constructs a Handler serving props.
func NewHandler(props Properties, opts ...HandlerOption) *Handler {
	h := &Handler{
		props: props,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.updatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Timestamp:  h.clock(),
		Properties: h.props.Len(),
	})
}

func (h *Handler) handleListProperties(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.listResponse(""))
}

func (h *Handler) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	value, ok := h.props.Lookup(key)
	if !ok {
		err := fmt.Errorf("%w: expected the '%s' property to be present and not null", config.ErrMissingProperty, key)
		writeError(w, http.StatusNotFound, "Property not found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, propertyEntry{Key: key, Value: value})
}

func (h *Handler) handlePutProperties(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPropertiesBody)

	var req propertiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request too large",
				fmt.Sprintf("payload must not exceed %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Properties) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid properties", "properties must contain at least one entry")
		return
	}
	for key := range req.Properties {
		if strings.TrimSpace(key) == "" {
			writeError(w, http.StatusBadRequest, "Invalid properties", "property keys must not be empty")
			return
		}
	}

	h.props.Extend(properties.Properties(req.Properties))
	h.markUpdated()

	writeJSON(w, http.StatusOK, h.listResponse("Properties updated successfully"))
}

func (h *Handler) handleListSuites(w http.ResponseWriter, _ *http.Request) {
	resp := suitesResponse{Suites: make([]suiteEntry, 0, len(h.suites))}
	for _, s := range h.suites {
		entry := suiteEntry{Name: s.Name, Cases: make([]caseEntry, 0, len(s.Cases))}
		for _, c := range s.Ordered() {
			entry.Cases = append(entry.Cases, caseEntry{Name: c.Name, Priority: c.Priority})
		}
		resp.Suites = append(resp.Suites, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

// listResponse renders every property in key order with long values truncated.
func (h *Handler) listResponse(message string) propertiesResponse {
	snapshot := h.props.Snapshot()
	entries := make([]propertyEntry, 0, len(snapshot))
	for _, key := range snapshot.Keys() {
		entries = append(entries, propertyEntry{Key: key, Value: config.Truncate(snapshot[key])})
	}
	return propertiesResponse{
		Properties: entries,
		Count:      len(entries),
		UpdatedAt:  h.currentUpdatedAt(),
		Message:    message,
	}
}

func (h *Handler) currentUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.updatedAt
}

func (h *Handler) markUpdated() {
	h.mu.Lock()
	h.updatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type propertiesRequest struct {
	Properties map[string]string `json:"properties"`
}

type propertyEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type propertiesResponse struct {
	Properties []propertyEntry `json:"properties"`
	Count      int             `json:"count"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Message    string          `json:"message,omitempty"`
}

type caseEntry struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

type suiteEntry struct {
	Name  string      `json:"name"`
	Cases []caseEntry `json:"cases"`
}

type suitesResponse struct {
	Suites []suiteEntry `json:"suites"`
}

type healthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Properties int       `json:"properties"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}
