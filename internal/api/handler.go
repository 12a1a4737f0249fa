package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-registry/internal/registry"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// maxBodyBytes caps the size of a PUT payload.
const maxBodyBytes = 64 << 10

// ErrEmptyKey is returned when a request addresses a blank setting key.
var ErrEmptyKey = errors.New("setting key must not be empty")

// Handler exposes the settings registry over HTTP.
type Handler struct {
	registry registry.Registry
	logger   *zap.Logger
	setLevel func(string)

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

// WithHandlerLogger sets the logger used to record setting changes.
func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithLevelSetter registers fn to be called with the new value whenever
// LOG_LEVEL is updated, so the running logger follows the registry.
func WithLevelSetter(fn func(string)) HandlerOption {
	return func(h *Handler) {
		h.setLevel = fn
	}
}

// NewHandler constructs a Handler backed by reg.
func NewHandler(reg registry.Registry, opts ...HandlerOption) *Handler {
	h := &Handler{
		registry: reg,
		logger:   zap.NewNop(),
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

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListSettings(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := settingsResponse{
		Settings:  registry.Redact(h.registry.All()),
		UpdatedAt: h.lastUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key, err := settingKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid key", err.Error())
		return
	}

	value, ok := h.registry.Get(key)
	if !ok {
		writeError(w, http.StatusNotFound, "Setting not found", "no setting named "+key)
		return
	}

	writeJSON(w, http.StatusOK, newSettingResponse(key, value, ""))
}

func (h *Handler) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	key, err := settingKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid key", err.Error())
		return
	}

	var req settingRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Invalid request", "payload exceeds 64 KiB")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "value is required")
		return
	}

	h.registry.Set(key, *req.Value)
	h.markUpdated()
	if key == registry.KeyLogLevel && h.setLevel != nil {
		h.setLevel(*req.Value)
	}

	h.logger.Info("setting updated",
		zap.String("key", key),
		zap.String("value", registry.MaskValue(key, *req.Value)),
		zap.Bool("default_key", registry.IsDefaultKey(key)),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)

	writeJSON(w, http.StatusOK, newSettingResponse(key, *req.Value, "Setting updated successfully"))
}

func (h *Handler) lastUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.updatedAt
}

func (h *Handler) markUpdated() {
	h.mu.Lock()
	h.updatedAt = h.clock()
	h.mu.Unlock()
}

func settingKey(r *http.Request) (string, error) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func newSettingResponse(key, value, message string) settingResponse {
	return settingResponse{
		Key:     key,
		Value:   registry.MaskValue(key, value),
		Default: registry.IsDefaultKey(key),
		Message: message,
	}
}

type settingRequest struct {
	Value *string `json:"value"`
}

type settingResponse struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Default bool   `json:"default"`
	Message string `json:"message,omitempty"`
}

type settingsResponse struct {
	Settings  map[string]string `json:"settings"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
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
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
