// Package web exposes the lifecycle operations and raw collection reads to
// the admin console as a small JSON API.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
	"github.com/fivetwenty-io/capi-admin/internal/varz"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// Snapshotter exposes the runtime-state snapshot for display.
type Snapshotter interface {
	Snapshot() map[capi.AppKey]varz.AppStatus
}

// Option configures the router.
type Option func(*routerConfig)

type routerConfig struct {
	middlewares []func(http.Handler) http.Handler
	snapshot    Snapshotter
}

// WithMiddlewares adds middleware after the built-in request id and recoverer.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithSnapshot enables GET /applications.
func WithSnapshot(snapshot Snapshotter) Option {
	return func(cfg *routerConfig) {
		cfg.snapshot = snapshot
	}
}

// Routes holds the handler dependencies.
type Routes struct {
	ops      capi.Operations
	client   capi.ResourceClient
	snapshot Snapshotter
	logger   capi.Logger
}

// NewRouter builds the console API.
func NewRouter(ops capi.Operations, client capi.ResourceClient, logger capi.Logger, opts ...Option) *chi.Mux {
	cfg := &routerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	routes := &Routes{
		ops:      ops,
		client:   client,
		snapshot: cfg.snapshot,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	r.Get("/health", routes.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/resources", routes.listResources)
	r.Put("/applications/{org}/{space}/{app}", routes.manageApplication)
	r.Delete("/routes/{route}", routes.deleteRoute)

	if routes.snapshot != nil {
		r.Get("/applications", routes.listApplications)
	}

	return r
}

type stateRequest struct {
	State string `json:"state"`
}

type resourcesResponse struct {
	TotalResults int               `json:"total_results"`
	Resources    []json.RawMessage `json:"resources"`
}

type applicationStatus struct {
	capi.AppKey
	varz.AppStatus
}

func (routes *Routes) health(w http.ResponseWriter, _ *http.Request) {
	WriteJSONResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// manageApplication handles PUT /applications/{org}/{space}/{app}.
func (routes *Routes) manageApplication(w http.ResponseWriter, r *http.Request) {
	var req stateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	command, err := commandForState(req.State)
	if err != nil {
		WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := routes.ops.ManageApplication(r.Context(), command,
		chi.URLParam(r, "org"), chi.URLParam(r, "space"), chi.URLParam(r, "app"))
	routes.respond(w, r, result, err)
}

// deleteRoute handles DELETE /routes/{route}, where route is host.domain.
func (routes *Routes) deleteRoute(w http.ResponseWriter, r *http.Request) {
	route := strings.TrimSpace(chi.URLParam(r, "route"))
	if route == "" {
		WriteErrorResponse(w, "route cannot be empty", http.StatusBadRequest)
		return
	}

	result, err := routes.ops.ManageRoute(r.Context(), capi.CommandDelete, route)
	routes.respond(w, r, result, err)
}

// listResources handles GET /resources?path=v2/apps[&identity=true].
func (routes *Routes) listResources(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		WriteErrorResponse(w, "path query parameter is required", http.StatusBadRequest)
		return
	}

	identity := false

	if raw := r.URL.Query().Get("identity"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			WriteErrorResponse(w, "invalid identity parameter: must be a boolean", http.StatusBadRequest)
			return
		}

		identity = parsed
	}

	list := routes.client.List
	if identity {
		list = routes.client.ListIdentity
	}

	records, err := list(r.Context(), path)
	if err != nil {
		routes.logError(r, "Listing resources failed", err)
		writeOperationError(w, err)

		return
	}

	if records == nil {
		records = []json.RawMessage{}
	}

	WriteJSONResponse(w, resourcesResponse{TotalResults: len(records), Resources: records}, http.StatusOK)
}

// listApplications handles GET /applications.
func (routes *Routes) listApplications(w http.ResponseWriter, _ *http.Request) {
	snapshot := routes.snapshot.Snapshot()

	apps := make([]applicationStatus, 0, len(snapshot))
	for key, status := range snapshot {
		apps = append(apps, applicationStatus{AppKey: key, AppStatus: status})
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].AppKey.String() < apps[j].AppKey.String()
	})

	WriteJSONResponse(w, apps, http.StatusOK)
}

func (routes *Routes) respond(w http.ResponseWriter, r *http.Request, result *capi.Result, err error) {
	if err != nil && result == nil {
		routes.logError(r, "Operation failed", err)
		writeOperationError(w, err)

		return
	}

	writeResult(w, result)
}

func (routes *Routes) logError(r *http.Request, msg string, err error) {
	if routes.logger != nil {
		routes.logger.Error(msg, map[string]interface{}{
			"path":       r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
			"error":      err.Error(),
		})
	}
}

// commandForState accepts either a target state or a command name.
func commandForState(state string) (capi.Command, error) {
	switch strings.ToUpper(strings.TrimSpace(state)) {
	case constants.AppStateStarted:
		return capi.CommandStart, nil
	case constants.AppStateStopped:
		return capi.CommandStop, nil
	case "":
		return "", fmt.Errorf("%w: state is required", capi.ErrUnsupportedCommand)
	}

	command, err := capi.ParseCommand(state)
	if err != nil {
		return "", err
	}

	if command == capi.CommandDelete {
		return "", fmt.Errorf("%w %q for applications", capi.ErrUnsupportedCommand, command)
	}

	return command, nil
}
