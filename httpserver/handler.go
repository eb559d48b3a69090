package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
	"github.com/ruteri/weblogic-domain-provisioner/layout"
	"github.com/ruteri/weblogic-domain-provisioner/params"
	"github.com/ruteri/weblogic-domain-provisioner/provisioner"
	"go.uber.org/atomic"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// Provisioner is the part of provisioner.Provisioner the API drives.
type Provisioner interface {
	Provision(ctx context.Context, op interfaces.Operation, lookup params.LookupFunc) error
	Status() provisioner.Status
}

// ProvisionerFactory returns a fresh provisioner for one run of op with the inputs of lookup.
type ProvisionerFactory func(op interfaces.Operation, lookup params.LookupFunc) (Provisioner, error)

// RunStatus is the JSON view of the latest run.
type RunStatus struct {
	RunID      string     `json:"run_id"`
	Operation  string     `json:"operation"`
	Running    bool       `json:"running"`
	State      string     `json:"state"`
	Completed  []string   `json:"completed"`
	FailedStep string     `json:"failed_step,omitempty"`
	ManifestID string     `json:"manifest_id,omitempty"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// LayoutResponse is the JSON view of the derived paths of a domain.
type LayoutResponse struct {
	DomainHome        string `json:"domain_home"`
	ApplicationHome   string `json:"application_home"`
	NodeManagerHome   string `json:"node_manager_home"`
	TemplatePath      string `json:"template_path"`
	BootPropertiesDir string `json:"boot_properties_dir"`
	RealmPath         string `json:"realm_path"`
}

type run struct {
	id       uuid.UUID
	op       interfaces.Operation
	prov     Provisioner
	started  time.Time
	finished time.Time
	err      error
}

// Handler serves the provisioning API. At most one run is in flight at any time.
type Handler struct {
	factory ProvisionerFactory
	lookup  params.LookupFunc
	log     *slog.Logger

	busy atomic.Bool
	wg   sync.WaitGroup

	mu     sync.Mutex
	latest *run
	closed bool
}

// NewHandler creates a handler. lookup supplies the inputs that a request does not override.
func NewHandler(factory ProvisionerFactory, lookup params.LookupFunc, log *slog.Logger) *Handler {
	return &Handler{
		factory: factory,
		lookup:  lookup,
		log:     log,
	}
}

// HandleProvision starts a run of the operation named in the URL.
//
// URL format: POST /api/v1/provision/{operation}
//
// The optional request body is a flat JSON object of input names to values that take
// precedence over the configured inputs. The run continues in the background; the
// response carries its id. A request made while another run is in flight gets 409.
func (h *Handler) HandleProvision(w http.ResponseWriter, r *http.Request) {
	op, err := interfaces.ParseOperation(chi.URLParam(r, "operation"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	overrides, err := readOverrides(r)
	if err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !h.busy.CompareAndSwap(false, true) {
		http.Error(w, "A provisioning run is already in progress", http.StatusConflict)
		return
	}
	if !h.begin() {
		h.busy.Store(false)
		http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
		return
	}

	lookup := params.ChainLookup(params.MapLookup(overrides), h.lookup)
	prov, err := h.factory(op, lookup)
	if err != nil {
		h.end()
		if errors.Is(err, interfaces.ErrMissingParameter) || errors.Is(err, interfaces.ErrInvalidParameter) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.log.Error("Failed to create provisioner", "operation", op, "err", err)
		http.Error(w, "Failed to create provisioner", http.StatusInternalServerError)
		return
	}

	rn := &run{id: uuid.New(), op: op, prov: prov, started: time.Now().UTC()}
	h.mu.Lock()
	h.latest = rn
	h.mu.Unlock()

	log := h.log.With("runID", rn.id.String(), "operation", string(op))
	ctx := context.WithoutCancel(r.Context())

	go func() {
		defer h.end()

		log.Info("Provisioning run started")
		err := prov.Provision(ctx, op, lookup)

		h.mu.Lock()
		rn.err = err
		rn.finished = time.Now().UTC()
		h.mu.Unlock()

		if err != nil {
			log.Error("Provisioning run failed", "err", err)
			return
		}
		log.Info("Provisioning run finished")
	}()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/api/v1/status")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"run_id":    rn.id.String(),
		"operation": string(op),
	})
}

// HandleStatus reports the latest run. Returns 404 before the first run.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	rn := h.latest
	var status RunStatus
	if rn != nil {
		status = RunStatus{
			RunID:     rn.id.String(),
			Operation: string(rn.op),
			Running:   rn.finished.IsZero(),
			StartedAt: rn.started,
		}
		if !rn.finished.IsZero() {
			finished := rn.finished
			status.FinishedAt = &finished
		}
		if rn.err != nil {
			status.Error = rn.err.Error()
			var stepErr *provisioner.StepError
			if errors.As(rn.err, &stepErr) {
				status.FailedStep = stepErr.Step
			}
		}
	}
	h.mu.Unlock()

	if rn == nil {
		http.Error(w, "No provisioning run yet", http.StatusNotFound)
		return
	}

	ps := rn.prov.Status()
	status.State = ps.State.String()
	status.Completed = ps.Completed
	status.ManifestID = ps.ManifestID

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

// HandleLayout returns the paths derived from the configured inputs.
func (h *Handler) HandleLayout(w http.ResponseWriter, r *http.Request) {
	ps, err := params.Resolve(interfaces.OperationRelayout, h.lookup)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	paths := layout.Build(ps)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(LayoutResponse{
		DomainHome:        paths.DomainHome,
		ApplicationHome:   paths.ApplicationHome,
		NodeManagerHome:   paths.NodeManagerHome,
		TemplatePath:      paths.TemplatePath,
		BootPropertiesDir: paths.BootPropertiesDir,
		RealmPath:         interfaces.RealmPath(ps.DomainName, interfaces.DefaultRealm),
	})
}

// Wait blocks until the run in flight, if any, has finished.
func (h *Handler) Wait() {
	h.wg.Wait()
}

// Close stops accepting runs and waits for the run in flight.
func (h *Handler) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.wg.Wait()
}

// begin registers a run unless the handler is closed. The caller holds the busy guard.
func (h *Handler) begin() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.wg.Add(1)
	return true
}

func (h *Handler) end() {
	h.busy.Store(false)
	h.wg.Done()
}

func readOverrides(r *http.Request) (map[string]string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	overrides := map[string]string{}
	if len(body) == 0 {
		return overrides, nil
	}
	if err := json.Unmarshal(body, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}
