package devtools

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/hookrt/internal/errors"
	"github.com/vango-dev/hookrt/pkg/hooks"
)

// maxActionBody limits the argument of an action request.
const maxActionBody = 64 << 10

type errorResponse struct {
	Code       string `json:"code,omitempty"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

type actionResponse struct {
	Instance hooks.Snapshot `json:"instance"`
}

// Router returns the HTTP handler of the inspector.
func (i *Inspector) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/instances", i.handleInstances)
	r.Get("/instances/{id}", i.handleInstance)
	r.Post("/instances/{id}/actions/{action}", i.handleAction)
	r.Get("/cycles", i.handleCycles)
	r.Get("/ws", i.feed.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(i.gatherer, promhttp.HandlerOpts{}))

	return r
}

func (i *Inspector) handleInstances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, i.Instances())
}

func (i *Inspector) handleInstance(w http.ResponseWriter, r *http.Request) {
	t, err := i.Target(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, t.Snapshot())
}

func (i *Inspector) handleAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := i.Target(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxActionBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := i.Act(r.Context(), id, chi.URLParam(r, "action"), string(body)); err != nil {
		status := http.StatusConflict
		if hooks.ErrorCode(err) == "H120" {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{Instance: t.Snapshot()})
}

func (i *Inspector) handleCycles(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, stderrors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, i.history.Recent(limit))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var he *errors.HookError
	if stderrors.As(err, &he) {
		resp.Code = he.Code
		resp.Suggestion = he.Suggestion
	}
	writeJSON(w, status, resp)
}

// Serve serves the inspector on addr until ctx is done.
func (i *Inspector) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           i.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		i.logger.Info("inspector listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	i.feed.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
