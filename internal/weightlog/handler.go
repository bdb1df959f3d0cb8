package weightlog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/progress"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/weight", h.HandleAdd).Methods("POST", "OPTIONS").Name("new-weight")
	r.HandleFunc("/weight", h.HandleList).Methods("GET", "OPTIONS").Name("list-weight")
	r.HandleFunc("/weight/latest", h.HandleLatest).Methods("GET", "OPTIONS").Name("latest-weight")
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weightlog.add")
	defer span.End()

	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var wl WeightLog
	if err := json.NewDecoder(r.Body).Decode(&wl); err != nil {
		log.Tracef("new weight log, unmarshal json params: %s", err)
		http.Error(w, "invalid weight log", http.StatusBadRequest)
		return
	}

	added, err := h.service.Add(ctx, auth.UserID(ctx), wl)
	if errors.Is(err, ErrInvalidWeight) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("new weight log: %s", err)
		http.Error(w, "add weight log failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weightlog.list")
	defer span.End()

	tr := progress.ParseTimeRange(r.URL.Query().Get("range"))
	logs, err := h.service.List(ctx, auth.UserID(ctx), tr)
	if err != nil {
		log.Errorf("list weight logs: %s", err)
		http.Error(w, "list weight logs failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, logs, http.StatusOK)
}

func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weightlog.latest")
	defer span.End()

	latest, err := h.service.Latest(ctx, auth.UserID(ctx))
	if errors.Is(err, ErrNoWeightLogs) {
		http.Error(w, "no weight logged", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("latest weight log: %s", err)
		http.Error(w, "get latest weight failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, latest, http.StatusOK)
}
