package progress

import (
	"errors"
	"net/http"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/progress/consistency", handler.HandleConsistency).Methods("GET", "OPTIONS").Name("progress-consistency")
	r.HandleFunc("/progress/volume", handler.HandleVolume).Methods("GET", "OPTIONS").Name("progress-volume")
	r.HandleFunc("/progress/muscles", handler.HandleMuscles).Methods("GET", "OPTIONS").Name("progress-muscles")
	r.HandleFunc("/progress/pbs", handler.HandlePersonalBests).Methods("GET", "OPTIONS").Name("progress-pbs")
}

func (handler *Handler) HandleConsistency(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.consistency")
	defer span.End()

	tr := ParseTimeRange(r.URL.Query().Get("range"))
	span.SetAttributes(attribute.String("progress.range", string(tr)))

	days, err := handler.service.Consistency(ctx, auth.UserID(ctx), tr)
	if err != nil {
		log.Errorf("progress consistency [%s]: %s", tr, err)
		http.Error(w, "failed to get consistency", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, days, http.StatusOK)
}

func (handler *Handler) HandleVolume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.volume")
	defer span.End()

	tr := ParseTimeRange(r.URL.Query().Get("range"))
	span.SetAttributes(attribute.String("progress.range", string(tr)))

	days, err := handler.service.Volume(ctx, auth.UserID(ctx), tr)
	if err != nil {
		log.Errorf("progress volume [%s]: %s", tr, err)
		http.Error(w, "failed to get volume", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, days, http.StatusOK)
}

func (handler *Handler) HandleMuscles(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.muscles")
	defer span.End()

	tr := ParseTimeRange(r.URL.Query().Get("range"))
	span.SetAttributes(attribute.String("progress.range", string(tr)))

	muscles, err := handler.service.MuscleDistribution(ctx, auth.UserID(ctx), tr)
	if err != nil {
		log.Errorf("progress muscles [%s]: %s", tr, err)
		http.Error(w, "failed to get muscle distribution", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, muscles, http.StatusOK)
}

func (handler *Handler) HandlePersonalBests(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.pbs")
	defer span.End()

	exerciseIDs := pkg.SplitQueryValues(r.URL.Query()["exerciseIds"])
	pbs, err := handler.service.PersonalBests(ctx, auth.UserID(ctx), exerciseIDs)
	if errors.Is(err, ErrNoExerciseIDs) {
		http.Error(w, "exerciseIds not set", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("progress pbs %v: %s", exerciseIDs, err)
		http.Error(w, "failed to get personal bests", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, pbs, http.StatusOK)
}
