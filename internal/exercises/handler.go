package exercises

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type SearchMeta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

type SearchResponse struct {
	Data []Exercise `json:"data"`
	Meta SearchMeta `json:"meta"`
}

type FacetResponse struct {
	Data []string `json:"data"`
}

type DeleteExerciseResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the exercise routes. Search is rate limited per user when a
// rate limiter is given.
func (handler *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	searchAllowedPerMin int,
) {
	var search http.Handler = http.HandlerFunc(handler.HandleSearch)
	if rateLimiter != nil {
		search = middleware.RateLimit(rateLimiter, metricsManager, "search-exercises", searchAllowedPerMin)(search)
	}

	r.Handle("/exercises/search", search).Methods("GET", "OPTIONS").Name("search-exercises")
	r.HandleFunc("/exercises/muscles", handler.HandleMuscles).Methods("GET", "OPTIONS").Name("list-muscles")
	r.HandleFunc("/exercises/categories", handler.HandleCategories).Methods("GET", "OPTIONS").Name("list-categories")
	r.HandleFunc("/exercises/equipment", handler.HandleEquipment).Methods("GET", "OPTIONS").Name("list-equipment")
	r.HandleFunc("/exercises", handler.HandleCreate).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
	r.HandleFunc("/exercises/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-exercise")
	r.HandleFunc("/exercises/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")
}

// SearchParamsFromQuery reads the search parameters from the URL query. Limit and
// offset are advisory: unparsable values fall back to the defaults.
func SearchParamsFromQuery(r *http.Request) SearchParams {
	query := r.URL.Query()
	return SearchParams{
		Query: query.Get("q"),
		Filters: Filters{
			Muscles:   pkg.SplitQueryValues(query["muscle"]),
			Category:  query.Get("category"),
			Equipment: query.Get("equipment"),
		},
		UserID: auth.UserID(r.Context()),
		Limit:  pkg.IntOrDefault(query.Get("limit"), DefaultLimit),
		Offset: pkg.IntOrDefault(query.Get("offset"), 0),
	}
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.search")
	defer span.End()

	params := SearchParamsFromQuery(r)
	result, err := handler.service.Search(ctx, params)
	if err != nil {
		log.Errorf("search exercises [%s]: %s", params.Query, err)
		http.Error(w, "failed to search exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, SearchResponse{
		Data: result.Exercises,
		Meta: SearchMeta{
			Total:   result.Total,
			Limit:   result.Limit,
			Offset:  result.Offset,
			HasMore: result.HasMore,
		},
	}, http.StatusOK)
}

func (handler *Handler) HandleMuscles(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.muscles")
	defer span.End()

	muscles, err := handler.service.Muscles(ctx)
	if err != nil {
		log.Errorf("list muscles: %s", err)
		http.Error(w, "failed to list muscles", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, FacetResponse{Data: muscles}, http.StatusOK)
}

func (handler *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.categories")
	defer span.End()

	categories, err := handler.service.Categories(ctx)
	if err != nil {
		log.Errorf("list categories: %s", err)
		http.Error(w, "failed to list categories", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, FacetResponse{Data: categories}, http.StatusOK)
}

func (handler *Handler) HandleEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.equipment")
	defer span.End()

	equipment, err := handler.service.Equipment(ctx)
	if err != nil {
		log.Errorf("list equipment: %s", err)
		http.Error(w, "failed to list equipment", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, FacetResponse{Data: equipment}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	exercise, err := handler.service.Get(ctx, auth.UserID(ctx), id)
	if err != nil {
		writeServiceError(w, "get exercise "+id, err)
		return
	}
	pkg.WriteJSON(w, exercise, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.create")
	defer span.End()

	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "invalid exercise", http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(ctx, auth.UserID(ctx), exercise)
	if err != nil {
		writeServiceError(w, "create exercise", err)
		return
	}
	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
	defer span.End()

	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("update exercise, unmarshal json params: %s", err)
		http.Error(w, "invalid exercise", http.StatusBadRequest)
		return
	}
	exercise.ID = mux.Vars(r)["id"]

	updated, err := handler.service.Update(ctx, auth.UserID(ctx), exercise)
	if err != nil {
		writeServiceError(w, "update exercise "+exercise.ID, err)
		return
	}
	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if err := handler.service.Delete(ctx, auth.UserID(ctx), id); err != nil {
		writeServiceError(w, "delete exercise "+id, err)
		return
	}
	pkg.WriteJSON(w, DeleteExerciseResponse{DeletedID: id}, http.StatusOK)
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
	case errors.Is(err, ErrNotOwner):
		http.Error(w, "exercise not owned by user", http.StatusForbidden)
	case errors.Is(err, ErrExerciseInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidExercise):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
