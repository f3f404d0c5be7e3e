package types

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=types_test

type typesRepo interface {
	Add(ctx context.Context, workoutType WorkoutType) (*WorkoutType, error)
	Get(ctx context.Context, id int) (*WorkoutType, error)
	ListAll(ctx context.Context) ([]WorkoutType, error)
	Update(ctx context.Context, workoutType *WorkoutType) error
	Delete(ctx context.Context, id int) error
}

type DeleteTypeResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateTypeResponse struct {
	UpdatedID int `json:"updatedId"`
}

type Handler struct {
	repo typesRepo
}

func NewHandler(repo typesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.types.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workoutType WorkoutType
	if err := json.NewDecoder(r.Body).Decode(&workoutType); err != nil {
		log.Errorf("new workout type, unmarshal json params: %s", err)
		http.Error(w, "add workout type failed", http.StatusBadRequest)
		return
	}

	if workoutType.Name == "" {
		http.Error(w, "error, workout type name empty", http.StatusBadRequest)
		return
	}

	// unknown colors/icons from older clients degrade to the defaults
	workoutType.Color = ParseColor(workoutType.Color.String())
	workoutType.Icon = ParseIcon(workoutType.Icon.String())

	addedType, err := handler.repo.Add(ctx, workoutType)
	if err != nil {
		log.Errorf("failed to add new workout type [%s]: %s", workoutType.Name, err)
		http.Error(w, "error, failed to add new workout type", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout type added: [%s]: %d", addedType.Name, addedType.ID)

	addedTypeJson, err := json.Marshal(addedType)
	if err != nil {
		log.Errorf("failed to marshal new workout type: %s", err)
		http.Error(w, "error, failed to add new workout type", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedTypeJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.types.get")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workoutType, err := handler.repo.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get workout type %d: %s", id, err)
		http.Error(w, "workout type not found", http.StatusNotFound)
		return
	}

	typeJson, err := json.Marshal(workoutType)
	if err != nil {
		log.Errorf("failed to marshal workout type: %s", err)
		http.Error(w, "failed to marshal workout type", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, typeJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.types.list")
	defer span.End()

	workoutTypes, err := handler.repo.ListAll(ctx)
	if err != nil {
		log.Errorf("list workout types error: %s", err)
		http.Error(w, "failed to get workout types", http.StatusInternalServerError)
		return
	}

	typesJson, err := json.Marshal(workoutTypes)
	if err != nil {
		log.Errorf("marshal workout types error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, typesJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.types.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workoutType WorkoutType
	if err := json.NewDecoder(r.Body).Decode(&workoutType); err != nil {
		log.Errorf("update workout type, unmarshal json params: %s", err)
		http.Error(w, "update workout type failed", http.StatusBadRequest)
		return
	}

	if workoutType.ID == 0 || workoutType.Name == "" {
		http.Error(w, "error, workout type id or name empty", http.StatusBadRequest)
		return
	}

	workoutType.Color = ParseColor(workoutType.Color.String())
	workoutType.Icon = ParseIcon(workoutType.Icon.String())

	if err := handler.repo.Update(ctx, &workoutType); err != nil {
		if errors.Is(err, ErrTypeNotFound) {
			http.Error(w, "workout type not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update workout type [%d], [%s]: %s", workoutType.ID, workoutType.Name, err)
		http.Error(w, "error, failed to update workout type", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateTypeResponse{
		UpdatedID: workoutType.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout type updated: [%s]: %d", workoutType.Name, workoutType.ID)
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.types.delete")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTypeNotFound) {
			http.Error(w, "workout type not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout type %d: %s", id, err)
		http.Error(w, "workout type not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteTypeResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func idFromRequest(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		return 0, errors.New("error, id empty")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.New("error, id NaN")
	}
	return id, nil
}
