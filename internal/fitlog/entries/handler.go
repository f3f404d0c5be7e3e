package entries

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=entries_test

type entriesRepo interface {
	Add(ctx context.Context, entry WorkoutEntry) (*WorkoutEntry, error)
	Get(ctx context.Context, id int) (*WorkoutEntry, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]WorkoutEntry, error)
	Update(ctx context.Context, entry *WorkoutEntry) error
	Delete(ctx context.Context, id int) error
	CountOnDate(ctx context.Context, date time.Time) (int, error)
}

type AddEntryResponse struct {
	Entry *WorkoutEntry `json:"entry"`
	// Conflict is set when the date already had entries before this save
	Conflict bool `json:"conflict"`
}

type DeleteEntryResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateEntryResponse struct {
	UpdatedID int `json:"updatedId"`
}

type Handler struct {
	repo           entriesRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo entriesRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry WorkoutEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("new entry, unmarshal json params: %s", err)
		http.Error(w, "add entry failed", http.StatusBadRequest)
		return
	}

	if entry.WorkoutTypeID == 0 || entry.Date.IsZero() {
		http.Error(w, "error, entry date or workout type id empty", http.StatusBadRequest)
		return
	}
	if entry.DurationMinutes < 0 || entry.CaloriesBurned < 0 {
		http.Error(w, "error, duration and calories must be non-negative", http.StatusBadRequest)
		return
	}

	// the store permits more than one entry per day, the client
	// just gets a conflict marker to warn the user about it
	countOnDate, err := handler.repo.CountOnDate(ctx, entry.Date)
	if err != nil {
		log.Errorf("failed to check entries on date %s: %s", entry.Date, err)
		http.Error(w, "error, failed to add new entry", http.StatusInternalServerError)
		return
	}

	addedEntry, err := handler.repo.Add(ctx, entry)
	if err != nil {
		log.Errorf("failed to add new entry [type %d]: %s", entry.WorkoutTypeID, err)
		http.Error(w, "error, failed to add new entry", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterEntriesAdded.Inc()
	log.Debugf("new entry added: [type %d] on [%s]: %d", addedEntry.WorkoutTypeID, addedEntry.Date.Format(time.DateOnly), addedEntry.ID)

	respJson, err := json.Marshal(AddEntryResponse{
		Entry:    addedEntry,
		Conflict: countOnDate > 0,
	})
	if err != nil {
		log.Errorf("failed to marshal new entry: %s", err)
		http.Error(w, "error, failed to add new entry", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.get")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := handler.repo.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get entry %d: %s", id, err)
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal entry: %s", err)
		http.Error(w, "failed to marshal entry", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusOK)
}

// HandleListBetween returns entries for an inclusive date range, given as
// from/to query params in YYYY-MM-DD format.
func (handler *Handler) HandleListBetween(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.listbetween")
	defer span.End()

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		http.Error(w, "from and to parameters are required", http.StatusBadRequest)
		return
	}

	from, err := time.Parse(time.DateOnly, fromStr)
	if err != nil {
		http.Error(w, "invalid from format (expected YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	to, err := time.Parse(time.DateOnly, toStr)
	if err != nil {
		http.Error(w, "invalid to format (expected YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	if to.Before(from) {
		http.Error(w, "to date before from date", http.StatusBadRequest)
		return
	}

	workoutEntries, err := handler.repo.ListBetween(ctx, from, to)
	if err != nil {
		log.Errorf("list entries error: %s", err)
		http.Error(w, "failed to get entries", http.StatusInternalServerError)
		return
	}

	entriesJson, err := json.Marshal(workoutEntries)
	if err != nil {
		log.Errorf("marshal entries error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entriesJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry WorkoutEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("update entry, unmarshal json params: %s", err)
		http.Error(w, "update entry failed", http.StatusBadRequest)
		return
	}

	if entry.ID == 0 || entry.WorkoutTypeID == 0 || entry.Date.IsZero() {
		http.Error(w, "error, entry id, date or workout type id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &entry); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update entry [%d]: %s", entry.ID, err)
		http.Error(w, "error, failed to update entry", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateEntryResponse{
		UpdatedID: entry.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	log.Debugf("entry updated: [type %d]: %d", entry.WorkoutTypeID, entry.ID)
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.delete")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete entry %d: %s", id, err)
		http.Error(w, "entry not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteEntryResponse{
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
