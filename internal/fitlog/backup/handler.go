package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	codec          *Codec
	metricsManager *metrics.Manager
}

func NewHandler(codec *Codec, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		codec:          codec,
		metricsManager: metricsManager,
	}
}

// HandleDump streams the whole store as a downloadable JSON document.
func (handler *Handler) HandleDump(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.backup.dump")
	defer span.End()

	var buf bytes.Buffer
	if err := handler.codec.Dump(ctx, &buf); err != nil {
		log.Errorf("backup dump: %s", err)
		http.Error(w, "backup failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterBackupsCreated.Inc()

	filename := fmt.Sprintf("fitlog-backup-%s.json", time.Now().Format(time.DateOnly))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, buf.Bytes())
}

// HandleRestore ingests a previously dumped document. Types and entries get
// fresh ids, restoring into a non-empty store duplicates nothing implicitly,
// the caller decides whether to wipe first.
func (handler *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.backup.restore")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	result, err := handler.codec.Restore(ctx, r.Body)
	if err != nil {
		if errors.Is(err, ErrUnsupportedVersion) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("backup restore: %s", err)
		http.Error(w, "restore failed", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(RestoreResponse{
		TypesRestored:   result.TypesRestored,
		EntriesRestored: result.EntriesRestored,
		EntriesSkipped:  result.EntriesSkipped,
	})
	if err != nil {
		log.Errorf("marshal restore response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resultJson)
}

type RestoreResponse struct {
	TypesRestored   int `json:"typesRestored"`
	EntriesRestored int `json:"entriesRestored"`
	EntriesSkipped  int `json:"entriesSkipped"`
}
