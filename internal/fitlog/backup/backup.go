package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/2beens/fitlog/internal/fitlog/entries"
	"github.com/2beens/fitlog/internal/fitlog/types"
	"github.com/2beens/fitlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DocumentVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported backup version")

// Document is the on-disk backup format: the full type catalog and every
// entry, with enough metadata to recognize a dump later.
type Document struct {
	Version        int                    `json:"version"`
	ID             string                 `json:"id"`
	CreatedAt      time.Time              `json:"createdAt"`
	WorkoutTypes   []types.WorkoutType    `json:"workoutTypes"`
	WorkoutEntries []entries.WorkoutEntry `json:"workoutEntries"`
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=backup_test

type entriesRepo interface {
	ListAll(ctx context.Context) ([]entries.WorkoutEntry, error)
	Add(ctx context.Context, entry entries.WorkoutEntry) (*entries.WorkoutEntry, error)
}

type typesRepo interface {
	ListAll(ctx context.Context) ([]types.WorkoutType, error)
	Add(ctx context.Context, workoutType types.WorkoutType) (*types.WorkoutType, error)
}

type Codec struct {
	entriesRepo entriesRepo
	typesRepo   typesRepo
}

func NewCodec(entriesRepo entriesRepo, typesRepo typesRepo) *Codec {
	return &Codec{
		entriesRepo: entriesRepo,
		typesRepo:   typesRepo,
	}
}

// Dump writes the whole store as an indented JSON document.
func (c *Codec) Dump(ctx context.Context, w io.Writer) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.dump")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workoutTypes, err := c.typesRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list workout types: %w", err)
	}
	workoutEntries, err := c.entriesRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	doc := Document{
		Version:        DocumentVersion,
		ID:             uuid.NewString(),
		CreatedAt:      time.Now(),
		WorkoutTypes:   workoutTypes,
		WorkoutEntries: workoutEntries,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode backup document: %w", err)
	}

	log.Debugf("backup %s dumped: %d types, %d entries", doc.ID, len(workoutTypes), len(workoutEntries))
	return nil
}

// RestoreResult summarizes what a restore run actually wrote.
type RestoreResult struct {
	TypesRestored   int
	EntriesRestored int
	EntriesSkipped  int
}

// Restore reads a backup document and inserts its contents into the store.
// The store assigns fresh ids, so entry type references are remapped from
// the dumped type ids to the newly assigned ones. Entries whose type id is
// not present in the dump are skipped, a dump with orphans should not
// poison the restored store.
func (c *Codec) Restore(ctx context.Context, r io.Reader) (_ *RestoreResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.restore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode backup document: %w", err)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	result := &RestoreResult{}

	typeIDMap := make(map[int]int, len(doc.WorkoutTypes))
	for _, workoutType := range doc.WorkoutTypes {
		dumpedID := workoutType.ID
		added, err := c.typesRepo.Add(ctx, workoutType)
		if err != nil {
			return nil, fmt.Errorf("restore workout type %q: %w", workoutType.Name, err)
		}
		typeIDMap[dumpedID] = added.ID
		result.TypesRestored++
	}

	for _, entry := range doc.WorkoutEntries {
		newTypeID, ok := typeIDMap[entry.WorkoutTypeID]
		if !ok {
			log.Errorf(
				"restore: entry %d references unknown workout type %d, skipping",
				entry.ID, entry.WorkoutTypeID,
			)
			result.EntriesSkipped++
			continue
		}

		entry.WorkoutTypeID = newTypeID
		if _, err := c.entriesRepo.Add(ctx, entry); err != nil {
			return nil, fmt.Errorf("restore entry on %s: %w", entry.Date.Format(time.DateOnly), err)
		}
		result.EntriesRestored++
	}

	log.Debugf(
		"backup %s restored: %d types, %d entries, %d skipped",
		doc.ID, result.TypesRestored, result.EntriesRestored, result.EntriesSkipped,
	)
	return result, nil
}
