package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"skyline-ingest/internal/domain/entity"
	"skyline-ingest/internal/domain/repository"
	"skyline-ingest/pkg/logger"
)

// collectionKey names the record sequence inside the persisted document. All
// writes use this wrapper shape; loading also accepts a legacy bare array.
const collectionKey = "flightTicketScan"

// ticketDocument is the on-disk container shape.
type ticketDocument struct {
	FlightTicketScan []entity.FlightTicketRecord `json:"flightTicketScan"`
}

// FileTicketRepository persists the ticket collection as an indented JSON
// document. Appends follow a read-modify-append-write discipline serialized
// by an internal mutex.
type FileTicketRepository struct {
	path   string
	mu     sync.Mutex
	logger logger.Logger
}

// NewFileTicketRepository creates a file-backed ticket repository.
func NewFileTicketRepository(path string, logger logger.Logger) repository.TicketRepository {
	return &FileTicketRepository{
		path:   path,
		logger: logger,
	}
}

// Append loads the current collection, appends the record and writes the
// whole document back. A write failure is surfaced to the caller; it is the
// one hard failure of the ingestion pipeline.
func (r *FileTicketRepository) Append(ctx context.Context, record *entity.FlightTicketRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return fmt.Errorf("failed to load ticket collection: %w", err)
	}

	records = append(records, *record)

	if err := r.write(records); err != nil {
		return fmt.Errorf("failed to persist ticket collection: %w", err)
	}

	r.logger.Info("Appended ticket record", "path", r.path, "count", len(records))
	return nil
}

// FindAll returns the persisted collection in append order.
func (r *FileTicketRepository) FindAll(ctx context.Context) ([]entity.FlightTicketRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// load reads the collection, accepting both the wrapper document and the
// legacy bare-array shape. A missing file is an empty collection.
func (r *FileTicketRepository) load() ([]entity.FlightTicketRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var doc ticketDocument
	if err := json.Unmarshal(data, &doc); err == nil && doc.FlightTicketScan != nil {
		return doc.FlightTicketScan, nil
	}

	var legacy []entity.FlightTicketRecord
	if err := json.Unmarshal(data, &legacy); err == nil {
		return legacy, nil
	}

	return nil, fmt.Errorf("unrecognized ticket collection shape in %s", r.path)
}

func (r *FileTicketRepository) write(records []entity.FlightTicketRecord) error {
	if records == nil {
		records = []entity.FlightTicketRecord{}
	}

	data, err := json.MarshalIndent(ticketDocument{FlightTicketScan: records}, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(r.path, data, 0o644)
}
