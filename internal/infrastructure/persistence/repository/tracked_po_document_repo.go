package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
	"github.com/Jowenthebui/PO-Tracking/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// TrackedPODocumentRepository implements port.TrackedPODocumentRepository
type TrackedPODocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTrackedPODocumentRepository creates a new tracked PO document repository
func NewTrackedPODocumentRepository(db *sql.DB, logger *zap.Logger) *TrackedPODocumentRepository {
	return &TrackedPODocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a document link
func (r *TrackedPODocumentRepository) Create(ctx context.Context, doc *entity.TrackedPODocument) error {
	query := `INSERT INTO tracked_po_documents (tracked_po_id, label, url, created_at) VALUES (?, ?, ?, ?)`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		doc.TrackedPOID,
		doc.Label,
		doc.URL,
		doc.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create tracked PO document",
			zap.Int64("tracked_po_id", doc.TrackedPOID),
			zap.String("url", doc.URL),
			zap.Error(err))
		return fmt.Errorf("failed to create tracked PO document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	doc.ID = id
	return nil
}

// GetByURL retrieves the document of a tracked PO with the given URL
func (r *TrackedPODocumentRepository) GetByURL(ctx context.Context, trackedPOID int64, url string) (*entity.TrackedPODocument, error) {
	query := `
		SELECT id, tracked_po_id, label, url, created_at
		FROM tracked_po_documents
		WHERE tracked_po_id = ? AND url = ?
	`

	doc, err := scanDocument(r.getExecutor(ctx).QueryRowContext(ctx, query, trackedPOID, url))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get tracked PO document",
			zap.Int64("tracked_po_id", trackedPOID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get tracked PO document: %w", err)
	}

	return doc, nil
}

// ListByTrackedPOID returns a tracked PO's documents in insertion order
func (r *TrackedPODocumentRepository) ListByTrackedPOID(ctx context.Context, trackedPOID int64) ([]*entity.TrackedPODocument, error) {
	query := `
		SELECT id, tracked_po_id, label, url, created_at
		FROM tracked_po_documents
		WHERE tracked_po_id = ?
		ORDER BY id
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, trackedPOID)
	if err != nil {
		r.logger.Error("Failed to list tracked PO documents",
			zap.Int64("tracked_po_id", trackedPOID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list tracked PO documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.TrackedPODocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracked PO document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func scanDocument(row scanner) (*entity.TrackedPODocument, error) {
	doc := &entity.TrackedPODocument{}
	if err := row.Scan(&doc.ID, &doc.TrackedPOID, &doc.Label, &doc.URL, &doc.CreatedAt); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *TrackedPODocumentRepository) getExecutor(ctx context.Context) sqlite.Executor {
	return sqlite.ExecutorFrom(ctx, r.db)
}

// Verify interface compliance
var _ port.TrackedPODocumentRepository = (*TrackedPODocumentRepository)(nil)
