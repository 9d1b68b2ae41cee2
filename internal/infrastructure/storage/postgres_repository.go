package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"DocPipeline/internal/domain"
	"DocPipeline/internal/ports"
)

const artifactsTable = "generated_artifacts"

const schema = `CREATE TABLE IF NOT EXISTS generated_artifacts (
    id            UUID PRIMARY KEY,
    requester_id  TEXT NOT NULL DEFAULT '',
    kind          TEXT NOT NULL,
    filename      TEXT NOT NULL UNIQUE,
    original_name TEXT NOT NULL,
    mime_type     TEXT NOT NULL,
    size          BIGINT NOT NULL,
    path          TEXT NOT NULL,
    download_url  TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var artifactColumns = []string{
	"id", "requester_id", "kind", "filename", "original_name",
	"mime_type", "size", "path", "download_url", "created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository records generated artifacts in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ArtifactRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the artifacts table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return &domain.IOError{Op: "create artifacts table", Err: err}
	}
	return nil
}

// Save inserts the artifact row; saving the same filename twice is a no-op.
func (r *PostgresRepository) Save(ctx context.Context, a domain.GeneratedArtifact) error {
	if r.db == nil {
		return nil
	}

	query, args, err := saveQuery(a).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil
		}
		return &domain.IOError{Op: "insert artifact", Path: a.Filename, Err: err}
	}
	return nil
}

// ListByRequester returns the newest artifacts created for requesterID.
func (r *PostgresRepository) ListByRequester(ctx context.Context, requesterID string, limit uint64) ([]domain.GeneratedArtifact, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := listQuery(requesterID, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.IOError{Op: "query artifacts", Err: err}
	}

	var result []domain.GeneratedArtifact
	for rows.Next() {
		var (
			a    domain.GeneratedArtifact
			kind string
		)
		if err := rows.Scan(&a.ID, &a.RequesterID, &kind, &a.Filename, &a.OriginalName,
			&a.MIMEType, &a.Size, &a.Path, &a.DownloadURL, &a.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		a.Kind, _ = domain.ParseArtifactKind(kind)
		result = append(result, a)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, &domain.IOError{Op: "iterate artifacts", Err: rowsErr}
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// Delete removes the row for filename.
func (r *PostgresRepository) Delete(ctx context.Context, filename string) error {
	if r.db == nil {
		return nil
	}

	query, args, err := deleteQuery(filename).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return &domain.IOError{Op: "delete artifact row", Path: filename, Err: err}
	}
	return nil
}

func saveQuery(a domain.GeneratedArtifact) sq.InsertBuilder {
	return psql.Insert(artifactsTable).
		Columns(artifactColumns...).
		Values(a.ID, a.RequesterID, a.Kind.String(), a.Filename, a.OriginalName,
			a.MIMEType, a.Size, a.Path, a.DownloadURL, a.CreatedAt).
		Suffix("ON CONFLICT (filename) DO NOTHING")
}

func listQuery(requesterID string, limit uint64) sq.SelectBuilder {
	q := psql.Select(artifactColumns...).
		From(artifactsTable).
		Where(sq.Eq{"requester_id": requesterID}).
		OrderBy("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

func deleteQuery(filename string) sq.DeleteBuilder {
	return psql.Delete(artifactsTable).Where(sq.Eq{"filename": filename})
}
