package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/embedhost/backend/internal/db"
	"github.com/embedhost/backend/internal/models"
)

// idSlugPrefix marks a media slug that addresses an entry by its identifier, e.g. "id:42".
const idSlugPrefix = "id:"

// MediaRepository defines read access to published media entries.
type MediaRepository interface {
	FindByUserAndSlug(ctx context.Context, username, slug string) (models.MediaEntry, error)
}

// PostgresMediaRepository provides PostgreSQL-backed lookups for media entries.
type PostgresMediaRepository struct {
	pool db.Pool
}

// NewPostgresMediaRepository constructs a media repository backed by PostgreSQL.
func NewPostgresMediaRepository(pool db.Pool) *PostgresMediaRepository {
	return &PostgresMediaRepository{pool: pool}
}

// FindByUserAndSlug loads a processed media entry owned by username along with its
// file variants. A slug of the form "id:<id>" matches the entry identifier instead.
func (r *PostgresMediaRepository) FindByUserAndSlug(ctx context.Context, username, slug string) (models.MediaEntry, error) {
	column := "m.slug"
	key := slug
	if strings.HasPrefix(slug, idSlugPrefix) {
		column = "m.id"
		key = strings.TrimPrefix(slug, idSlugPrefix)
	}

	row := r.pool.QueryRow(ctx, `
        SELECT m.id, m.uploader_id, u.username, m.slug, m.title, m.media_type, m.state, m.created_at
        FROM media_entries m
        JOIN users u ON u.id = m.uploader_id
        WHERE u.username = $1 AND `+column+` = $2 AND m.state = $3
    `, username, key, models.MediaStateProcessed)

	var entry models.MediaEntry
	if err := row.Scan(&entry.ID, &entry.UploaderID, &entry.OwnerUsername, &entry.Slug, &entry.Title, &entry.MediaType, &entry.State, &entry.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MediaEntry{}, ErrNotFound
		}
		return models.MediaEntry{}, fmt.Errorf("select media entry: %w", err)
	}

	files, err := r.listFiles(ctx, entry.ID)
	if err != nil {
		return models.MediaEntry{}, err
	}
	entry.Files = files

	return entry, nil
}

func (r *PostgresMediaRepository) listFiles(ctx context.Context, entryID string) ([]models.MediaFile, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT name, storage_key, width, height
        FROM media_files
        WHERE media_entry_id = $1
        ORDER BY name
    `, entryID)
	if err != nil {
		return nil, fmt.Errorf("query media files: %w", err)
	}
	defer rows.Close()

	var files []models.MediaFile
	for rows.Next() {
		var f models.MediaFile
		if err := rows.Scan(&f.Name, &f.StorageKey, &f.Width, &f.Height); err != nil {
			return nil, fmt.Errorf("scan media file: %w", err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media files: %w", err)
	}

	return files, nil
}

var _ MediaRepository = (*PostgresMediaRepository)(nil)
