package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

// CategoryMetaRepository handles the category display-metadata side table.
// This table only enriches rendering (icon, color); it never gates which
// category strings a tool may use.
type CategoryMetaRepository struct {
	db *DB
}

// NewCategoryMetaRepository creates a new category metadata repository
func NewCategoryMetaRepository(db *DB) *CategoryMetaRepository {
	return &CategoryMetaRepository{db: db}
}

// GetAll retrieves all category metadata rows
func (r *CategoryMetaRepository) GetAll(ctx context.Context) ([]models.CategoryMeta, error) {
	query := `SELECT name, icon, color, created_at FROM category_meta ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category metadata: %w", err)
	}
	defer rows.Close()

	var metas []models.CategoryMeta
	for rows.Next() {
		var meta models.CategoryMeta
		var color sql.NullString
		if err := rows.Scan(&meta.Name, &meta.Icon, &color, &meta.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category metadata: %w", err)
		}
		if color.Valid {
			meta.Color = &color.String
		}
		metas = append(metas, meta)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category metadata: %w", err)
	}

	return metas, nil
}

// Upsert inserts or replaces the metadata for a category name
func (r *CategoryMetaRepository) Upsert(ctx context.Context, meta *models.CategoryMeta) error {
	query := `
		INSERT INTO category_meta (name, icon, color, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET icon = EXCLUDED.icon, color = EXCLUDED.color
	`

	if _, err := r.db.ExecContext(ctx, query, meta.Name, meta.Icon, meta.Color, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert category metadata: %w", err)
	}

	return nil
}
