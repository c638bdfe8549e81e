package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

// ToolRepository handles tool database operations
type ToolRepository struct {
	db *DB
}

// NewToolRepository creates a new tool repository
func NewToolRepository(db *DB) *ToolRepository {
	return &ToolRepository{db: db}
}

const toolColumns = `id, user_id, name, description, website_url, category, tags, notes, is_favorite, created_at, updated_at`

// Create inserts a new tool and fills in the database-assigned timestamps
func (r *ToolRepository) Create(ctx context.Context, tool *models.Tool) error {
	query := `
		INSERT INTO tools (id, user_id, name, description, website_url, category, tags, notes, is_favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		tool.ID,
		tool.UserID,
		tool.Name,
		tool.Description,
		tool.WebsiteURL,
		tool.Category,
		pq.Array(tool.Tags),
		tool.Notes,
		tool.IsFavorite,
		now,
		now,
	).Scan(&tool.CreatedAt, &tool.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create tool: %w", err)
	}

	return nil
}

// GetByID retrieves a tool by ID
func (r *ToolRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`

	tool, err := scanTool(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tool not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tool: %w", err)
	}

	return tool, nil
}

// GetByUserID retrieves every tool owned by the user, newest first. The
// ordering matches what the store presents before any client-side sort.
func (r *ToolRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	var tools []models.Tool
	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, *tool)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tools: %w", err)
	}

	return tools, nil
}

// Update replaces the editable fields of an existing tool. The statement is
// scoped to the owning user, so an id belonging to someone else behaves like
// a missing record.
func (r *ToolRepository) Update(ctx context.Context, tool *models.Tool) error {
	query := `
		UPDATE tools
		SET name = $3, description = $4, website_url = $5, category = $6, tags = $7, notes = $8, is_favorite = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		tool.ID,
		tool.UserID,
		tool.Name,
		tool.Description,
		tool.WebsiteURL,
		tool.Category,
		pq.Array(tool.Tags),
		tool.Notes,
		tool.IsFavorite,
		time.Now().UTC(),
	).Scan(&tool.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("tool not found: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to update tool: %w", err)
	}

	return nil
}

// Delete removes a tool by ID, scoped to the owning user. Deleting an
// already-absent id is not an error; the remote end state is the same either
// way.
func (r *ToolRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM tools WHERE id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}

	return nil
}

// scannable covers *sql.Row and *sql.Rows
type scannable interface {
	Scan(dest ...any) error
}

func scanTool(row scannable) (*models.Tool, error) {
	tool := &models.Tool{}
	var tags pq.StringArray
	var notes sql.NullString

	err := row.Scan(
		&tool.ID,
		&tool.UserID,
		&tool.Name,
		&tool.Description,
		&tool.WebsiteURL,
		&tool.Category,
		&tags,
		&notes,
		&tool.IsFavorite,
		&tool.CreatedAt,
		&tool.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tool.Tags = []string(tags)
	if notes.Valid {
		tool.Notes = &notes.String
	}

	return tool, nil
}
