package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

// ToolRepositoryInterface defines the persistence boundary the store depends
// on. It exists so the store can be tested against an in-memory fake.
type ToolRepositoryInterface interface {
	Create(ctx context.Context, tool *models.Tool) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Tool, error)
	Update(ctx context.Context, tool *models.Tool) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// CategoryMetaRepositoryInterface defines the category-metadata boundary
type CategoryMetaRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.CategoryMeta, error)
	Upsert(ctx context.Context, meta *models.CategoryMeta) error
}

// UserRepositoryInterface defines the user persistence boundary
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByProviderID(ctx context.Context, providerID string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// Ensure concrete types implement the interfaces
var (
	_ ToolRepositoryInterface         = (*ToolRepository)(nil)
	_ CategoryMetaRepositoryInterface = (*CategoryMetaRepository)(nil)
	_ UserRepositoryInterface         = (*UserRepository)(nil)
)
