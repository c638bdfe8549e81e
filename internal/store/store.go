// Package store implements the per-owner record store: an in-memory tool
// collection kept eventually consistent with the database. Mutations persist
// remotely first and touch local state only after the remote write succeeds,
// so the collection never shows a record the database has not confirmed.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mvaldes/digital-toolkit/internal/database"
	"github.com/mvaldes/digital-toolkit/internal/models"
	"github.com/mvaldes/digital-toolkit/internal/notify"
)

// Store owns the in-memory collection for a single owner. All other
// components see read-only snapshots; only Store mutates the slice.
type Store struct {
	userID uuid.UUID
	repo   database.ToolRepositoryInterface
	sink   notify.Sink
	logger *zap.Logger

	mu    sync.RWMutex
	tools []models.Tool // newest first, matching the load order

	// Per-id in-flight guard. Two mutations against the same id serialize in
	// submission order (the mutex hands itself to the longest waiter), which
	// closes the rapid double-toggle race where the last network response to
	// land would otherwise decide final state.
	locksMu sync.Mutex
	locks   map[uuid.UUID]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

// New creates a store for one owner. The sink may be nil, in which case
// mutation outcomes are only logged.
func New(userID uuid.UUID, repo database.ToolRepositoryInterface, sink notify.Sink, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		userID: userID,
		repo:   repo,
		sink:   sink,
		logger: logger,
		locks:  make(map[uuid.UUID]*idLock),
	}
}

// Load fetches the owner's full collection, newest first, and replaces local
// state wholesale. Safe to call repeatedly; each call is a full resync.
func (s *Store) Load(ctx context.Context) error {
	tools, err := s.repo.GetByUserID(ctx, s.userID)
	if err != nil {
		s.report(ctx, notify.LevelError, notify.OpLoad, fmt.Sprintf("failed to load tools: %v", err), nil)
		return fmt.Errorf("failed to load tools: %w", err)
	}

	s.mu.Lock()
	s.tools = tools
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current collection. Callers may filter,
// sort, and group it freely without affecting the store.
func (s *Store) Snapshot() []models.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Get returns the local record for the id, or nil if absent.
func (s *Store) Get(id uuid.UUID) *models.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.tools {
		if s.tools[i].ID == id {
			tool := s.tools[i]
			return &tool
		}
	}
	return nil
}

// Create assigns an id, persists the tool, and prepends the confirmed record
// to local state. On failure local state is untouched.
func (s *Store) Create(ctx context.Context, fields models.ToolFields) (*models.Tool, error) {
	tool := &models.Tool{
		ID:          uuid.New(),
		UserID:      s.userID,
		Name:        fields.Name,
		Description: fields.Description,
		WebsiteURL:  fields.WebsiteURL,
		Category:    fields.Category,
		Tags:        normalizeTags(fields.Tags),
		Notes:       fields.Notes,
		IsFavorite:  fields.IsFavorite,
	}

	if err := s.repo.Create(ctx, tool); err != nil {
		s.report(ctx, notify.LevelError, notify.OpCreate, fmt.Sprintf("failed to add tool: %v", err), nil)
		return nil, fmt.Errorf("failed to create tool: %w", err)
	}

	s.mu.Lock()
	s.tools = append([]models.Tool{*tool}, s.tools...)
	s.mu.Unlock()

	s.report(ctx, notify.LevelSuccess, notify.OpCreate, "tool added", &tool.ID)
	return tool, nil
}

// Update persists the full field set with a refreshed updated_at, then
// replaces the matching local record. A record removed elsewhere surfaces as
// the repository's not-found error; the next Load resyncs.
func (s *Store) Update(ctx context.Context, id uuid.UUID, fields models.ToolFields) (*models.Tool, error) {
	unlock := s.lockID(id)
	defer unlock()

	current := s.Get(id)

	tool := &models.Tool{
		ID:          id,
		UserID:      s.userID,
		Name:        fields.Name,
		Description: fields.Description,
		WebsiteURL:  fields.WebsiteURL,
		Category:    fields.Category,
		Tags:        normalizeTags(fields.Tags),
		Notes:       fields.Notes,
		IsFavorite:  fields.IsFavorite,
	}
	if current != nil {
		tool.CreatedAt = current.CreatedAt
	}

	if err := s.repo.Update(ctx, tool); err != nil {
		s.report(ctx, notify.LevelError, notify.OpUpdate, fmt.Sprintf("failed to update tool: %v", err), &id)
		return nil, fmt.Errorf("failed to update tool: %w", err)
	}

	s.replaceLocal(*tool)
	s.report(ctx, notify.LevelSuccess, notify.OpUpdate, "tool updated", &id)
	return tool, nil
}

// Delete persists a remote delete and drops the record locally. Deleting an
// id that is already gone still reports success.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.lockID(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id, s.userID); err != nil {
		s.report(ctx, notify.LevelError, notify.OpDelete, fmt.Sprintf("failed to delete tool: %v", err), &id)
		return fmt.Errorf("failed to delete tool: %w", err)
	}

	s.mu.Lock()
	for i := range s.tools {
		if s.tools[i].ID == id {
			s.tools = append(s.tools[:i], s.tools[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.report(ctx, notify.LevelSuccess, notify.OpDelete, "tool deleted", &id)
	return nil
}

// ToggleFavorite flips is_favorite from the current local value and persists
// the result. A no-op when the id is no longer present locally.
func (s *Store) ToggleFavorite(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	unlock := s.lockID(id)
	defer unlock()

	current := s.Get(id)
	if current == nil {
		return nil, nil
	}

	tool := *current
	tool.IsFavorite = !tool.IsFavorite

	if err := s.repo.Update(ctx, &tool); err != nil {
		s.report(ctx, notify.LevelError, notify.OpToggleFavorite, fmt.Sprintf("failed to update favorite: %v", err), &id)
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.replaceLocal(tool)
	return &tool, nil
}

// lockID serializes mutations against one record id. Entries are reference
// counted so the map does not grow with every id ever touched.
func (s *Store) lockID(id uuid.UUID) (unlock func()) {
	s.locksMu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &idLock{}
		s.locks[id] = lock
	}
	lock.refs++
	s.locksMu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		s.locksMu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}

func (s *Store) replaceLocal(tool models.Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tools {
		if s.tools[i].ID == tool.ID {
			s.tools[i] = tool
			return
		}
	}
}

// report forwards a mutation outcome to the notification sink. The sink is
// fire-and-forget: publish failures are logged and swallowed so they never
// fail the mutation itself.
func (s *Store) report(ctx context.Context, level notify.Level, op notify.Operation, message string, toolID *uuid.UUID) {
	if level == notify.LevelError {
		s.logger.Warn("store_mutation_failed",
			zap.String("operation", string(op)),
			zap.String("user_id", s.userID.String()),
			zap.String("message", message),
		)
	}
	if s.sink == nil {
		return
	}
	n := notify.New(s.userID, level, op, message, toolID)
	if err := s.sink.Publish(ctx, n); err != nil {
		s.logger.Warn("failed_to_publish_notification",
			zap.String("operation", string(op)),
			zap.Error(err),
		)
	}
}

// normalizeTags drops duplicate tags while preserving first-seen order.
// Membership is what matters for filtering; order only affects display.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
