package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mvaldes/digital-toolkit/internal/models"
	"github.com/mvaldes/digital-toolkit/internal/prefs"
	"github.com/mvaldes/digital-toolkit/internal/request"
	"github.com/mvaldes/digital-toolkit/internal/store"
	"github.com/mvaldes/digital-toolkit/internal/view"
)

// fakeToolRepo is an in-memory repository for handler tests. Missing ids
// surface as sql.ErrNoRows wrapped the way the real repository wraps them.
type fakeToolRepo struct {
	mu    sync.Mutex
	tools map[uuid.UUID]models.Tool

	failUpdate bool
}

func newFakeToolRepo() *fakeToolRepo {
	return &fakeToolRepo{tools: make(map[uuid.UUID]models.Tool)}
}

func (f *fakeToolRepo) Create(ctx context.Context, tool *models.Tool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	tool.CreatedAt = now
	tool.UpdatedAt = now
	f.tools[tool.ID] = *tool
	return nil
}

func (f *fakeToolRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tool, ok := f.tools[id]
	if !ok {
		return nil, fmt.Errorf("tool not found")
	}
	return &tool, nil
}

func (f *fakeToolRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Tool
	for _, tool := range f.tools {
		if tool.UserID == userID {
			out = append(out, tool)
		}
	}
	return out, nil
}

func (f *fakeToolRepo) Update(ctx context.Context, tool *models.Tool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return fmt.Errorf("failed to update tool: connection reset")
	}
	if _, ok := f.tools[tool.ID]; !ok {
		return fmt.Errorf("tool not found: %w", sql.ErrNoRows)
	}
	tool.UpdatedAt = time.Now().UTC()
	f.tools[tool.ID] = *tool
	return nil
}

func (f *fakeToolRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tools, id)
	return nil
}

// testEnv wires a tool handler against in-memory state, with a fixed user
// injected the way the auth middleware would.
type testEnv struct {
	router *mux.Router
	repo   *fakeToolRepo
	user   *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newFakeToolRepo()
	manager := store.NewManager(repo, nil, zap.NewNop())

	// Points at a closed port: preference reads fail fast and the handler
	// falls back to the default sort key.
	prefStore := prefs.NewStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))

	handler := NewToolHandler(manager, prefStore, zap.NewNop())

	user := &models.User{ID: uuid.New(), Email: "test@example.com"}

	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(request.WithUser(r.Context(), user)))
		})
	})
	handler.RegisterRoutes(router.PathPrefix("/tools").Subrouter())

	return &testEnv{router: router, repo: repo, user: user}
}

func (env *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func validToolBody(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "a useful tool",
		"website_url": "https://example.com",
		"category":    "Development",
		"tags":        []string{"cli"},
	}
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}

	var data T
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return data
}

func TestCreateTool(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, "POST", "/tools", validToolBody("Notion"))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	tool := decodeData[models.Tool](t, w)
	if tool.Name != "Notion" {
		t.Errorf("Name = %q, want Notion", tool.Name)
	}
	if tool.UserID != env.user.ID {
		t.Errorf("UserID = %s, want %s", tool.UserID, env.user.ID)
	}
	if tool.ID == uuid.Nil {
		t.Error("expected an assigned id")
	}
}

func TestCreateToolValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{
			name:   "missing name",
			mutate: func(b map[string]any) { delete(b, "name") },
		},
		{
			name:   "missing website_url",
			mutate: func(b map[string]any) { delete(b, "website_url") },
		},
		{
			name:   "malformed website_url",
			mutate: func(b map[string]any) { b["website_url"] = "not a url" },
		},
		{
			name:   "missing category",
			mutate: func(b map[string]any) { delete(b, "category") },
		},
		{
			name:   "whitespace-only name",
			mutate: func(b map[string]any) { b["name"] = "   " },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			body := validToolBody("Broken")
			tt.mutate(body)

			w := env.do(t, "POST", "/tools", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestListToolsGridMode(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.do(t, "POST", "/tools", validToolBody("Notion"))
	env.do(t, "POST", "/tools", validToolBody("Figma"))

	w := env.do(t, "GET", "/tools", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	payload := decodeData[view.Payload](t, w)
	if payload.Mode != models.ViewGrid {
		t.Errorf("Mode = %s, want grid", payload.Mode)
	}
	if payload.Total != 2 {
		t.Errorf("Total = %d, want 2", payload.Total)
	}
	if len(payload.Items) != 2 {
		t.Errorf("Items len = %d, want 2", len(payload.Items))
	}
	if len(payload.Groups) != 0 {
		t.Errorf("Groups should be empty in grid mode, got %d", len(payload.Groups))
	}
}

func TestListToolsCategoryMode(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	body := validToolBody("Notion")
	body["category"] = "Productivity"
	env.do(t, "POST", "/tools", body)
	env.do(t, "POST", "/tools", validToolBody("Postman"))

	w := env.do(t, "GET", "/tools?view=category", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	payload := decodeData[view.Payload](t, w)
	if payload.Mode != models.ViewCategory {
		t.Errorf("Mode = %s, want category", payload.Mode)
	}
	if len(payload.Groups) != 2 {
		t.Errorf("Groups len = %d, want 2", len(payload.Groups))
	}
	if len(payload.Items) != 0 {
		t.Errorf("Items should be empty in category mode, got %d", len(payload.Items))
	}
}

func TestListToolsFiltering(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.do(t, "POST", "/tools", validToolBody("Notion"))

	favBody := validToolBody("Postman")
	favBody["is_favorite"] = true
	env.do(t, "POST", "/tools", favBody)

	w := env.do(t, "GET", "/tools?favorites=true", nil)
	payload := decodeData[view.Payload](t, w)
	if payload.Total != 1 || payload.Items[0].Name != "Postman" {
		t.Errorf("favorites filter returned %v", payload.Items)
	}

	// Derived indexes still reflect the full collection.
	if len(payload.Categories) != 1 || payload.Categories[0] != "Development" {
		t.Errorf("Categories = %v", payload.Categories)
	}

	w = env.do(t, "GET", "/tools?search=noti", nil)
	payload = decodeData[view.Payload](t, w)
	if payload.Total != 1 || payload.Items[0].Name != "Notion" {
		t.Errorf("search filter returned %v", payload.Items)
	}
}

func TestListToolsRejectsInvalidParams(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	if w := env.do(t, "GET", "/tools?view=bogus", nil); w.Code != http.StatusBadRequest {
		t.Errorf("invalid view: status = %d, want 400", w.Code)
	}
	if w := env.do(t, "GET", "/tools?sort=bogus", nil); w.Code != http.StatusBadRequest {
		t.Errorf("invalid sort: status = %d, want 400", w.Code)
	}
}

func TestUpdateTool(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created := decodeData[models.Tool](t, env.do(t, "POST", "/tools", validToolBody("Before")))

	w := env.do(t, "PUT", "/tools/"+created.ID.String(), validToolBody("After"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	updated := decodeData[models.Tool](t, w)
	if updated.Name != "After" {
		t.Errorf("Name = %q, want After", updated.Name)
	}
	if updated.ID != created.ID {
		t.Errorf("ID changed on update")
	}
}

func TestUpdateToolNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, "PUT", "/tools/"+uuid.NewString(), validToolBody("Ghost"))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateToolRepositoryFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created := decodeData[models.Tool](t, env.do(t, "POST", "/tools", validToolBody("Flaky")))

	// A transient persistence failure is a server error; only a missing
	// record maps to 404.
	env.repo.mu.Lock()
	env.repo.failUpdate = true
	env.repo.mu.Unlock()

	w := env.do(t, "PUT", "/tools/"+created.ID.String(), validToolBody("Changed"))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 (body %s)", w.Code, w.Body.String())
	}
}

func TestDeleteToolRequiresConfirmation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created := decodeData[models.Tool](t, env.do(t, "POST", "/tools", validToolBody("Doomed")))

	w := env.do(t, "DELETE", "/tools/"+created.ID.String(), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed delete: status = %d, want 400", w.Code)
	}

	w = env.do(t, "GET", "/tools", nil)
	if payload := decodeData[view.Payload](t, w); payload.Total != 1 {
		t.Errorf("Total = %d, want 1 after refused delete", payload.Total)
	}

	w = env.do(t, "DELETE", "/tools/"+created.ID.String()+"?confirm=true", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("confirmed delete: status = %d, want 204", w.Code)
	}

	w = env.do(t, "GET", "/tools", nil)
	if payload := decodeData[view.Payload](t, w); payload.Total != 0 {
		t.Errorf("Total = %d, want 0 after delete", payload.Total)
	}
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created := decodeData[models.Tool](t, env.do(t, "POST", "/tools", validToolBody("Fav")))

	w := env.do(t, "POST", "/tools/"+created.ID.String()+"/favorite", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if tool := decodeData[models.Tool](t, w); !tool.IsFavorite {
		t.Error("expected is_favorite true after toggle")
	}

	w = env.do(t, "POST", "/tools/"+uuid.NewString()+"/favorite", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("absent id: status = %d, want 404", w.Code)
	}
}

func TestInvalidToolID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	if w := env.do(t, "PUT", "/tools/not-a-uuid", validToolBody("X")); w.Code != http.StatusBadRequest {
		t.Errorf("PUT: status = %d, want 400", w.Code)
	}
	if w := env.do(t, "DELETE", "/tools/not-a-uuid?confirm=true", nil); w.Code != http.StatusBadRequest {
		t.Errorf("DELETE: status = %d, want 400", w.Code)
	}
}
