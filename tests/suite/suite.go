package suite

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"photo_vitrine/internal/config"
	"photo_vitrine/internal/domain/models"
	gallery "photo_vitrine/internal/services/gallery_service"
	workflow "photo_vitrine/internal/services/workflow_service"
)

// MemStore — хранилище обеих коллекций в памяти. Повторяет контракт
// боевого хранилища: атомарна запись одной коллекции, снимки отдаются
// копиями.
type MemStore struct {
	mu            sync.Mutex
	galleries     []models.Gallery
	notifications []models.Notification
}

func (s *MemStore) LoadGalleries(_ context.Context) ([]models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Gallery, len(s.galleries))
	copy(out, s.galleries)

	return out, nil
}

func (s *MemStore) SaveGalleries(_ context.Context, galleries []models.Gallery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.galleries = make([]models.Gallery, len(galleries))
	copy(s.galleries, galleries)

	return nil
}

func (s *MemStore) LoadNotifications(_ context.Context) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)

	return out, nil
}

func (s *MemStore) SaveNotifications(_ context.Context, notifications []models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = make([]models.Notification, len(notifications))
	copy(s.notifications, notifications)

	return nil
}

type Suite struct {
	*testing.T
	Cfg      *config.Config
	Store    *MemStore
	Workflow *workflow.WorkflowService
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()
	t.Parallel()

	cfg := config.MustLoadPath(configPath())

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Duration(time.Hour))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := &MemStore{}
	workflowService := workflow.NewWorkflowService(log, store, gallery.NewHomeCache(cfg.Homepage.CacheTTL))

	t.Cleanup(func() {
		t.Helper()
		cancelCtx()
	})

	return ctx, &Suite{
		T:        t,
		Cfg:      cfg,
		Store:    store,
		Workflow: workflowService,
	}
}

func configPath() string {
	const key = "CONFIG_PATH"

	if v := os.Getenv(key); v != "" {
		return v
	}

	return "../config/local.yaml"
}
