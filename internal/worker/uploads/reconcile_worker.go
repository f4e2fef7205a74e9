package uploads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/worker"
)

// orphanGracePeriod keeps freshly uploaded files out of the report:
// a request may have stored them before the record commit.
const orphanGracePeriod = 24 * time.Hour

// ReconcileWorker периодически сверяет каталог загрузок со ссылками в
// базе и логирует осиротевшие файлы для ручной сверки. Файлы не
// удаляются автоматически.
type ReconcileWorker struct {
	*worker.BaseWorker

	pointRepo  repository.CityPointRepository
	uploadsDir string
	publicURL  string
	interval   time.Duration
}

func NewReconcileWorker(
	pointRepo repository.CityPointRepository,
	uploadsDir, publicURL string,
	interval time.Duration,
	logger *zap.Logger,
) *ReconcileWorker {
	if interval <= 0 {
		interval = time.Hour
	}

	return &ReconcileWorker{
		BaseWorker: worker.NewBaseWorker("uploads-reconcile", logger),
		pointRepo:  pointRepo,
		uploadsDir: uploadsDir,
		publicURL:  strings.TrimRight(publicURL, "/"),
		interval:   interval,
	}
}

// Start запускает цикл сверки до отмены контекста или Stop.
func (w *ReconcileWorker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.StopChan():
			return nil
		case <-ticker.C:
			w.reconcile(ctx)
		}
	}
}

func (w *ReconcileWorker) reconcile(ctx context.Context) {
	referenced, err := w.pointRepo.ListImagePaths(ctx)
	if err != nil {
		w.Logger().Error("Reconcile: failed to load referenced image paths", zap.Error(err))
		return
	}

	refSet := make(map[string]bool, len(referenced))
	for _, p := range referenced {
		refSet[p] = true
	}

	cutoff := time.Now().Add(-orphanGracePeriod)
	orphans := 0

	err = filepath.Walk(w.uploadsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || info.ModTime().After(cutoff) {
			return nil
		}

		rel, err := filepath.Rel(w.uploadsDir, path)
		if err != nil {
			return nil
		}

		publicPath := w.publicURL + "/" + filepath.ToSlash(rel)
		if !refSet[publicPath] {
			orphans++
			w.Logger().Warn("Orphaned upload, needs manual reconciliation",
				zap.String("path", path),
				zap.Time("modified", info.ModTime()))
		}
		return nil
	})
	if err != nil {
		w.Logger().Error("Reconcile: walk failed", zap.Error(err))
		return
	}

	w.Logger().Info("Upload reconciliation pass finished",
		zap.Int("referenced", len(referenced)),
		zap.Int("orphans", orphans))
}
