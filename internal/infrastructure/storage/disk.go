package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/config"
	"github.com/city-tourism-backend/internal/pkg/errors"
)

// DiskStore кладёт загруженные файлы на диск. Имена файлов генерируются
// на сервере (uuid + исходное расширение); клиентское имя хранится
// только как отображаемые метаданные.
type DiskStore struct {
	baseDir   string
	publicURL string
	logger    *zap.Logger
}

// StoredFile describes a persisted upload.
type StoredFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
}

func NewDiskStore(cfg *config.UploadsConfig, logger *zap.Logger) *DiskStore {
	return &DiskStore{
		baseDir:   cfg.Dir,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
	}
}

// Save writes one multipart part under baseDir/dir, creating the
// directory on demand.
func (s *DiskStore) Save(dir string, fh *multipart.FileHeader) (*StoredFile, error) {
	if err := validateSegment(dir); err != nil {
		return nil, err
	}

	targetDir := filepath.Join(s.baseDir, dir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		s.logger.Error("Failed to create upload directory", zap.String("dir", targetDir), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	targetPath := filepath.Join(targetDir, filename)

	src, err := fh.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.String("name", fh.Filename), zap.Error(err))
		return nil, errors.ErrInvalidRequest.WithMessage("Failed to read uploaded file")
	}
	defer src.Close()

	dst, err := os.Create(targetPath)
	if err != nil {
		s.logger.Error("Failed to create file", zap.String("path", targetPath), zap.Error(err))
		return nil, errors.ErrInternalServer
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		s.logger.Error("Failed to write file", zap.String("path", targetPath), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &StoredFile{
		Filename:     filename,
		OriginalName: fh.Filename,
		Size:         size,
		Path:         fmt.Sprintf("%s/%s/%s", s.publicURL, dir, filename),
	}, nil
}

// Resolve returns the on-disk path for a stored file, 404 when absent.
func (s *DiskStore) Resolve(dir, filename string) (string, error) {
	if err := validateSegment(dir); err != nil {
		return "", err
	}
	if err := validateSegment(filename); err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", errors.ErrFileNotFound
	}

	return path, nil
}

// Delete removes a stored file, 404 when absent.
func (s *DiskStore) Delete(dir, filename string) error {
	path, err := s.Resolve(dir, filename)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		s.logger.Error("Failed to delete file", zap.String("path", path), zap.Error(err))
		return errors.ErrInternalServer
	}

	return nil
}

// RemoveByPublicPath unlinks the file backing a public image path.
// Best-effort: the record update has already been committed, so a
// failure here is logged for reconciliation, never propagated.
func (s *DiskStore) RemoveByPublicPath(publicPath string) {
	rel := strings.TrimPrefix(publicPath, s.publicURL)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.Contains(rel, "..") {
		s.logger.Warn("Skipping suspicious image path", zap.String("path", publicPath))
		return
	}

	path := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove image file, needs manual reconciliation",
			zap.String("path", path), zap.Error(err))
	}
}

func validateSegment(segment string) error {
	if segment == "" ||
		segment == "." || segment == ".." ||
		strings.ContainsAny(segment, `/\`) ||
		strings.Contains(segment, "..") {
		return errors.ErrInvalidUploadPath
	}
	return nil
}
