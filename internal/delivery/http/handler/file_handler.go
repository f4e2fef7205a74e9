package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/infrastructure/storage"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/pkg/utils"
)

// FileHandler - обработчик загрузки и выдачи файлов
type FileHandler struct {
	store  *storage.DiskStore
	logger *zap.Logger
}

func NewFileHandler(store *storage.DiskStore, logger *zap.Logger) *FileHandler {
	return &FileHandler{store: store, logger: logger}
}

// Upload - сохранение файлов из multipart-поля file в подкаталог :path
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	dir := c.Params("path")

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Multipart form expected"))
	}

	files := form.File["file"]
	if len(files) == 0 {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("No file provided"))
	}

	stored := make([]*storage.StoredFile, 0, len(files))
	for _, fh := range files {
		f, err := h.store.Save(dir, fh)
		if err != nil {
			return utils.SendError(c, err)
		}
		stored = append(stored, f)
	}

	return utils.SendCreated(c, stored)
}

// Download - выдача файла по пути и имени
func (h *FileHandler) Download(c *fiber.Ctx) error {
	path, err := h.store.Resolve(c.Params("path"), c.Params("filename"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.SendFile(path)
}

// Delete - удаление файла
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Params("path"), c.Params("filename")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
