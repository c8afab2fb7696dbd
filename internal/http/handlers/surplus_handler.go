package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"

	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/logger"
	"github.com/recyhub/recy-backend/internal/pkg/idgen"
	"github.com/recyhub/recy-backend/internal/storage"
	"github.com/recyhub/recy-backend/internal/validation"
)

// Разрешённые типы изображений
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Поля, которые сервер выставляет сам и не берёт из формы.
var reservedSurplusFields = map[string]bool{
	"id":        true,
	"images":    true,
	"createdAt": true,
}

// SurplusHandler обслуживает объявления об излишках: форма + до maxFiles изображений.
type SurplusHandler struct {
	store    *storage.SurplusStore
	images   *storage.ImageStorage
	maxFiles int
}

// NewSurplusHandler создаёт новый хэндлер.
func NewSurplusHandler(store *storage.SurplusStore, images *storage.ImageStorage, maxFiles int) *SurplusHandler {
	if maxFiles <= 0 {
		maxFiles = 5
	}
	return &SurplusHandler{store: store, images: images, maxFiles: maxFiles}
}

// Create обрабатывает POST /api/surplus (multipart/form-data, файлы в поле images).
func (h *SurplusHandler) Create(c *gin.Context) {
	maxBody := h.images.MaxUploadBytes()*int64(h.maxFiles) + 1<<20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "ожидается multipart/form-data")
		return
	}

	files := form.File["images"]
	if len(files) > h.maxFiles {
		response.BadRequest(c, fmt.Sprintf("можно загрузить не более %d изображений", h.maxFiles))
		return
	}

	item := storage.SurplusItem{}
	for key, values := range form.Value {
		if reservedSurplusFields[key] || len(values) == 0 {
			continue
		}
		for _, v := range values {
			if err := validation.ValidateLength(key, v, 0, validation.MaxSurplusField); err != nil {
				response.ValidationFailed(c, err.Error())
				return
			}
		}
		if len(values) == 1 {
			item[key] = values[0]
		} else {
			item[key] = values
		}
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := h.saveImage(c, fh)
		if err != nil {
			h.cleanup(c, paths)
			var userErr *uploadError
			if errors.As(err, &userErr) {
				response.BadRequest(c, userErr.msg)
				return
			}
			h.fail(c, err)
			return
		}
		paths = append(paths, p)
	}

	item["id"] = idgen.NextID(idgen.KindSurplus)
	item["images"] = paths
	item["createdAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	if err := h.store.Append(c.Request.Context(), item); err != nil {
		h.cleanup(c, paths)
		h.fail(c, err)
		return
	}

	response.CreatedWithMessage(c, "объявление добавлено", item)
}

// List обрабатывает GET /api/surplus.
func (h *SurplusHandler) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, items)
}

type uploadError struct{ msg string }

func (e *uploadError) Error() string { return e.msg }

// saveImage проверяет расширение и магические байты, затем сохраняет файл.
func (h *SurplusHandler) saveImage(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size == 0 {
		return "", &uploadError{msg: "файл " + fh.Filename + " пуст"}
	}
	if fh.Size > h.images.MaxUploadBytes() {
		return "", &uploadError{msg: fmt.Sprintf("файл %s больше %d байт", fh.Filename, h.images.MaxUploadBytes())}
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", &uploadError{msg: "не удалось прочитать файл " + fh.Filename}
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown || !allowedImageTypes[kind.MIME.Value] {
		return "", &uploadError{msg: "разрешены только изображения (jpeg, png, gif, webp)"}
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	expected := "." + kind.Extension
	if ext != expected && !(ext == ".jpeg" && expected == ".jpg") {
		return "", &uploadError{msg: fmt.Sprintf("расширение файла (%s) не соответствует реальному типу (%s)", ext, expected)}
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	p, _, err := h.images.Save(c.Request.Context(), fh.Filename, src)
	if errors.Is(err, storage.ErrTooLarge) {
		return "", &uploadError{msg: err.Error()}
	}
	return p, err
}

func (h *SurplusHandler) cleanup(c *gin.Context, paths []string) {
	for _, p := range paths {
		_ = h.images.Delete(c.Request.Context(), p)
	}
}

func (h *SurplusHandler) fail(c *gin.Context, err error) {
	logger.Component("surplus").WithFields(logrus.Fields{
		"error": err.Error(),
		"path":  c.Request.URL.Path,
	}).Error("ошибка обработки объявления")
	c.JSON(http.StatusInternalServerError, response.Response{
		Success: false,
		Message: "не удалось обработать объявление",
	})
}
