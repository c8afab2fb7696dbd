package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recyhub/recy-backend/internal/interface/http/response"
)

// StaticHandler отдаёт файлы фронтенда, а для неизвестных путей — точку входа SPA.
type StaticHandler struct {
	root  string
	entry string
}

func NewStaticHandler(root, entry string) *StaticHandler {
	if entry == "" {
		entry = "index.html"
	}
	return &StaticHandler{root: root, entry: entry}
}

// Serve используется как NoRoute. Запросы к /api/ без маршрута получают JSON 404.
func (h *StaticHandler) Serve(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		response.NotFound(c, "маршрут не найден")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusMethodNotAllowed)
		return
	}

	clean := path.Clean("/" + c.Request.URL.Path)
	target := filepath.Join(h.root, filepath.FromSlash(clean))
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		c.File(target)
		return
	}

	entry := filepath.Join(h.root, h.entry)
	if _, err := os.Stat(entry); err != nil {
		response.NotFound(c, "страница не найдена")
		return
	}
	c.File(entry)
}
