package router_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recyhub/recy-backend/internal/config"
	"github.com/recyhub/recy-backend/internal/events"
	"github.com/recyhub/recy-backend/internal/http/handlers"
	"github.com/recyhub/recy-backend/internal/http/router"
	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
	"github.com/recyhub/recy-backend/internal/infrastructure/persistence"
	"github.com/recyhub/recy-backend/internal/interface/http/handler"
	"github.com/recyhub/recy-backend/internal/storage"
	"github.com/recyhub/recy-backend/internal/usecase/chat"
	"github.com/recyhub/recy-backend/internal/usecase/impact"
	"github.com/recyhub/recy-backend/internal/usecase/product"
	"github.com/recyhub/recy-backend/internal/usecase/request"
	"github.com/recyhub/recy-backend/internal/usecase/resource"
	"github.com/recyhub/recy-backend/internal/usecase/seed"
	"github.com/recyhub/recy-backend/internal/validation"
	"github.com/recyhub/recy-backend/internal/ws"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterBindings(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	engine    *gin.Engine
	staticDir string
	uploadDir string
}

func newTestServer(t *testing.T, env string) *testServer {
	t.Helper()
	dir := t.TempDir()
	staticDir := filepath.Join(dir, "public")
	uploadDir := filepath.Join(dir, "uploads")
	require.NoError(t, os.MkdirAll(staticDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>recy</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := &config.Config{
		Env:             env,
		StoreDriver:     config.StoreMemory,
		StaticDir:       staticDir,
		SPAEntry:        "index.html",
		UploadDir:       uploadDir,
		MaxUploadSizeMB: 1,
		MaxUploadFiles:  2,
		AllowedOrigins:  []string{"*"},
		RateLimitLimit:  100,
		RateLimitPeriod: time.Minute,
	}

	store := kvstore.NewMemoryStore()
	resourceRepo := persistence.NewResourceRepositoryAdapter(store, 0)
	requestRepo := persistence.NewRequestRepositoryAdapter(store, 0)
	chatRepo := persistence.NewChatRoomRepositoryAdapter(store, 0)
	productRepo := persistence.NewProductRepositoryAdapter(store, 0)
	ratingRepo := persistence.NewRatingRepositoryAdapter(store, 0)
	n := events.NewNotifier()

	addResource := resource.NewAddResourceUseCase(resourceRepo, n)
	complete := resource.NewCompleteResourceUseCase(resourceRepo, n)
	requestRes := request.NewRequestResourceUseCase(requestRepo, resourceRepo, n, false)
	updateRequest := request.NewUpdateRequestStatusUseCase(requestRepo, n, false)
	createChat := chat.NewCreateChatRoomUseCase(chatRepo, n)
	postMessage := chat.NewPostMessageUseCase(chatRepo, n, false)
	postProduct := product.NewPostProductUseCase(productRepo, n)
	rate := impact.NewRateUseCase(ratingRepo, n, false)

	images, err := storage.NewImageStorage(uploadDir, "uploads", cfg.MaxUploadSizeMB)
	require.NoError(t, err)
	surplus, err := storage.NewSurplusStore(filepath.Join(dir, "surplus.json"))
	require.NoError(t, err)

	h := router.Handlers{
		Health:  handlers.NewHealthHandler(store, config.StoreMemory),
		WS:      handlers.NewWSHandler(ws.NewHub(), cfg.AllowedOrigins),
		Surplus: handlers.NewSurplusHandler(surplus, images, cfg.MaxUploadFiles),
		Static:  handlers.NewStaticHandler(staticDir, cfg.SPAEntry),
		Seed: handlers.NewSeedHandler(seed.NewDemoSeedUseCase(
			addResource, complete, requestRes, updateRequest, createChat, postMessage, postProduct, rate,
		)),
		Resource: handler.NewResourceHandler(
			addResource,
			resource.NewListResourcesUseCase(resourceRepo),
			resource.NewGetResourceUseCase(resourceRepo),
			complete,
			resource.NewListResourcesNearUseCase(resourceRepo),
			impact.NewComputeImpactUseCase(resourceRepo),
		),
		Request: handler.NewRequestHandler(
			requestRes,
			request.NewListRequestsForDonorUseCase(requestRepo, resourceRepo),
			request.NewListRequestsForUpcyclerUseCase(requestRepo),
			updateRequest,
			impact.NewComputeDonorImpactUseCase(resourceRepo),
		),
		Chat: handler.NewChatHandler(
			createChat,
			postMessage,
			chat.NewListChatsForUseCase(chatRepo),
			chat.NewGetChatRoomUseCase(chatRepo),
			chat.NewUpdateMessageStatusUseCase(chatRepo, n),
		),
		Product: handler.NewProductHandler(
			postProduct,
			product.NewListProductsUseCase(productRepo),
			rate,
			impact.NewListRatingsUseCase(ratingRepo),
		),
	}

	return &testServer{engine: router.SetupRouter(cfg, h), staticDir: staticDir, uploadDir: uploadDir}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "test")
	w, _ := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

func TestResourceLifecycle(t *testing.T) {
	s := newTestServer(t, "test")

	w, env := s.do(t, http.MethodPost, "/api/resources", map[string]any{
		"donorEmail": "donor@example.com",
		"title":      "Доски",
		"type":       "wood",
		"qty":        4,
		"lat":        55.75,
		"lng":        37.62,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, env.Data)
	id := created["id"].(string)
	assert.Equal(t, "available", created["status"])
	assert.Equal(t, 55.75, created["lat"])

	w, env = s.do(t, http.MethodGet, "/api/resources/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Доски", decode[map[string]any](t, env.Data)["title"])

	w, env = s.do(t, http.MethodGet, "/api/resources/"+id+"/impact", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12.0, decode[map[string]any](t, env.Data)["score"])

	w, env = s.do(t, http.MethodPost, "/api/resources/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode[map[string]any](t, env.Data)["status"])

	w, env = s.do(t, http.MethodGet, "/api/resources/"+id+"/impact", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 18.0, decode[map[string]any](t, env.Data)["score"])

	w, env = s.do(t, http.MethodGet, "/api/resources?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, env = s.do(t, http.MethodGet, "/api/resources?type=plastic", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]any](t, env.Data))

	w, env = s.do(t, http.MethodGet, "/api/resources/near?lat=55.76&lng=37.62&radiusKm=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	near := decode[[]map[string]any](t, env.Data)
	require.Len(t, near, 1)
	assert.Greater(t, near[0]["distanceKm"], 0.0)

	w, env = s.do(t, http.MethodGet, "/api/donors/donor@example.com/impact", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 18.0, decode[map[string]any](t, env.Data)["total"])
}

func TestResourceErrors(t *testing.T) {
	s := newTestServer(t, "test")

	w, env := s.do(t, http.MethodGet, "/api/resources/res_1_00000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, _ = s.do(t, http.MethodPost, "/api/resources/res_1_00000000/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/resources/not-an-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/resources/res_1760000000123_9998", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/resources/bad%20id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodPost, "/api/resources", map[string]any{"donorEmail": "nope", "title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, _ = s.do(t, http.MethodPost, "/api/resources", map[string]any{"donorEmail": "d@example.com", "title": "x", "qty": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/resources/near?lat=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestFlow(t *testing.T) {
	s := newTestServer(t, "test")

	_, env := s.do(t, http.MethodPost, "/api/resources", map[string]any{"donorEmail": "donor@example.com", "title": "Ткань", "type": "fabric"})
	resID := decode[map[string]any](t, env.Data)["id"].(string)

	w, env := s.do(t, http.MethodPost, "/api/requests", map[string]any{
		"resourceId":    resID,
		"upcyclerEmail": "maker@example.com",
		"reason":        "сумки",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, env.Data)
	assert.Equal(t, "pending", created["status"])
	reqID := created["id"].(string)

	w, env = s.do(t, http.MethodPatch, "/api/requests/"+reqID+"/status", map[string]any{"status": "accepted", "reason": "ок"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "accepted", decode[map[string]any](t, env.Data)["status"])

	w, _ = s.do(t, http.MethodPatch, "/api/requests/"+reqID+"/status", map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPatch, "/api/requests/req_1_00000000/status", map[string]any{"status": "rejected"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/donors/donor@example.com/requests", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, env = s.do(t, http.MethodGet, "/api/upcyclers/maker@example.com/requests", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, _ = s.do(t, http.MethodGet, "/api/upcyclers/not-an-email/requests", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatFlow(t *testing.T) {
	s := newTestServer(t, "test")

	w, env := s.do(t, http.MethodPost, "/api/chats", map[string]any{
		"participants": []string{"a@example.com", "b@example.com"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	chatID := decode[map[string]any](t, env.Data)["id"].(string)

	w, env = s.do(t, http.MethodPost, "/api/chats/"+chatID+"/messages", map[string]any{"from": "a@example.com", "text": "hi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	msg := decode[map[string]any](t, env.Data)
	assert.Equal(t, "sent", msg["status"])

	w, env = s.do(t, http.MethodPatch, "/api/chats/"+chatID+"/messages/"+msg["id"].(string)+"/status", map[string]any{"status": "read"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "read", decode[map[string]any](t, env.Data)["status"])

	w, env = s.do(t, http.MethodGet, "/api/chats?email=b@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rooms := decode[[]map[string]any](t, env.Data)
	require.Len(t, rooms, 1)
	last, ok := rooms[0]["lastMessage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hi", last["text"])

	w, _ = s.do(t, http.MethodPost, "/api/chats", map[string]any{"participants": []string{"a@example.com"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/chats/chat_1_00000000/messages", map[string]any{"from": "a@example.com", "text": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductsAndRatings(t *testing.T) {
	s := newTestServer(t, "test")

	w, _ := s.do(t, http.MethodPost, "/api/products", map[string]any{
		"upcyclerEmail": "maker@example.com",
		"title":         "Лампа",
		"steps":         []string{"вырезать", "собрать"},
		"price":         1200,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := s.do(t, http.MethodGet, "/api/upcyclers/maker@example.com/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, _ = s.do(t, http.MethodPost, "/api/ratings", map[string]any{"partnerEmail": "maker@example.com", "byEmail": "d@example.com", "rating": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = s.do(t, http.MethodGet, "/api/partners/maker@example.com/ratings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)
}

func TestSurplusUpload(t *testing.T) {
	s := newTestServer(t, "test")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Остатки плитки"))
	fw, err := mw.CreateFormFile("images", "tile.png")
	require.NoError(t, err)
	_, err = fw.Write(append(pngHeader, make([]byte, 64)...))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/surplus", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	item := decode[map[string]any](t, env.Data)
	assert.Equal(t, "Остатки плитки", item["title"])
	images := item["images"].([]any)
	require.Len(t, images, 1)

	entries, err := os.ReadDir(s.uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	w2, env2 := s.do(t, http.MethodGet, "/api/surplus", nil)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Len(t, decode[[]map[string]any](t, env2.Data), 1)
}

func TestSurplusUpload_RejectsDisguisedFile(t *testing.T) {
	s := newTestServer(t, "test")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("images", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write(append(pngHeader, make([]byte, 64)...))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/surplus", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	entries, err := os.ReadDir(s.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStaticFallback(t *testing.T) {
	s := newTestServer(t, "test")

	w, _ := s.do(t, http.MethodGet, "/app.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w, _ = s.do(t, http.MethodGet, "/market/some/deep/link", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recy")

	w, env := s.do(t, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
}

func TestSeed_OnlyInDevelopment(t *testing.T) {
	prod := newTestServer(t, "production")
	w, _ := prod.do(t, http.MethodPost, "/api/seed", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	dev := newTestServer(t, "development")
	w, env := dev.do(t, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, decode[map[string]any](t, env.Data)["resourceIds"], 5)

	w, env = dev.do(t, http.MethodGet, "/api/resources", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 5)
}
