package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	catalogHTTP "github.com/allisson/catalog/internal/catalog/http"
	"github.com/allisson/catalog/internal/catalog/usecase/mocks"
	"github.com/allisson/catalog/internal/config"
	"github.com/allisson/catalog/internal/metrics"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// staticTokenService accepts exactly one plain token.
type staticTokenService struct {
	token string
}

func (s *staticTokenService) Generate() (string, string, error) { return s.token, "hash", nil }
func (s *staticTokenService) Hash(string) (string, error) { return "hash", nil }
func (s *staticTokenService) Verify(plain, _ string) bool { return plain == s.token }

func createTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(nil, "localhost", 8080, logger)
}

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:         "info",
		MetricsNamespace: "catalog_test",
	}
}

// setupTestRouter wires a Server with mocked use cases behind the real route table.
func setupTestRouter(
	t *testing.T,
	cfg *config.Config,
) (*Server, *mocks.MockProductUseCase) {
	t.Helper()

	server := createTestServer()
	products := &mocks.MockProductUseCase{}
	categories := &mocks.MockCategoryUseCase{}
	materials := &mocks.MockMaterialUseCase{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server.SetupRouter(
		ctx,
		cfg,
		catalogHTTP.NewProductHandler(products, server.logger),
		catalogHTTP.NewReferenceHandler(categories, materials, server.logger),
		&staticTokenService{token: "letmein"},
		nil,
	)
	gin.SetMode(gin.TestMode)

	return server, products
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler_NotReady_NilDB(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "error", components["database"])
}

func TestCustomLoggerMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"test"}`, w.Body.String())
}

func TestCustomLoggerMiddleware_LogsRequestID(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string { return "req-1" })))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing?x=1", nil))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"query":"x=1"`)
}

func TestCustomLoggerMiddleware_RedactsSKUQuery(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/api/products", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?sku=SECRET-SKU-42&page=2", nil))

	out := buf.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, out, "SECRET-SKU-42")
	assert.Contains(t, out, "page=2")
	assert.Contains(t, out, "sku=%5BREDACTED%5D")
}

func TestRedactQuery(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		expected string
	}{
		{"Empty", "", ""},
		{"NoSKUKeptVerbatim", "page=2&limit=10", "page=2&limit=10"},
		{"SKUMasked", "sku=ABC-100&page=1", "page=1&sku=%5BREDACTED%5D"},
		{"RepeatedSKUMasked", "sku=A&sku=B", "sku=%5BREDACTED%5D"},
		{"Unparseable", "sku=%zz", "[UNPARSEABLE]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redactQuery(&url.URL{RawQuery: tt.rawQuery})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_HealthAndReady(t *testing.T) {
	server, _ := setupTestRouter(t, testConfig())

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server, _ := setupTestRouter(t, testConfig())

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ProductRoutes(t *testing.T) {
	t.Run("StatsRouteIsNotAProductID", func(t *testing.T) {
		server, products := setupTestRouter(t, testConfig())
		products.On("Statistics", mock.Anything).Return(&catalogDomain.Statistics{}, nil).Once()

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/stats/all", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		products.AssertExpectations(t)
	})

	t.Run("GetByID", func(t *testing.T) {
		server, products := setupTestRouter(t, testConfig())
		products.On("Get", mock.Anything, int64(5)).Return(nil, catalogDomain.ErrProductNotFound).Once()

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/5", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		products.AssertExpectations(t)
	})

	t.Run("WritesOpenWithoutAdminHash", func(t *testing.T) {
		server, products := setupTestRouter(t, testConfig())
		products.On("Delete", mock.Anything, int64(9)).Return(nil).Once()

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/products/9", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		products.AssertExpectations(t)
	})
}

func TestRouter_AdminTokenGuardsWrites(t *testing.T) {
	cfg := testConfig()
	cfg.AdminTokenHash = "configured"

	t.Run("MissingToken", func(t *testing.T) {
		server, products := setupTestRouter(t, cfg)

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/products/9", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("ValidToken", func(t *testing.T) {
		server, products := setupTestRouter(t, cfg)
		products.On("Delete", mock.Anything, int64(9)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/products/9", nil)
		req.Header.Set("Authorization", "Bearer letmein")
		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		products.AssertExpectations(t)
	})

	t.Run("ReadsStayOpen", func(t *testing.T) {
		server, products := setupTestRouter(t, cfg)
		products.On("Get", mock.Anything, int64(1)).Return(nil, catalogDomain.ErrProductNotFound).Once()

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/1", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_RateLimitAppliesToAPI(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequestsPerSec = 0.001
	cfg.RateLimitBurst = 1

	server, products := setupTestRouter(t, cfg)
	products.On("Get", mock.Anything, int64(1)).Return(nil, catalogDomain.ErrProductNotFound).Once()

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/1", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// health checks sit outside the limited group
	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := createTestServer()
	assert.Error(t, server.Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewServer(nil, "127.0.0.1", 0, logger)
	server.SetupRouter(
		context.Background(),
		testConfig(),
		catalogHTTP.NewProductHandler(&mocks.MockProductUseCase{}, logger),
		catalogHTTP.NewReferenceHandler(&mocks.MockCategoryUseCase{}, &mocks.MockMaterialUseCase{}, logger),
		&staticTokenService{},
		nil,
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_NoMetricsEndpoint(t *testing.T) {
	server, _ := setupTestRouter(t, testConfig())

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
