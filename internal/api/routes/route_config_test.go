package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitescan-api/domain"
	"bitescan-api/internal/api/handlers"
	"bitescan-api/internal/api/presenters"
	"bitescan-api/internal/middleware"
	"bitescan-api/pkg/jwt"
	"bitescan-api/pkg/nutrition"
	"bitescan-api/pkg/ocr"
	"bitescan-api/pkg/receipt"
	"bitescan-api/pkg/user"
)

// Stub services capture what reaches the service layer so routing, auth and
// error mapping can be checked end to end over HTTP.

type stubReceiptService struct {
	submitted *domain.SubmitReceiptRequest
	userID    string
	err       error
}

func (s *stubReceiptService) SubmitReceipt(ctx context.Context, req domain.SubmitReceiptRequest, userID string) (domain.ReceiptResponse, error) {
	s.submitted = &req
	s.userID = userID
	if s.err != nil {
		return domain.ReceiptResponse{}, s.err
	}
	return domain.ReceiptResponse{ID: req.ID, Store: req.Store}, nil
}

func (s *stubReceiptService) GetReceipts(ctx context.Context, userID string) ([]domain.ReceiptResponse, error) {
	return nil, s.err
}

func (s *stubReceiptService) DeleteReceipt(ctx context.Context, receiptID, userID string) error {
	return s.err
}

func (s *stubReceiptService) ScanToDraft(ctx context.Context, image []byte, contentType string, userID string) (domain.ScanToDraftResponse, error) {
	if s.err != nil {
		return domain.ScanToDraftResponse{}, s.err
	}
	return domain.ScanToDraftResponse{Items: []domain.DraftItem{}}, nil
}

var _ receipt.ReceiptService = (*stubReceiptService)(nil)

type stubNutritionService struct{ err error }

func (s *stubNutritionService) EnrichItems(ctx context.Context, items []domain.NutritionItem) ([]domain.NutritionItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return items, nil
}

func (s *stubNutritionService) Search(ctx context.Context, query string) (domain.SearchNutritionResponse, error) {
	if s.err != nil {
		return domain.SearchNutritionResponse{}, s.err
	}
	return domain.SearchNutritionResponse{
		Suggestions: []domain.NutritionSuggestion{{Name: query}},
	}, nil
}

var _ nutrition.NutritionService = (*stubNutritionService)(nil)

type stubOcrService struct{}

func (stubOcrService) ScanReceipt(ctx context.Context, req domain.ScanReceiptRequest) (domain.ScanReceiptResponse, error) {
	return domain.ScanReceiptResponse{Items: []domain.NormalizedItem{}}, nil
}

var _ ocr.OcrService = stubOcrService{}

type stubUserService struct{}

func (stubUserService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	return domain.RegisterResponse{Email: req.Email, Username: req.Username}, nil
}

func (stubUserService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	return domain.LoginResponse{Token: "token"}, nil
}

func (stubUserService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	return domain.UserResponse{ID: userID}, nil
}

func (stubUserService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) error {
	return nil
}

func (stubUserService) DeactivateUser(ctx context.Context, userID string) error {
	return nil
}

var _ user.UserService = stubUserService{}

type testEnv struct {
	app        *fiber.App
	jwtService jwt.JWTService
	receipts   *stubReceiptService
	nutrition  *stubNutritionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	v := validator.New()
	jwtService := jwt.NewJWTService("test-secret")
	receipts := &stubReceiptService{}
	nutritionStub := &stubNutritionService{}

	app := fiber.New()
	cfg := Config{
		App:              app,
		UserHandler:      handlers.NewUserHandler(stubUserService{}, v),
		ReceiptHandler:   handlers.NewReceiptHandler(receipts, v),
		OcrHandler:       handlers.NewOcrHandler(stubOcrService{}, v),
		NutritionHandler: handlers.NewNutritionHandler(nutritionStub, v),
		SystemHandler:    handlers.NewSystemHandler(),
		Middleware:       middleware.NewMiddleware(),
		JWTService:       jwtService,
	}
	cfg.Setup()

	return &testEnv{app: app, jwtService: jwtService, receipts: receipts, nutrition: nutritionStub}
}

func (e *testEnv) authHeader(userID string) string {
	return "Bearer " + e.jwtService.GenerateTokenUser(userID, domain.RoleUser)
}

func decodeResponse(t *testing.T, resp *http.Response) presenters.Response {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out presenters.Response
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestHealthRoute(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/sys/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodPost, "/api/v1/ocr"},
		{http.MethodPost, "/api/v1/nutrition/items"},
		{http.MethodGet, "/api/v1/nutrition/search"},
		{http.MethodPost, "/api/v1/receipts"},
		{http.MethodGet, "/api/v1/receipts"},
	}
	for _, route := range paths {
		resp, err := env.app.Test(httptest.NewRequest(route.method, route.path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitReceiptRoute(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New().String()

	body, err := json.Marshal(domain.SubmitReceiptRequest{
		Store:        "Costco",
		PurchaseDate: "2026-08-30",
		Items:        []domain.SubmitReceiptItem{{Name: "Bananas"}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", env.authHeader(userID))

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResponse(t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, domain.MessageSuccessSubmitReceipt, out.Message)

	// The token's user id, not anything from the body, reaches the service.
	require.NotNil(t, env.receipts.submitted)
	assert.Equal(t, userID, env.receipts.userID)
	assert.Equal(t, "Costco", env.receipts.submitted.Store)
}

func TestSubmitReceiptRouteValidation(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts",
		bytes.NewReader([]byte(`{"store":"Costco"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", env.authHeader(uuid.New().String()))

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, env.receipts.submitted, "invalid body must not reach the service")
}

func TestDeleteReceiptRouteErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	env.receipts.err = domain.ErrReceiptNotFound

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/receipts/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", env.authHeader(uuid.New().String()))

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEnrichItemsRouteUpstreamErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	env.nutrition.err = domain.ErrProviderUnavailable

	req := httptest.NewRequest(http.MethodPost, "/api/v1/nutrition/items",
		bytes.NewReader([]byte(`{"items":[{"name":"Bananas"}]}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", env.authHeader(uuid.New().String()))

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestNutritionSearchRoute(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nutrition/search?query=banana", nil)
	req.Header.Set("Authorization", env.authHeader(uuid.New().String()))

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("missing query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/nutrition/search", nil)
		req.Header.Set("Authorization", env.authHeader(uuid.New().String()))

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestScanToDraftRoute(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("receipt_image", "receipt.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-image"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/scan", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", env.authHeader(uuid.New().String()))

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/scan", nil)
		req.Header.Set("Authorization", env.authHeader(uuid.New().String()))

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
