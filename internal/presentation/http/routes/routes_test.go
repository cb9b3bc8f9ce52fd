package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/application/service"
	"github.com/agrimarket/agrimarket-api/internal/config"
	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/infrastructure/repository"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/handler"
	"github.com/agrimarket/agrimarket-api/pkg/oauth"
	"github.com/agrimarket/agrimarket-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiTest struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupAPI(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Product{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Invoice{},
		&entity.Payment{},
		&entity.Message{},
		&entity.IdempotencyKey{},
		&entity.Sequence{},
	))

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTransactionManager(db)

	require.NoError(t, sequenceRepo.Ensure(t.Context(),
		entity.SequenceOrder, entity.SequenceInvoice, entity.SequencePayment))

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	googleOAuth := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{})

	authService := service.NewAuthService(userRepo, jwtManager, googleOAuth)
	productService := service.NewProductService(productRepo, categoryRepo, nil)
	categoryService := service.NewCategoryService(categoryRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, productRepo, invoiceRepo, userRepo, sequenceRepo, txManager)
	invoiceService := service.NewInvoiceService(invoiceRepo, orderRepo, paymentRepo, sequenceRepo, txManager)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo, sequenceRepo, txManager)
	messageService := service.NewMessageService(messageRepo)
	userService := service.NewUserService(userRepo)
	dashboardService := service.NewDashboardService(orderRepo, invoiceRepo, paymentRepo, productRepo, userRepo, messageRepo)

	handlers := &Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuth),
		Product:   handler.NewProductHandler(productService),
		Category:  handler.NewCategoryHandler(categoryService),
		Order:     handler.NewOrderHandler(orderService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, paymentService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Message:   handler.NewMessageHandler(messageService),
		User:      handler.NewUserHandler(userService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	cfg := &config.Config{
		App:       config.AppConfig{Name: "agrimarket-api-test", Env: "test"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}

	router := Setup(handlers, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	return &apiTest{router: router, db: db}
}

func (a *apiTest) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

// register creates an account and returns its access token.
func (a *apiTest) register(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"first_name": "Jean",
		"last_name":  "Dupont",
		"email":      email,
		"password":   "s3cret-passw0rd",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "s3cret-passw0rd",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := parseBody(t, w)["data"].(map[string]interface{})
	return data["access_token"].(string)
}

// registerAdmin creates an account and promotes it directly in the
// database, then logs in.
func (a *apiTest) registerAdmin(t *testing.T, email string) string {
	t.Helper()
	a.register(t, email)
	require.NoError(t, a.db.Model(&entity.User{}).
		Where("email = ?", email).
		Update("role", entity.RoleAdmin).Error)

	w := a.do(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "s3cret-passw0rd",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := parseBody(t, w)["data"].(map[string]interface{})
	return data["access_token"].(string)
}

func (a *apiTest) seedProduct(t *testing.T, name string, priceCents int64, stock int, active bool) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:          name,
		Slug:          utils.Slugify(name),
		Price:         priceCents,
		StockQuantity: stock,
		IsActive:      active,
	}
	require.NoError(t, a.db.Create(product).Error)
	return product
}

func TestHealthEndpoint(t *testing.T) {
	api := setupAPI(t)
	w := api.do(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agrimarket-api-test")
}

func TestStorefrontCatalogVisibility(t *testing.T) {
	api := setupAPI(t)
	api.seedProduct(t, "Compact Tractor", 500000, 3, true)
	api.seedProduct(t, "Retired Combine", 4000000, 1, false)
	adminToken := api.registerAdmin(t, "admin@example.com")

	// Anonymous visitors only see active products, with decimal prices
	w := api.do(t, "GET", "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := parseBody(t, w)["data"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)
	product := items[0].(map[string]interface{})
	assert.Equal(t, "Compact Tractor", product["name"])
	assert.Equal(t, 5000.0, product["price"])

	// Admins see the full catalogue
	w = api.do(t, "GET", "/api/v1/products", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseBody(t, w)["data"].(map[string]interface{})["items"].([]interface{}), 2)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	api := setupAPI(t)
	userToken := api.register(t, "jean@example.com")

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/admin/dashboard"},
		{"GET", "/api/v1/admin/orders"},
		{"GET", "/api/v1/admin/invoices"},
		{"GET", "/api/v1/admin/payments"},
		{"GET", "/api/v1/admin/users"},
		{"GET", "/api/v1/admin/messages"},
	}

	for _, p := range paths {
		w := api.do(t, p.method, p.path, userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, p.path)

		w = api.do(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, p.path)
	}
}

func TestOrderToPaymentLifecycle(t *testing.T) {
	api := setupAPI(t)
	product := api.seedProduct(t, "Compact Tractor", 100000, 20, true)
	userToken := api.register(t, "jean@example.com")
	adminToken := api.registerAdmin(t, "admin@example.com")

	// A checkout whose declared total disagrees with the cart is refused
	w := api.do(t, "POST", "/api/v1/orders", userToken, map[string]interface{}{
		"customer_name":    "Jean Dupont",
		"customer_email":   "jean@example.com",
		"delivery_address": "12 rue des Champs",
		"delivery_city":    "Toulouse",
		"total_amount":     9500.0,
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 10},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Order total mismatch")

	// Customer places an order of 10 x 1000.00
	w = api.do(t, "POST", "/api/v1/orders", userToken, map[string]interface{}{
		"customer_name":    "Jean Dupont",
		"customer_email":   "jean@example.com",
		"delivery_address": "12 rue des Champs",
		"delivery_city":    "Toulouse",
		"total_amount":     10000.0,
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 10},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderData := parseBody(t, w)["data"].(map[string]interface{})["order"].(map[string]interface{})
	orderID := orderData["id"].(string)
	assert.Equal(t, "CMD-000001", orderData["order_number"])
	assert.Equal(t, 10000.0, orderData["total_amount"])
	assert.Equal(t, "Pending", orderData["status"])

	// Admin derives the invoice: 1000.00 order + 190.00 tax - 50.00 discount
	w = api.do(t, "POST", "/api/v1/admin/invoices", adminToken, map[string]interface{}{
		"order_id":        orderID,
		"tax_amount":      190.0,
		"discount_amount": 50.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	invoiceData := parseBody(t, w)["data"].(map[string]interface{})["invoice"].(map[string]interface{})
	invoiceID := invoiceData["id"].(string)
	assert.Equal(t, "FAC-000001", invoiceData["invoice_number"])
	assert.Equal(t, 10140.0, invoiceData["total_amount"])
	assert.Equal(t, 10140.0, invoiceData["remaining_amount"])

	// A second derivation for the same order is rejected
	w = api.do(t, "POST", "/api/v1/admin/invoices", adminToken, map[string]interface{}{
		"order_id": orderID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Two partial payments settle the invoice
	w = api.do(t, "POST", "/api/v1/admin/payments", adminToken, map[string]interface{}{
		"invoice_id": invoiceID,
		"amount":     5000.0,
		"method":     "BankTransfer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, "POST", "/api/v1/admin/payments", adminToken, map[string]interface{}{
		"invoice_id": invoiceID,
		"amount":     5140.0,
		"method":     "Check",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Overpayment on a settled invoice is rejected
	w = api.do(t, "POST", "/api/v1/admin/payments", adminToken, map[string]interface{}{
		"invoice_id": invoiceID,
		"amount":     0.01,
		"method":     "Cash",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The invoice is paid and carries its two-entry ledger
	w = api.do(t, "GET", "/api/v1/admin/invoices/"+invoiceID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	invoiceData = parseBody(t, w)["data"].(map[string]interface{})["invoice"].(map[string]interface{})
	assert.Equal(t, "Paid", invoiceData["status"])
	assert.Equal(t, 0.0, invoiceData["remaining_amount"])

	w = api.do(t, "GET", "/api/v1/admin/invoices/"+invoiceID+"/payments", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	ledger := parseBody(t, w)["data"].(map[string]interface{})["payments"].([]interface{})
	assert.Len(t, ledger, 2)

	// An invoice with payments cannot be deleted
	w = api.do(t, "DELETE", "/api/v1/admin/invoices/"+invoiceID, adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Neither can its order
	w = api.do(t, "DELETE", "/api/v1/admin/orders/"+orderID, adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderOwnershipIsolation(t *testing.T) {
	api := setupAPI(t)
	product := api.seedProduct(t, "Drum Mower", 200000, 10, true)
	ownerToken := api.register(t, "owner@example.com")
	otherToken := api.register(t, "other@example.com")

	w := api.do(t, "POST", "/api/v1/orders", ownerToken, map[string]interface{}{
		"customer_name":    "Jean Dupont",
		"customer_email":   "owner@example.com",
		"delivery_address": "12 rue des Champs",
		"delivery_city":    "Toulouse",
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := parseBody(t, w)["data"].(map[string]interface{})["order"].(map[string]interface{})["id"].(string)

	// The owner reads it, another customer cannot
	w = api.do(t, "GET", "/api/v1/orders/"+orderID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, "GET", "/api/v1/orders/"+orderID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Each customer's list only contains their own orders
	w = api.do(t, "GET", "/api/v1/orders", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	otherItems, _ := parseBody(t, w)["data"].(map[string]interface{})["items"].([]interface{})
	assert.Empty(t, otherItems)
}

func TestContactFormAndMessageLifecycle(t *testing.T) {
	api := setupAPI(t)
	adminToken := api.registerAdmin(t, "admin@example.com")

	w := api.do(t, "POST", "/api/v1/contact", "", map[string]interface{}{
		"name":    "Pierre Martin",
		"email":   "pierre@example.com",
		"subject": "Spare parts availability",
		"body":    "Do you stock blades for the drum mower?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	messageID := parseBody(t, w)["data"].(map[string]interface{})["message"].(map[string]interface{})["id"].(string)

	// Reading the message marks it read
	w = api.do(t, "GET", "/api/v1/admin/messages/"+messageID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	message := parseBody(t, w)["data"].(map[string]interface{})["message"].(map[string]interface{})
	assert.Equal(t, "Read", message["status"])

	// Missing required fields are rejected
	w = api.do(t, "POST", "/api/v1/contact", "", map[string]interface{}{
		"name": "Anonymous",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderCreationIdempotency(t *testing.T) {
	api := setupAPI(t)
	product := api.seedProduct(t, "Field Sprayer", 300000, 10, true)
	userToken := api.register(t, "jean@example.com")

	body := map[string]interface{}{
		"customer_name":    "Jean Dupont",
		"customer_email":   "jean@example.com",
		"delivery_address": "12 rue des Champs",
		"delivery_city":    "Toulouse",
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 2},
		},
	}

	do := func() *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+userToken)
		req.Header.Set("Idempotency-Key", "checkout-42")
		w := httptest.NewRecorder()
		api.router.ServeHTTP(w, req)
		return w
	}

	first := do()
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	// The retry replays the cached response instead of placing a
	// second order or taking more stock.
	second := do()
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	var count int64
	api.db.Model(&entity.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var stocked entity.Product
	require.NoError(t, api.db.First(&stocked, "id = ?", product.ID).Error)
	assert.Equal(t, 8, stocked.StockQuantity)
}

func TestUserRoleManagement(t *testing.T) {
	api := setupAPI(t)
	adminToken := api.registerAdmin(t, "admin@example.com")
	api.register(t, "jean@example.com")

	var admin, user entity.User
	require.NoError(t, api.db.First(&admin, "email = ?", "admin@example.com").Error)
	require.NoError(t, api.db.First(&user, "email = ?", "jean@example.com").Error)

	// Promote the customer
	w := api.do(t, "PATCH", "/api/v1/admin/users/"+user.ID.String()+"/role", adminToken, map[string]interface{}{
		"role": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Admins cannot change their own role
	w = api.do(t, "PATCH", "/api/v1/admin/users/"+admin.ID.String()+"/role", adminToken, map[string]interface{}{
		"role": "user",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot change your own role")
}

func TestAdminUserDetailIncludesOrderHistory(t *testing.T) {
	api := setupAPI(t)
	product := api.seedProduct(t, "Compact Tractor", 100000, 5, true)
	userToken := api.register(t, "jean@example.com")
	adminToken := api.registerAdmin(t, "admin@example.com")

	w := api.do(t, "POST", "/api/v1/orders", userToken, map[string]interface{}{
		"customer_name":    "Jean Dupont",
		"customer_email":   "jean@example.com",
		"delivery_address": "12 rue des Champs",
		"delivery_city":    "Toulouse",
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user entity.User
	require.NoError(t, api.db.First(&user, "email = ?", "jean@example.com").Error)

	w = api.do(t, "GET", "/api/v1/admin/users/"+user.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	userData := parseBody(t, w)["data"].(map[string]interface{})["user"].(map[string]interface{})
	orders, ok := userData["orders"].([]interface{})
	require.True(t, ok, "user detail should embed the order history")
	require.Len(t, orders, 1)
	assert.Equal(t, "CMD-000001", orders[0].(map[string]interface{})["order_number"])
}
