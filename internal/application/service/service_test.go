package service

import (
	"context"
	"testing"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	domainRepo "github.com/agrimarket/agrimarket-api/internal/domain/repository"
	infra "github.com/agrimarket/agrimarket-api/internal/infrastructure/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack against an in-memory database.
type testEnv struct {
	db *gorm.DB

	orderService    *OrderService
	invoiceService  *InvoiceService
	paymentService  *PaymentService
	productService  *ProductService
	categoryService *CategoryService
	messageService  *MessageService
	userService     *UserService

	orderRepo   domainRepo.OrderRepository
	invoiceRepo domainRepo.InvoiceRepository
	paymentRepo domainRepo.PaymentRepository
	productRepo domainRepo.ProductRepository
	userRepo    domainRepo.UserRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
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
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	userRepo := infra.NewUserRepository(db)
	productRepo := infra.NewProductRepository(db)
	categoryRepo := infra.NewCategoryRepository(db)
	orderRepo := infra.NewOrderRepository(db)
	orderItemRepo := infra.NewOrderItemRepository(db)
	invoiceRepo := infra.NewInvoiceRepository(db)
	paymentRepo := infra.NewPaymentRepository(db)
	messageRepo := infra.NewMessageRepository(db)
	sequenceRepo := infra.NewSequenceRepository(db)
	txManager := infra.NewTransactionManager(db)

	require.NoError(t, sequenceRepo.Ensure(context.Background(),
		entity.SequenceOrder, entity.SequenceInvoice, entity.SequencePayment))

	return &testEnv{
		db:              db,
		orderService:    NewOrderService(orderRepo, orderItemRepo, productRepo, invoiceRepo, userRepo, sequenceRepo, txManager),
		invoiceService:  NewInvoiceService(invoiceRepo, orderRepo, paymentRepo, sequenceRepo, txManager),
		paymentService:  NewPaymentService(paymentRepo, invoiceRepo, sequenceRepo, txManager),
		productService:  NewProductService(productRepo, categoryRepo, nil),
		categoryService: NewCategoryService(categoryRepo),
		messageService:  NewMessageService(messageRepo),
		userService:     NewUserService(userRepo),
		orderRepo:       orderRepo,
		invoiceRepo:     invoiceRepo,
		paymentRepo:     paymentRepo,
		productRepo:     productRepo,
		userRepo:        userRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, email, role string) *entity.User {
	t.Helper()
	user := &entity.User{
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     email,
		Password:  "hashed",
		Role:      role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createProduct(t *testing.T, name string, priceCents int64, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:          name,
		Slug:          "slug-" + uuid.NewString(),
		Price:         priceCents,
		StockQuantity: stock,
		StockAlert:    2,
		IsActive:      true,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

// createOrder places an order through the service so totals, numbering
// and stock movements go through the real path.
func (e *testEnv) createOrder(t *testing.T, user *entity.User, items []OrderItemInput) *entity.Order {
	t.Helper()
	order, err := e.orderService.CreateOrder(context.Background(), &CreateOrderInput{
		UserID:             user.ID,
		CustomerName:       user.FullName(),
		CustomerEmail:      user.Email,
		CustomerPhone:      "0600000000",
		DeliveryAddress:    "12 rue des Champs",
		DeliveryCity:       "Toulouse",
		DeliveryPostalCode: "31000",
		Items:              items,
	})
	require.NoError(t, err)
	return order
}
