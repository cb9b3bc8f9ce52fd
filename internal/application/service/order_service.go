package service

import (
	"context"
	"fmt"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/pkg/apperror"
	"github.com/agrimarket/agrimarket-api/pkg/money"
	"github.com/agrimarket/agrimarket-api/pkg/utils"
	"github.com/google/uuid"
)

// OrderService handles order-related operations
type OrderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	productRepo   repository.ProductRepository
	invoiceRepo   repository.InvoiceRepository
	userRepo      repository.UserRepository
	sequenceRepo  repository.SequenceRepository
	txManager     repository.TransactionManager
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	sequenceRepo repository.SequenceRepository,
	txManager repository.TransactionManager,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		invoiceRepo:   invoiceRepo,
		userRepo:      userRepo,
		sequenceRepo:  sequenceRepo,
		txManager:     txManager,
	}
}

// OrderItemInput represents an item in an order request. UnitPrice is
// in cents; when nil the current catalogue price is used.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *int64
}

// CreateOrderInput represents the create order input. Customer contact
// and delivery fields are snapshotted onto the order as-is. TotalAmount
// is the caller's declared total in cents; when set it must match the
// computed total within money.TotalToleranceCents.
type CreateOrderInput struct {
	UserID             uuid.UUID
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	DeliveryAddress    string
	DeliveryCity       string
	DeliveryPostalCode string
	Notes              *string
	TotalAmount        *int64
	Items              []OrderItemInput
}

// CreateOrder creates a storefront order in pending status
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	return s.createOrder(ctx, input, enum.OrderStatusPending)
}

// CreateOrderAsAdmin creates a back-office order that skips the pending
// step and starts out confirmed.
func (s *OrderService) CreateOrderAsAdmin(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	return s.createOrder(ctx, input, enum.OrderStatusConfirmed)
}

func (s *OrderService) createOrder(ctx context.Context, input *CreateOrderInput, status enum.OrderStatus) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must contain at least one item")
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	// Merge duplicate product lines so the stock guard sees the real
	// quantity per product.
	quantities := make(map[uuid.UUID]int, len(input.Items))
	priceOverrides := make(map[uuid.UUID]int64, len(input.Items))
	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.UnitPrice != nil {
			if *item.UnitPrice < 0 {
				return nil, apperror.NewBadRequestError("Item unit price cannot be negative")
			}
			priceOverrides[item.ProductID] = *item.UnitPrice
		}
		if _, seen := quantities[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	var created *entity.Order

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		products, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		productMap := make(map[uuid.UUID]*entity.Product, len(products))
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}

		var total int64
		items := make([]entity.OrderItem, 0, len(productIDs))

		for _, id := range productIDs {
			product, exists := productMap[id]
			if !exists {
				return apperror.NewNotFoundError(fmt.Sprintf("Product %s", id))
			}
			if !product.IsActive {
				return apperror.NewBadRequestError(fmt.Sprintf("Product %s is no longer available", product.Name))
			}

			quantity := quantities[id]

			// Guarded decrement: fails when a concurrent order took the
			// remaining stock first.
			ok, err := s.productRepo.DecrementStock(ctx, id, quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewBadRequestError(fmt.Sprintf(
					"Insufficient stock for %s (available: %d)", product.Name, product.StockQuantity))
			}

			// Unit price snapshot: catalogue price unless the caller
			// supplied one (admin orders may override).
			unitPrice := product.Price
			if override, ok := priceOverrides[id]; ok {
				unitPrice = override
			}
			itemTotal := unitPrice * int64(quantity)
			total += itemTotal
			items = append(items, entity.OrderItem{
				ProductID: id,
				Quantity:  quantity,
				UnitPrice: unitPrice,
				Total:     itemTotal,
			})
		}

		if input.TotalAmount != nil {
			diff := total - *input.TotalAmount
			if diff < 0 {
				diff = -diff
			}
			if diff > money.TotalToleranceCents {
				return apperror.NewBadRequestError(fmt.Sprintf(
					"Order total mismatch: declared %.2f but items sum to %.2f",
					money.ToDecimal(*input.TotalAmount), money.ToDecimal(total)))
			}
		}

		seq, err := s.sequenceRepo.Next(ctx, entity.SequenceOrder)
		if err != nil {
			return err
		}

		order := &entity.Order{
			OrderNumber:        utils.FormatSequenceNumber("CMD", seq),
			UserID:             input.UserID,
			Status:             status,
			TotalAmount:        total,
			CustomerName:       input.CustomerName,
			CustomerEmail:      input.CustomerEmail,
			CustomerPhone:      input.CustomerPhone,
			DeliveryAddress:    input.DeliveryAddress,
			DeliveryCity:       input.DeliveryCity,
			DeliveryPostalCode: input.DeliveryPostalCode,
			Notes:              input.Notes,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.CreateBatch(ctx, items); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, created.ID)
}

// GetOrder retrieves an order with its items and invoice
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// GetOrderForUser retrieves an order, restricted to its owner
func (s *OrderService) GetOrderForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return order, nil
}

// ListOrders returns a filtered page of orders
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// UpdateOrderStatus moves the order along its lifecycle. Transitions
// only move forward; delivered and cancelled orders are terminal.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid order status")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, apperror.NewBadRequestError(fmt.Sprintf(
			"Cannot change order status from %s to %s", order.Status, status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orderRepo.GetWithDetails(ctx, id)
}

// CancelOrder cancels an order that has not shipped yet. Stock is not
// restocked automatically; returns go through a catalogue adjustment.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return s.UpdateOrderStatus(ctx, id, enum.OrderStatusCancelled)
}

// DeleteOrder removes an order that has no invoice
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	invoice, err := s.invoiceRepo.GetByOrderID(ctx, id)
	if err != nil {
		return err
	}
	if invoice != nil {
		return apperror.NewConflictError("Cannot delete an order that has an invoice")
	}

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderItemRepo.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		return s.orderRepo.Delete(ctx, id)
	})
}
