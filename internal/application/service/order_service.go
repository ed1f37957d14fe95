package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/pagination"
)

// OrderService reads completed orders and processes whole-order
// returns.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	shifts      *ShiftService
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, shifts *ShiftService) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo, shifts: shifts}
}

// GetOrder retrieves an order with its lines and tenders
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

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ReturnOrder reverses a completed order: restores stock and records
// return transactions on the terminal's open shift. Returns need an
// elevated role; the correction is a new, separately recorded action,
// never an edit of the original order.
func (s *OrderService) ReturnOrder(ctx context.Context, orderID uuid.UUID, actor *entity.User) (*entity.Order, error) {
	if !actor.Role.AtLeast(enum.RoleManager) {
		return nil, apperror.ErrForbidden
	}

	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == entity.OrderStatusReturned {
		return nil, apperror.NewConflictError("Order is already returned")
	}

	increments := make(map[uuid.UUID]int)
	for i := range order.Lines {
		increments[order.Lines[i].ProductID] += order.Lines[i].Quantity
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return nil, err
	}

	if err := s.shifts.RecordReturn(ctx, order.TerminalID, order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, entity.OrderStatusReturned); err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusReturned
	return order, nil
}
