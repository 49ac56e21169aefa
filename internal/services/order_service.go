package services

import (
	"context"
	"errors"
	"puredrop/internal/auth"
	"puredrop/internal/dashboard"
	"puredrop/internal/models"
	"puredrop/internal/repository"
	"time"

	"github.com/sirupsen/logrus"
)

type OrderService interface {
	ListMyOrders(ctx context.Context, identity auth.Identity, filter models.OrderFilter) ([]models.Order, error)
	UpdateDeliveryStatus(ctx context.Context, identity auth.Identity, orderID string, status models.DeliveryStatus) (*models.Order, error)
	Stats(ctx context.Context, identity auth.Identity, now time.Time) (*dashboard.Summary, error)
	// CreateOrder records an order arriving from the ordering channel.
	CreateOrder(ctx context.Context, order *models.Order) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	ownerRepo repository.OwnerRepository
	location  *time.Location
	logger    *logrus.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, ownerRepo repository.OwnerRepository, location *time.Location, logger *logrus.Logger) OrderService {
	if location == nil {
		location = time.Local
	}
	return &orderService{orderRepo: orderRepo, ownerRepo: ownerRepo, location: location, logger: logger}
}

func (s *orderService) ListMyOrders(ctx context.Context, identity auth.Identity, filter models.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, newError(KindValidation, "Invalid delivery status")
	}

	orders, err := s.orderRepo.ListByShop(ctx, identity.Phone, filter)
	if err != nil {
		return nil, internalError("failed to fetch orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// UpdateDeliveryStatus moves an order to status. Any transition between the
// known statuses is allowed, but only the owning shop may make it.
func (s *orderService) UpdateDeliveryStatus(ctx context.Context, identity auth.Identity, orderID string, status models.DeliveryStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, newError(KindValidation, "Invalid delivery status")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.lookupError(err)
	}
	if order.ShopPhone != identity.Phone {
		s.logger.WithFields(logrus.Fields{
			"order_id":   orderID,
			"shop_phone": identity.Phone,
		}).Warn("Rejected status update on another shop's order")
		return nil, newError(KindForbidden, "You can only update your own shop's orders")
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, s.lookupError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"from":     order.DeliveryStatus,
		"to":       status,
	}).Info("Delivery status updated")
	return updated, nil
}

func (s *orderService) lookupError(err error) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return newError(KindValidation, "Invalid order id")
	case errors.Is(err, repository.ErrNotFound):
		return newError(KindNotFound, "Order not found")
	default:
		return internalError("failed to update order", err)
	}
}

func (s *orderService) Stats(ctx context.Context, identity auth.Identity, now time.Time) (*dashboard.Summary, error) {
	orders, err := s.ListMyOrders(ctx, identity, models.OrderFilter{})
	if err != nil {
		return nil, err
	}
	summary := dashboard.Summarize(orders, now, s.location)
	return &summary, nil
}

func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.DeliveryStatus == "" {
		order.DeliveryStatus = models.StatusPending
	}
	if !order.DeliveryStatus.Valid() {
		return newError(KindValidation, "Invalid delivery status")
	}
	items := order.OrderItems
	if items.WaterTins < 0 || items.CoolingWaterTins < 0 || items.WaterBottles < 0 || items.WaterPackers < 0 {
		return newError(KindValidation, "Order quantities cannot be negative")
	}
	if order.Amount < 0 {
		return newError(KindValidation, "Order amount cannot be negative")
	}

	owner, err := s.ownerRepo.GetByPhone(ctx, order.ShopPhone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(KindNotFound, "Shop not found")
		}
		return internalError("failed to look up shop", err)
	}

	// snapshot of the shop at ordering time, not kept in sync afterwards
	order.ShopName = owner.ShopName
	order.ShopOwner = owner.OwnerName
	order.ShopAddress = owner.Address
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return internalError("failed to create order", err)
	}
	return nil
}
