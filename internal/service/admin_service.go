package service

import (
	"context"
	"fmt"
	"time"

	"gemilang-store/internal/models"
	"gemilang-store/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminStore is the storage access the admin console needs. Satisfied by
// store.Store.
type AdminStore interface {
	GetAllOrders(ctx context.Context) ([]models.AdminOrder, error)
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	GetSpareParts(ctx context.Context) ([]models.SparePart, error)
	CreateSparePart(ctx context.Context, part *models.SparePart) error
	UpdateSparePartStock(ctx context.Context, id string, stock int) error
}

// AdminPublisher publishes admin-side order events. Satisfied by
// broker.EventPublisher.
type AdminPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
}

// AdminService backs the order and inventory management views
type AdminService struct {
	store  AdminStore
	events AdminPublisher
	logger *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(store AdminStore, events AdminPublisher) *AdminService {
	return &AdminService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// ListOrders retrieves every order with client name and company, newest first
func (as *AdminService) ListOrders(ctx context.Context) ([]models.AdminOrder, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.ListOrders")
	defer span.End()

	return as.store.GetAllOrders(ctx)
}

// UpdateOrderStatus moves an order to accepted or rejected and returns the
// updated order without a re-fetch
func (as *AdminService) UpdateOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.UpdateOrderStatus")
	defer span.End()

	if !models.ValidOrderStatusUpdate(status) {
		return nil, fmt.Errorf("status must be accepted or rejected: %w", models.ErrValidation)
	}

	order, err := as.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	oldStatus := order.Status
	if err := as.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	util.OrderStatusUpdatesTotal.WithLabelValues(status).Inc()
	as.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("old_status", oldStatus),
		zap.String("new_status", status))

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID:   orderID,
		UserID:    order.UserID,
		OldStatus: oldStatus,
		NewStatus: status,
	}

	if err := as.events.PublishOrderStatusChanged(ctx, event); err != nil {
		as.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}

	return order, nil
}

// ListParts retrieves the catalog for the inventory view
func (as *AdminService) ListParts(ctx context.Context) ([]models.SparePart, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.ListParts")
	defer span.End()

	return as.store.GetSpareParts(ctx)
}

// AddPartRequest carries the fields for a new catalog entry
type AddPartRequest struct {
	Name               string            `json:"name" binding:"required"`
	PartNumber         string            `json:"part_number" binding:"required"`
	Category           string            `json:"category"`
	Price              int64             `json:"price" binding:"required,min=1"`
	StockAvailability  int               `json:"stock_availability" binding:"min=0"`
	CompatibleVehicles []string          `json:"compatible_vehicles"`
	Description        string            `json:"description"`
	Specifications     map[string]string `json:"specifications"`
	Image              string            `json:"image"`
	AdditionalImages   []string          `json:"additional_images"`
}

// AddPart inserts a new catalog entry
func (as *AdminService) AddPart(ctx context.Context, req *AddPartRequest) (*models.SparePart, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.AddPart")
	defer span.End()

	if req.Name == "" || req.PartNumber == "" {
		return nil, fmt.Errorf("name and part_number are required: %w", models.ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be positive: %w", models.ErrValidation)
	}

	part := &models.SparePart{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		PartNumber:         req.PartNumber,
		Category:           req.Category,
		Price:              req.Price,
		StockAvailability:  req.StockAvailability,
		CompatibleVehicles: req.CompatibleVehicles,
		Description:        req.Description,
		Specifications:     req.Specifications,
		Image:              req.Image,
		AdditionalImages:   req.AdditionalImages,
	}

	if err := as.store.CreateSparePart(ctx, part); err != nil {
		return nil, fmt.Errorf("failed to create spare part: %w", err)
	}

	as.logger.Info("Spare part added",
		zap.String("part_id", part.ID),
		zap.String("part_number", part.PartNumber))

	return part, nil
}

// UpdateStock changes the stock count on a part
func (as *AdminService) UpdateStock(ctx context.Context, partID string, stock int) error {
	ctx, span := util.StartSpan(ctx, "AdminService.UpdateStock")
	defer span.End()

	if stock < 0 {
		return fmt.Errorf("stock cannot be negative: %w", models.ErrValidation)
	}

	if err := as.store.UpdateSparePartStock(ctx, partID, stock); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	return nil
}
