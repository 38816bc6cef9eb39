package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/core/ports"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
	"github.com/lcodev/ecom_backend/internal/platform/metrics"
	"github.com/lcodev/ecom_backend/internal/utils"
)

type orderService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryFacade
	userRepo  portsrepo.UserReader
	sessions  portssvc.SessionCheckerSvc
	tracker   ports.EventTracker
}

// OrderServiceOption is a functional option for configuring the order service
type OrderServiceOption func(*orderService)

// WithOrderEventTracker adds analytics tracking of placed orders.
func WithOrderEventTracker(t ports.EventTracker) OrderServiceOption {
	return func(s *orderService) {
		s.tracker = t
	}
}

// WithOrderPolicy sets the action table.
func WithOrderPolicy(p *domain.Policy) OrderServiceOption {
	return func(s *orderService) {
		s.Policy = p
	}
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryFacade,
	userRepo portsrepo.UserReader,
	sessions portssvc.SessionCheckerSvc,
	options ...OrderServiceOption,
) portssvc.OrderSvcFacade {
	svc := &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		sessions:  sessions,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// PlaceOrder checks, in order: session, method, amount, field limits, user.
// Nothing is written unless every check passes.
func (s *orderService) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*domain.Order, error) {
	if !s.sessions.ValidateSession(ctx, req.UserID, req.Token) {
		s.LogDebug(ctx, "Order rejected, session invalid", slog.String("user_id", req.UserID))
		return nil, apperrors.ErrReauthRequired
	}

	if req.Method != http.MethodPost {
		return nil, apperrors.ErrMethodNotAllowed
	}

	amount, ok := domain.ParseAmount(req.Amount)
	if !ok {
		return nil, apperrors.ErrInvalidAmount
	}
	if utf8.RuneCountInString(req.Products) > domain.MaxProductNamesLength {
		return nil, apperrors.ErrProductsTooLong
	}
	if utf8.RuneCountInString(req.TransactionID) > domain.MaxTransactionIDLength {
		return nil, apperrors.ErrTransactionTooLong
	}

	user, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		s.LogError(ctx, err, "Failed to load order owner", slog.String("user_id", req.UserID))
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	order := domain.NewOrder(user.UserID, req.TransactionID, amount, req.Products, s.Now())
	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to save order",
			slog.String("user_id", user.UserID),
			slog.String("transaction_id", req.TransactionID))
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	if s.tracker != nil {
		s.tracker.Track(user.UserID, utils.EventOrderPlaced, map[string]any{
			"order_id":       order.OrderID,
			"total_products": order.TotalProducts,
			"total_amount":   utils.FormatAmount(order.TotalAmount),
		})
	}
	s.LogInfo(ctx, "Order placed",
		slog.String("order_id", order.OrderID),
		slog.String("user_id", user.UserID),
		slog.Int("total_products", order.TotalProducts))
	return &order, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, userID, token string, limit, offset int) ([]domain.Order, error) {
	user, err := s.sessions.Authenticate(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, domain.ActionOrderListMine, user); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListOrdersByUser(ctx, user.UserID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}

func (s *orderService) ListAllOrders(ctx context.Context, requester *domain.User, limit, offset int) ([]domain.Order, error) {
	if err := s.AuthorizeUser(ctx, domain.ActionOrderListAll, requester); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListOrders(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list all orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}
