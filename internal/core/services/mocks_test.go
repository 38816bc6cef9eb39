package services_test

import (
	"context"
	"sync/atomic"

	"github.com/lcodev/ecom_backend/internal/core/domain"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, limit, offset)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindSession(ctx context.Context, userID string) (*domain.Session, error) {
	args := m.Called(ctx, userID)
	var session *domain.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.Session)
	}
	return session, args.Error(1)
}

// UpdateSession applies fn to the session passed as the first return
// argument, mirroring the store contract.
func (m *MockSessionRepository) UpdateSession(ctx context.Context, userID string, fn portsrepo.SessionMutator) error {
	args := m.Called(ctx, userID, fn)
	if current, ok := args.Get(0).(domain.Session); ok {
		if _, err := fn(current); err != nil {
			return err
		}
	}
	return args.Error(1)
}

var _ portsrepo.SessionRepositoryFacade = (*MockSessionRepository)(nil)

// --- Mock SessionChecker ---
type MockSessionChecker struct {
	mock.Mock
}

func (m *MockSessionChecker) ValidateSession(ctx context.Context, userID, token string) bool {
	return m.Called(ctx, userID, token).Bool(0)
}

func (m *MockSessionChecker) Authenticate(ctx context.Context, userID, token string) (*domain.User, error) {
	args := m.Called(ctx, userID, token)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock PaymentGateway ---
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) GenerateClientToken(ctx context.Context, customerID string) (string, error) {
	args := m.Called(ctx, customerID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Sale(ctx context.Context, req domain.SaleRequest) (*domain.PaymentTransaction, error) {
	args := m.Called(ctx, req)
	var txn *domain.PaymentTransaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.PaymentTransaction)
	}
	return txn, args.Error(1)
}

// sequenceTokens issues predictable, distinct session tokens.
type sequenceTokens struct {
	n atomic.Int64
}

func (s *sequenceTokens) NewSessionToken() (string, error) {
	const alphabet = domain.SessionTokenAlphabet
	n := s.n.Add(1)
	out := []byte("tok0000000")
	for i := len(out) - 1; i >= 3 && n > 0; i-- {
		out[i] = alphabet[n%int64(len(alphabet))]
		n /= int64(len(alphabet))
	}
	return string(out), nil
}

// recordingTracker captures analytics events.
type recordingTracker struct {
	mock.Mock
}

func (r *recordingTracker) Track(distinctID, event string, properties map[string]any) {
	r.Called(distinctID, event, properties)
}
