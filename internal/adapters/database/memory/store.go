// Package memory is a process-local implementation of every repository port.
// It backs STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
)

// Store holds all records behind one RWMutex. Session read-modify-writes are
// additionally serialised per user.
type Store struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	emails     map[string]string // email -> user id
	sessions   map[string]domain.Session
	orders     map[string]domain.Order
	categories map[string]domain.Category
	products   map[string]domain.Product

	locksMu   sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]domain.User),
		emails:     make(map[string]string),
		sessions:   make(map[string]domain.Session),
		orders:     make(map[string]domain.Order),
		categories: make(map[string]domain.Category),
		products:   make(map[string]domain.Product),
		userLocks:  make(map[string]*sync.Mutex),
	}
}

// NewRepositoryProvider exposes s through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    s,
		SessionRepo: s,
		OrderRepo:   s,
		CatalogRepo: s,
	}
}

var (
	_ portsrepo.UserRepositoryFacade    = (*Store)(nil)
	_ portsrepo.SessionRepositoryFacade = (*Store)(nil)
	_ portsrepo.OrderRepositoryFacade   = (*Store)(nil)
	_ portsrepo.CatalogRepositoryFacade = (*Store)(nil)
)

func (s *Store) userLock(userID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// page applies limit/offset; a non-positive limit means no limit.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// --- users ---

func (s *Store) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) ListUsers(_ context.Context, limit int, offset int) ([]domain.User, error) {
	s.mu.RLock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].UserID < users[j].UserID
	})
	return page(users, limit, offset), nil
}

func (s *Store) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[user.Email]; taken {
		return apperrors.ErrDuplicate
	}
	if _, exists := s.users[user.UserID]; exists {
		return apperrors.ErrDuplicate
	}
	s.users[user.UserID] = user
	s.emails[user.Email] = user.UserID
	s.sessions[user.UserID] = domain.NewSignedOutSession(user.UserID, user.CreatedAt)
	return nil
}

func (s *Store) UpdateUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.UserID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if existing.Email != user.Email {
		if _, taken := s.emails[user.Email]; taken {
			return apperrors.ErrDuplicate
		}
		delete(s.emails, existing.Email)
		s.emails[user.Email] = user.UserID
	}
	user.CreatedAt = existing.CreatedAt
	s.users[user.UserID] = user
	return nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(s.users, userID)
	delete(s.emails, u.Email)
	delete(s.sessions, userID)
	for id, o := range s.orders {
		if o.UserID != nil && *o.UserID == userID {
			o.UserID = nil
			s.orders[id] = o
		}
	}
	return nil
}

// --- sessions ---

func (s *Store) FindSession(_ context.Context, userID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	session, ok := s.sessions[userID]
	if !ok {
		session = domain.NewSignedOutSession(userID, u.CreatedAt)
	}
	return &session, nil
}

func (s *Store) UpdateSession(ctx context.Context, userID string, fn portsrepo.SessionMutator) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.FindSession(ctx, userID)
	if err != nil {
		return err
	}

	next, fnErr := fn(*current)
	if next != nil {
		next.UserID = userID
		s.mu.Lock()
		if _, ok := s.users[userID]; ok {
			s.sessions[userID] = *next
		}
		s.mu.Unlock()
	}
	return fnErr
}

// --- orders ---

func (s *Store) FindOrderByID(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (s *Store) listOrders(match func(domain.Order) bool, limit, offset int) []domain.Order {
	s.mu.RLock()
	orders := make([]domain.Order, 0)
	for _, o := range s.orders {
		if match(o) {
			orders = append(orders, o)
		}
	}
	s.mu.RUnlock()

	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].OrderID > orders[j].OrderID
	})
	return page(orders, limit, offset)
}

func (s *Store) ListOrdersByUser(_ context.Context, userID string, limit int, offset int) ([]domain.Order, error) {
	return s.listOrders(func(o domain.Order) bool {
		return o.UserID != nil && *o.UserID == userID
	}, limit, offset), nil
}

func (s *Store) ListOrders(_ context.Context, limit int, offset int) ([]domain.Order, error) {
	return s.listOrders(func(domain.Order) bool { return true }, limit, offset), nil
}

func (s *Store) SaveOrder(_ context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.OrderID]; exists {
		return apperrors.ErrDuplicate
	}
	if order.UserID != nil {
		if _, ok := s.users[*order.UserID]; !ok {
			return apperrors.ErrNotFound
		}
	}
	s.orders[order.OrderID] = order
	return nil
}

// --- catalog ---

func (s *Store) SaveCategory(_ context.Context, category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == category.Name {
			return apperrors.ErrDuplicate
		}
	}
	s.categories[category.CategoryID] = category
	return nil
}

func (s *Store) FindCategoryByID(_ context.Context, categoryID string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	categories := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	s.mu.RUnlock()
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *Store) SaveProduct(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[product.CategoryID]; !ok {
		return apperrors.ErrNotFound
	}
	s.products[product.ProductID] = product
	return nil
}

func (s *Store) ListProducts(_ context.Context, categoryID string) ([]domain.Product, error) {
	s.mu.RLock()
	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if categoryID == "" || p.CategoryID == categoryID {
			products = append(products, p)
		}
	}
	s.mu.RUnlock()
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ProductID < products[j].ProductID
	})
	return products, nil
}
