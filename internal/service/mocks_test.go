package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// In-memory store implementations backing the service tests. The stores
// share the same locking discipline as the real ones: ReserveStock is a
// compare-and-set, and CreateFromCheckout is all-or-nothing.

type memProductStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: make(map[uuid.UUID]*domain.Product)}
}

func (s *memProductStore) put(p *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

func (s *memProductStore) Create(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &domain.Product{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		PriceCents:  params.PriceCents,
		Stock:       params.Stock,
		Category:    params.Category,
		Seller:      params.Seller,
		Images:      params.Images,
		Featured:    params.Featured,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.products[p.ID] = p
	cp := *p
	return &cp, nil
}

func (s *memProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memProductStore) Update(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.PriceCents != nil {
		p.PriceCents = *params.PriceCents
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Featured != nil {
		p.Featured = *params.Featured
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (s *memProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *memProductStore) List(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.Product
	for _, p := range s.products {
		items = append(items, *p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return &domain.ProductPage{
		Items:      items,
		TotalCount: int64(len(items)),
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

func (s *memProductStore) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.Product
	for _, p := range s.products {
		if p.Featured && len(items) < limit {
			items = append(items, *p)
		}
	}
	return items, nil
}

func (s *memProductStore) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *memProductStore) ReserveStock(ctx context.Context, id uuid.UUID, qty int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock < qty {
		return domain.InsufficientStock(p.Name, p.Stock)
	}
	p.Stock -= qty
	return nil
}

func (s *memProductStore) restoreStock(id uuid.UUID, qty int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		p.Stock += qty
	}
}

func (s *memProductStore) stock(id uuid.UUID) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return p.Stock
	}
	return -1
}

type memCartStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*domain.Cart // keyed by user ID
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[uuid.UUID]*domain.Cart)}
}

func (s *memCartStore) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		cart = &domain.Cart{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
		s.carts[userID] = cart
	}
	cp := *cart
	cp.Items = append([]domain.CartItem(nil), cart.Items...)
	return &cp, nil
}

func (s *memCartStore) byCartID(cartID uuid.UUID) *domain.Cart {
	for _, c := range s.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (s *memCartStore) AddItem(ctx context.Context, cartID uuid.UUID, item domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.byCartID(cartID)
	if cart == nil {
		return domain.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			cart.Items[i].Name = item.Name
			cart.Items[i].UnitPriceCents = item.UnitPriceCents
			cart.Items[i].ImageURL = item.ImageURL
			return nil
		}
	}
	cart.Items = append(cart.Items, item)
	return nil
}

func (s *memCartStore) SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.byCartID(cartID)
	if cart == nil {
		return domain.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrCartItemNotFound
}

func (s *memCartStore) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.byCartID(cartID)
	if cart == nil {
		return domain.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memCartStore) Clear(ctx context.Context, cartID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.byCartID(cartID)
	if cart == nil {
		return domain.ErrCartNotFound
	}
	cart.Items = nil
	return nil
}

type memOrderStore struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]*domain.Order
	products *memProductStore
	carts    *memCartStore
}

func newMemOrderStore(products *memProductStore, carts *memCartStore) *memOrderStore {
	return &memOrderStore{
		orders:   make(map[uuid.UUID]*domain.Order),
		products: products,
		carts:    carts,
	}
}

// CreateFromCheckout mirrors the transactional store: reserve every line,
// undoing prior reservations if one fails, then record the order and clear
// the cart.
func (s *memOrderStore) CreateFromCheckout(ctx context.Context, order *domain.Order, cartID uuid.UUID) error {
	var reserved []domain.OrderItem
	for _, item := range order.Items {
		if err := s.products.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
			for _, r := range reserved {
				s.products.restoreStock(r.ProductID, r.Quantity)
			}
			return err
		}
		reserved = append(reserved, item)
	}

	s.mu.Lock()
	cp := *order
	s.orders[order.ID] = &cp
	s.mu.Unlock()

	return s.carts.Clear(ctx, cartID)
}

func (s *memOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memOrderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *memOrderStore) ListAll(ctx context.Context, page, pageSize int) (*domain.OrderListPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []domain.Order
	for _, o := range s.orders {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })

	total := int64(len(orders))
	start := (page - 1) * pageSize
	if start > len(orders) {
		start = len(orders)
	}
	end := start + pageSize
	if end > len(orders) {
		end = len(orders)
	}
	return &domain.OrderListPage{
		Orders:     orders[start:end],
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *memOrderStore) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time, result json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.IsPaid = true
	o.PaidAt = &paidAt
	o.PaymentResult = result
	return nil
}

func (s *memOrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, deliveredAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	if deliveredAt != nil {
		o.IsDelivered = true
		o.DeliveredAt = deliveredAt
	}
	return nil
}

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *memUserStore) Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == params.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	u := &domain.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *memUserStore) Update(ctx context.Context, id uuid.UUID, params domain.UpdateUserParams) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.PasswordHash != nil {
		u.PasswordHash = *params.PasswordHash
	}
	if params.Role != nil {
		u.Role = *params.Role
	}
	if params.Phone != nil {
		u.Phone = *params.Phone
	}
	if params.AddressLine1 != nil {
		u.AddressLine1 = *params.AddressLine1
	}
	if params.City != nil {
		u.City = *params.City
	}
	if params.State != nil {
		u.State = *params.State
	}
	if params.PostalCode != nil {
		u.PostalCode = *params.PostalCode
	}
	if params.Country != nil {
		u.Country = *params.Country
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (s *memUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *memUserStore) List(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []domain.User
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}
