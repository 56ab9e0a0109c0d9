package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// Stub services with overridable function fields. A nil field panics,
// which surfaces untested call paths immediately.

type stubProductService struct {
	listFn       func(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error)
	getFn        func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	featuredFn   func(ctx context.Context, limit int) ([]domain.Product, error)
	categoriesFn func(ctx context.Context) ([]string, error)
	createFn     func(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error)
	updateFn     func(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) (*domain.Product, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (s *stubProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	return s.listFn(ctx, filter)
}

func (s *stubProductService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.featuredFn(ctx, limit)
}

func (s *stubProductService) ListCategories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}

func (s *stubProductService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	return s.createFn(ctx, params)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) (*domain.Product, error) {
	return s.updateFn(ctx, id, params)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

type stubCartService struct {
	getFn    func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	addFn    func(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error)
	updateFn func(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error)
	removeFn func(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error)
	clearFn  func(ctx context.Context, userID uuid.UUID) error
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return s.getFn(ctx, userID)
}

func (s *stubCartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error) {
	return s.addFn(ctx, userID, productID, quantity)
}

func (s *stubCartService) UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error) {
	return s.updateFn(ctx, userID, productID, quantity)
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error) {
	return s.removeFn(ctx, userID, productID)
}

func (s *stubCartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.clearFn(ctx, userID)
}

type stubCheckoutService struct {
	checkoutFn func(ctx context.Context, userID uuid.UUID, params domain.CheckoutParams) (*domain.Order, error)
}

func (s *stubCheckoutService) Checkout(ctx context.Context, userID uuid.UUID, params domain.CheckoutParams) (*domain.Order, error) {
	return s.checkoutFn(ctx, userID, params)
}

type stubOrderService struct {
	getFn          func(ctx context.Context, orderID uuid.UUID, requester *domain.User) (*domain.Order, error)
	listMineFn     func(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	listFn         func(ctx context.Context, page int) (*domain.OrderListPage, error)
	markPaidFn     func(ctx context.Context, orderID uuid.UUID, result json.RawMessage) (*domain.Order, error)
	updateStatusFn func(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
}

func (s *stubOrderService) GetOrder(ctx context.Context, orderID uuid.UUID, requester *domain.User) (*domain.Order, error) {
	return s.getFn(ctx, orderID, requester)
}

func (s *stubOrderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.listMineFn(ctx, userID)
}

func (s *stubOrderService) ListOrders(ctx context.Context, page int) (*domain.OrderListPage, error) {
	return s.listFn(ctx, page)
}

func (s *stubOrderService) MarkPaid(ctx context.Context, orderID uuid.UUID, result json.RawMessage) (*domain.Order, error) {
	return s.markPaidFn(ctx, orderID, result)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	return s.updateStatusFn(ctx, orderID, status)
}

type stubUserService struct {
	registerFn      func(ctx context.Context, name, email, password string) (*domain.User, string, error)
	loginFn         func(ctx context.Context, email, password string) (*domain.User, string, error)
	getProfileFn    func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	updateProfileFn func(ctx context.Context, userID uuid.UUID, params domain.UpdateProfileParams) (*domain.User, error)
	listFn          func(ctx context.Context) ([]domain.User, error)
	getUserFn       func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	updateRoleFn    func(ctx context.Context, userID uuid.UUID, role domain.UserRole) (*domain.User, error)
	deleteFn        func(ctx context.Context, userID uuid.UUID) error
}

func (s *stubUserService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.getProfileFn(ctx, userID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, params domain.UpdateProfileParams) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, params)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.getUserFn(ctx, userID)
}

func (s *stubUserService) UpdateRole(ctx context.Context, userID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	return s.updateRoleFn(ctx, userID, role)
}

func (s *stubUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.deleteFn(ctx, userID)
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:          uuid.New(),
		Name:        "Wireless Mouse",
		Description: "A mouse without wires",
		PriceCents:  2999,
		Stock:       12,
		Category:    "Electronics",
		Images:      []string{"https://img.example.com/mouse.jpg"},
		Rating:      4.5,
		NumReviews:  7,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func sampleOrder(userID uuid.UUID) *domain.Order {
	return &domain.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Name: "Wireless Mouse", Quantity: 2, UnitPriceCents: 2999},
		},
		ShippingAddress: domain.ShippingAddress{
			AddressLine1: "1 Main St",
			City:         "Springfield",
			PostalCode:   "12345",
			Country:      "US",
		},
		PaymentMethod: "card",
		ItemsCents:    5998,
		TaxCents:      900,
		ShippingCents: 1000,
		TotalCents:    7898,
		Status:        domain.OrderStatusPending,
		CreatedAt:     time.Now(),
	}
}
