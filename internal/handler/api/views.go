package api

import (
	"encoding/json"
	"time"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// View types are the JSON shapes the API returns. All money fields are
// integer cents.

type ProductView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"priceCents"`
	Stock       int32    `json:"stock"`
	Category    string   `json:"category"`
	Seller      string   `json:"seller,omitempty"`
	Images      []string `json:"images"`
	Featured    bool     `json:"featured"`
	Rating      float64  `json:"rating"`
	NumReviews  int32    `json:"numReviews"`
	CreatedAt   string   `json:"createdAt"`
}

func NewProductView(p *domain.Product) ProductView {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductView{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		Category:    p.Category,
		Seller:      p.Seller,
		Images:      images,
		Featured:    p.Featured,
		Rating:      p.Rating,
		NumReviews:  p.NumReviews,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type ProductPageView struct {
	Products   []ProductView `json:"products"`
	Page       int           `json:"page"`
	Pages      int           `json:"pages"`
	TotalCount int64         `json:"totalCount"`
}

func NewProductPageView(page *domain.ProductPage) ProductPageView {
	products := make([]ProductView, len(page.Items))
	for i := range page.Items {
		products[i] = NewProductView(&page.Items[i])
	}
	pages := 0
	if page.PageSize > 0 {
		pages = int((page.TotalCount + int64(page.PageSize) - 1) / int64(page.PageSize))
	}
	return ProductPageView{
		Products:   products,
		Page:       page.Page,
		Pages:      pages,
		TotalCount: page.TotalCount,
	}
}

type CartItemView struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

type CartView struct {
	Items      []CartItemView `json:"items"`
	TotalCents int64          `json:"totalCents"`
	ItemCount  int32          `json:"itemCount"`
}

func NewCartView(cart *domain.Cart) CartView {
	items := make([]CartItemView, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemView{
			ProductID:      item.ProductID.String(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents(),
			ImageURL:       item.ImageURL,
		}
	}
	return CartView{
		Items:      items,
		TotalCents: cart.TotalCents(),
		ItemCount:  cart.ItemCount(),
	}
}

type ShippingAddressView struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type OrderItemView struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

type OrderView struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Items           []OrderItemView     `json:"items"`
	ShippingAddress ShippingAddressView `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	ItemsCents      int64               `json:"itemsCents"`
	TaxCents        int64               `json:"taxCents"`
	ShippingCents   int64               `json:"shippingCents"`
	TotalCents      int64               `json:"totalCents"`
	IsPaid          bool                `json:"isPaid"`
	PaidAt          *string             `json:"paidAt,omitempty"`
	PaymentResult   json.RawMessage     `json:"paymentResult,omitempty"`
	Status          string              `json:"status"`
	IsDelivered     bool                `json:"isDelivered"`
	DeliveredAt     *string             `json:"deliveredAt,omitempty"`
	CreatedAt       string              `json:"createdAt"`
}

func NewOrderView(o *domain.Order) OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemView{
			ProductID:      item.ProductID.String(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents(),
			ImageURL:       item.ImageURL,
		}
	}
	return OrderView{
		ID:     o.ID.String(),
		UserID: o.UserID.String(),
		Items:  items,
		ShippingAddress: ShippingAddressView{
			Address:    o.ShippingAddress.AddressLine1,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
		ItemsCents:    o.ItemsCents,
		TaxCents:      o.TaxCents,
		ShippingCents: o.ShippingCents,
		TotalCents:    o.TotalCents,
		IsPaid:        o.IsPaid,
		PaidAt:        timeToView(o.PaidAt),
		PaymentResult: o.PaymentResult,
		Status:        string(o.Status),
		IsDelivered:   o.IsDelivered,
		DeliveredAt:   timeToView(o.DeliveredAt),
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type OrderPageView struct {
	Orders     []OrderView `json:"orders"`
	Page       int         `json:"page"`
	Pages      int         `json:"pages"`
	TotalCount int64       `json:"totalCount"`
}

func NewOrderPageView(page *domain.OrderListPage) OrderPageView {
	orders := make([]OrderView, len(page.Orders))
	for i := range page.Orders {
		orders[i] = NewOrderView(&page.Orders[i])
	}
	pages := 0
	if page.PageSize > 0 {
		pages = int((page.TotalCount + int64(page.PageSize) - 1) / int64(page.PageSize))
	}
	return OrderPageView{
		Orders:     orders,
		Page:       page.Page,
		Pages:      pages,
		TotalCount: page.TotalCount,
	}
}

// UserView never includes the password hash.
type UserView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	PostCode  string `json:"postalCode,omitempty"`
	Country   string `json:"country,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Phone:     u.Phone,
		Address:   u.AddressLine1,
		City:      u.City,
		State:     u.State,
		PostCode:  u.PostalCode,
		Country:   u.Country,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// AuthView pairs a user with a freshly signed session token.
type AuthView struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

func timeToView(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
