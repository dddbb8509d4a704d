// Package servers provides the echo bindings of the pizzeria OpenAPI contract
// in api/openapi.yml: request and response models, ServerInterface and the
// wrappers that bind path, query and header parameters before calling it.
//
// The layout follows oapi-codegen's echo-server output so the package can be
// regenerated from the contract without touching its callers.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for Category.
const (
	CategoryCLASSIC    Category = "CLASSIC"
	CategoryPREMIUM    Category = "PREMIUM"
	CategorySPECIAL    Category = "SPECIAL"
	CategorySPICY      Category = "SPICY"
	CategoryVEGETARIAN Category = "VEGETARIAN"
)

// Defines values for DeliveryType.
const (
	DeliveryTypeDELIVERY DeliveryType = "DELIVERY"
	DeliveryTypePICKUP   DeliveryType = "PICKUP"
)

// Defines values for OrderStatus.
const (
	OrderStatusBAKING     OrderStatus = "BAKING"
	OrderStatusCANCELLED  OrderStatus = "CANCELLED"
	OrderStatusCOMPLETED  OrderStatus = "COMPLETED"
	OrderStatusCONFIRMED  OrderStatus = "CONFIRMED"
	OrderStatusDELIVERING OrderStatus = "DELIVERING"
	OrderStatusPENDING    OrderStatus = "PENDING"
	OrderStatusPREPARING  OrderStatus = "PREPARING"
	OrderStatusREADY      OrderStatus = "READY"
)

// Defines values for PaymentMethod.
const (
	PaymentMethodCARD          PaymentMethod = "CARD"
	PaymentMethodCASH          PaymentMethod = "CASH"
	PaymentMethodLOYALTYPOINTS PaymentMethod = "LOYALTY_POINTS"
	PaymentMethodONLINE        PaymentMethod = "ONLINE"
)

// Defines values for Size.
const (
	SizeLARGE  Size = "LARGE"
	SizeMEDIUM Size = "MEDIUM"
	SizeSMALL  Size = "SMALL"
	SizeXXL    Size = "XXL"
)

// CatalogItem defines model for CatalogItem.
type CatalogItem struct {
	Available          bool     `json:"available"`
	Category           Category `json:"category"`
	Description        string   `json:"description"`
	DiameterCm         int      `json:"diameter_cm"`
	Id                 string   `json:"id"`
	Ingredients        []string `json:"ingredients"`
	Name               string   `json:"name"`
	PreparationMinutes int      `json:"preparation_minutes"`

	// Price Non-negative decimal amount
	Price Money `json:"price"`
	Size  Size  `json:"size"`
}

// CatalogItemInput defines model for CatalogItemInput.
type CatalogItemInput struct {
	Available          bool      `json:"available"`
	Category           Category  `json:"category"`
	Description        *string   `json:"description,omitempty"`
	Ingredients        *[]string `json:"ingredients,omitempty"`
	Name               string    `json:"name"`
	PreparationMinutes int       `json:"preparation_minutes"`

	// Price Non-negative decimal amount
	Price Money `json:"price"`
	Size  Size  `json:"size"`
}

// Category defines model for Category.
type Category string

// Customer defines model for Customer.
type Customer struct {
	Address *string `json:"address,omitempty"`
	Email   *string `json:"email,omitempty"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
}

// Dashboard defines model for Dashboard.
type Dashboard struct {
	ActiveOrders []Order    `json:"active_orders"`
	Statistics   Statistics `json:"statistics"`
}

// DeliveryType defines model for DeliveryType.
type DeliveryType string

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HistoryEntry defines model for HistoryEntry.
type HistoryEntry struct {
	ChangedAt time.Time    `json:"changed_at"`
	From      *OrderStatus `json:"from,omitempty"`
	To        OrderStatus  `json:"to"`
}

// Money Non-negative decimal amount
type Money = string

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Customer        Customer       `json:"customer"`
	DeliveryAddress *string        `json:"delivery_address,omitempty"`
	DeliveryType    DeliveryType   `json:"delivery_type"`
	Items           []NewOrderItem `json:"items"`
	Notes           *string        `json:"notes,omitempty"`
	PaymentMethod   PaymentMethod  `json:"payment_method"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	CatalogItemId string `json:"catalog_item_id"`
	Quantity      int    `json:"quantity"`
}

// Order defines model for Order.
type Order struct {
	CustomerId       *openapi_types.UUID `json:"customer_id,omitempty"`
	DeliveryAddress  *string             `json:"delivery_address,omitempty"`
	DeliveryType     DeliveryType        `json:"delivery_type"`
	EstimatedReadyAt time.Time           `json:"estimated_ready_at"`
	Id               openapi_types.UUID  `json:"id"`
	ItemCount        int                 `json:"item_count"`
	Lines            []OrderLine         `json:"lines"`
	Notes            *string             `json:"notes,omitempty"`
	Payment          Payment             `json:"payment"`
	PlacedAt         time.Time           `json:"placed_at"`
	Status           OrderStatus         `json:"status"`

	// Total Non-negative decimal amount
	Total Money `json:"total"`
}

// OrderLine defines model for OrderLine.
type OrderLine struct {
	CatalogItemId      string `json:"catalog_item_id"`
	Name               string `json:"name"`
	PreparationMinutes int    `json:"preparation_minutes"`
	Quantity           int    `json:"quantity"`

	// Total Non-negative decimal amount
	Total Money `json:"total"`

	// UnitPrice Non-negative decimal amount
	UnitPrice Money `json:"unit_price"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// Payment defines model for Payment.
type Payment struct {
	// Amount Non-negative decimal amount
	Amount Money         `json:"amount"`
	Id     string        `json:"id"`
	Method PaymentMethod `json:"method"`
	Status string        `json:"status"`
}

// PaymentMethod defines model for PaymentMethod.
type PaymentMethod string

// PopularItem defines model for PopularItem.
type PopularItem struct {
	CatalogItemId string `json:"catalog_item_id"`
	Name          string `json:"name"`
	Occurrences   int    `json:"occurrences"`
	Quantity      int    `json:"quantity"`
}

// Size defines model for Size.
type Size string

// Statistics defines model for Statistics.
type Statistics struct {
	ActiveOrders   int            `json:"active_orders"`
	GeneratedAt    time.Time      `json:"generated_at"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	PopularItems   []PopularItem  `json:"popular_items"`
	TodayOrders    int            `json:"today_orders"`

	// TodayRevenue Non-negative decimal amount
	TodayRevenue Money `json:"today_revenue"`
	TotalOrders  int   `json:"total_orders"`

	// TotalRevenue Non-negative decimal amount
	TotalRevenue Money `json:"total_revenue"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Status OrderStatus `json:"status"`
}

// ItemId defines model for ItemId.
type ItemId = string

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// PopularLimit defines model for PopularLimit.
type PopularLimit = int

// ListCatalogItemsParams defines parameters for ListCatalogItems.
type ListCatalogItemsParams struct {
	Category      *Category `form:"category,omitempty" json:"category,omitempty"`
	AvailableOnly *bool     `form:"available_only,omitempty" json:"available_only,omitempty"`

	// Q Case-insensitive match on name or description
	Q *string `form:"q,omitempty" json:"q,omitempty"`
}

// GetDashboardParams defines parameters for GetDashboard.
type GetDashboardParams struct {
	PopularLimit *PopularLimit `form:"popular_limit,omitempty" json:"popular_limit,omitempty"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status OrderStatus `form:"status" json:"status"`
}

// CreateOrderParams defines parameters for CreateOrder.
type CreateOrderParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// GetStatisticsParams defines parameters for GetStatistics.
type GetStatisticsParams struct {
	PopularLimit *PopularLimit `form:"popular_limit,omitempty" json:"popular_limit,omitempty"`
}

// UpsertCatalogItemJSONRequestBody defines body for UpsertCatalogItem for application/json ContentType.
type UpsertCatalogItemJSONRequestBody = CatalogItemInput

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ChangeOrderStatusJSONRequestBody defines body for ChangeOrderStatus for application/json ContentType.
type ChangeOrderStatusJSONRequestBody = StatusChange
