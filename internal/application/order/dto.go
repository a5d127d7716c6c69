package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shop/storefront/internal/domain/order"
)

// SummaryView is one row of the order list
type SummaryView struct {
	ID          string           `json:"id"`
	OrderNumber string           `json:"order_number"`
	Status      order.StatusView `json:"status"`
	Total       string           `json:"total"`
	ItemCount   int              `json:"item_count"`
	CreatedAt   time.Time        `json:"created_at"`
	PendingSync bool             `json:"pending_sync,omitempty"`
}

// ItemView is a line item inside an order detail
type ItemView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
	ImageRef  string `json:"image_ref,omitempty"`
}

// HistoryView is one row of the order's status timeline
type HistoryView struct {
	StatusLabel string    `json:"status_label"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	IconKind    string    `json:"icon_kind,omitempty"`
	IsCurrent   bool      `json:"is_current"`
}

// ProgressView renders the 4-step lifecycle track
type ProgressView struct {
	Steps   []string `json:"steps"`
	Reached []bool   `json:"reached"`
}

// DetailView is the full order as presented by the tracking page
type DetailView struct {
	ID          string             `json:"id"`
	OrderNumber string             `json:"order_number"`
	Status      order.StatusView   `json:"status"`
	Items       []ItemView         `json:"items"`
	Subtotal    string             `json:"subtotal"`
	Tax         string             `json:"tax"`
	DeliveryFee string             `json:"delivery_fee"`
	Total       string             `json:"total"`
	History     []HistoryView      `json:"history,omitempty"`
	Shipping    order.ShippingInfo `json:"shipping"`
	Progress    ProgressView       `json:"progress"`
	CreatedAt   time.Time          `json:"created_at"`
	PendingSync bool               `json:"pending_sync,omitempty"`
}

// ToSummaryView converts an order to its list row shape
func ToSummaryView(o order.Order) SummaryView {
	return SummaryView{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      order.Project(o.Status),
		Total:       o.Total.StringFixed(2),
		ItemCount:   len(o.Items),
		CreatedAt:   o.CreatedAt,
		PendingSync: o.PendingSync,
	}
}

// ToDetailView converts an order to its tracking page shape
func ToDetailView(o order.Order) DetailView {
	view := order.Project(o.Status)

	items := make([]ItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2),
			ImageRef:  item.ImageRef,
		})
	}

	history := make([]HistoryView, 0, len(o.History))
	for _, entry := range o.History {
		history = append(history, HistoryView(entry))
	}

	reached := make([]bool, len(order.ProgressSteps))
	for i := range order.ProgressSteps {
		reached[i] = view.StepReached(i)
	}

	return DetailView{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      view,
		Items:       items,
		Subtotal:    o.Subtotal.StringFixed(2),
		Tax:         o.Tax.StringFixed(2),
		DeliveryFee: o.DeliveryFee.StringFixed(2),
		Total:       o.Total.StringFixed(2),
		History:     history,
		Shipping:    o.Shipping,
		Progress:    ProgressView{Steps: order.ProgressSteps[:], Reached: reached},
		CreatedAt:   o.CreatedAt,
		PendingSync: o.PendingSync,
	}
}
