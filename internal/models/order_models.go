package models

import (
	"strings"
	"time"
)

// LineItem is one guest's ticket within an order.
type LineItem struct {
	Name  string  `json:"name" bson:"name"`
	Age   string  `json:"age" bson:"age"`
	Type  string  `json:"type" bson:"type"`
	Price float64 `json:"price" bson:"price"`
}

// ClubSnapshot is the venue as it looked at booking time. It is copied into the
// order, never joined, so later club edits do not rewrite history.
type ClubSnapshot struct {
	ID          string `json:"id,omitempty" bson:"id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Location    string `json:"location" bson:"location"`
	Vibe        string `json:"vibe,omitempty" bson:"vibe,omitempty"`
	Instagram   string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	ImageBase64 string `json:"imageBase64,omitempty" bson:"imageBase64,omitempty"`
}

// ManagerRef is the manager contact embedded in an order.
type ManagerRef struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
}

// Order is a single booking for one or more guests at one venue.
type Order struct {
	ID              string        `json:"id" bson:"id"`
	Club            ClubSnapshot  `json:"club" bson:"club"`
	Items           []LineItem    `json:"items" bson:"items"`
	Amount          float64       `json:"amount" bson:"amount"`
	Status          OrderStatus   `json:"status" bson:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	Manager         *ManagerRef   `json:"manager" bson:"manager"`
	SelectedDate    string        `json:"selectedDate,omitempty" bson:"selectedDate,omitempty"`
	SelectedTime    string        `json:"selectedTime,omitempty" bson:"selectedTime,omitempty"`
	BookingDateTime string        `json:"bookingDateTime,omitempty" bson:"bookingDateTime,omitempty"`
	ScheduledTime   string        `json:"scheduledTime,omitempty" bson:"scheduledTime,omitempty"`
	Mobile          string        `json:"mobile" bson:"mobile"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ManagerAttached reports whether both manager name and phone are set.
func (o *Order) ManagerAttached() bool {
	return o.Manager != nil && strings.TrimSpace(o.Manager.Name) != "" && strings.TrimSpace(o.Manager.Phone) != ""
}

// InFlight groups orders still awaiting review, assignment or payment.
func (o *Order) InFlight() bool {
	return o.Status.InFlight() || o.PaymentStatus == PaymentPending
}

// Fulfilled groups orders completed by status or by payment.
func (o *Order) Fulfilled() bool {
	return o.Status == OrderSuccess || o.PaymentStatus.Settled()
}

// SumLineItems returns the total price of items.
func SumLineItems(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// Order list views.
const (
	ViewAll       = ""
	ViewInFlight  = "in-flight"
	ViewFulfilled = "fulfilled"
)

// OrderFilters defines the available filters for listing orders.
type OrderFilters struct {
	Mobile string `form:"mobile"`
	All    bool   `form:"all"`
	View   string `form:"view"`
}

// OrderSummary holds dashboard counts.
type OrderSummary struct {
	Total           int                   `json:"total"`
	InFlight        int                   `json:"inFlight"`
	Fulfilled       int                   `json:"fulfilled"`
	ByStatus        map[OrderStatus]int   `json:"byStatus"`
	ByPaymentStatus map[PaymentStatus]int `json:"byPaymentStatus"`
}
