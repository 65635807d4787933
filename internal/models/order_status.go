package models

import "strings"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderAssigned  OrderStatus = "assigned"
	OrderSuccess   OrderStatus = "success"
	OrderCancelled OrderStatus = "cancelled"
)

// orderStatusAliases maps accepted input spellings onto canonical states.
var orderStatusAliases = map[string]OrderStatus{
	"completed": OrderSuccess,
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderAssigned, OrderSuccess, OrderCancelled},
	OrderConfirmed: {OrderPending, OrderAssigned, OrderSuccess, OrderCancelled},
	OrderAssigned:  {OrderConfirmed, OrderSuccess, OrderCancelled},
	OrderSuccess:   {},
	OrderCancelled: {},
}

// ParseOrderStatus normalizes s and reports whether it names a known state.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if alias, ok := orderStatusAliases[s]; ok {
		return alias, true
	}
	status := OrderStatus(s)
	_, ok := orderTransitions[status]
	return status, ok
}

// CanTransitionTo reports whether next is reachable from s. Staying put is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InFlight reports whether the order is still being processed.
func (s OrderStatus) InFlight() bool {
	return s == OrderPending || s == OrderConfirmed || s == OrderAssigned
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// OrderStatuses lists every canonical order state.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderConfirmed, OrderAssigned, OrderSuccess, OrderCancelled}
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentFreeEntry PaymentStatus = "free-entry"
	PaymentInitiated PaymentStatus = "initiated"
	PaymentPending   PaymentStatus = "pending"
	PaymentSuccess   PaymentStatus = "success"
	PaymentVerified  PaymentStatus = "verified"
	PaymentCancelled PaymentStatus = "cancelled"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentFreeEntry: {PaymentCancelled},
	PaymentInitiated: {PaymentPending, PaymentSuccess, PaymentVerified, PaymentCancelled},
	PaymentPending:   {PaymentSuccess, PaymentVerified, PaymentCancelled},
	PaymentSuccess:   {PaymentVerified},
	PaymentVerified:  {},
	PaymentCancelled: {},
}

// ParsePaymentStatus normalizes s and reports whether it names a known state.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	status := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	_, ok := paymentTransitions[status]
	return status, ok
}

// CanTransitionTo reports whether next is reachable from s. Staying put is allowed.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Settled reports whether money has been received.
func (s PaymentStatus) Settled() bool {
	return s == PaymentSuccess || s == PaymentVerified
}

// PaymentStatuses lists every payment state.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentFreeEntry, PaymentInitiated, PaymentPending, PaymentSuccess, PaymentVerified, PaymentCancelled}
}

// InitialPaymentStatus is the payment state of a freshly created order.
func InitialPaymentStatus(amount float64) PaymentStatus {
	if amount > 0 {
		return PaymentInitiated
	}
	return PaymentFreeEntry
}
