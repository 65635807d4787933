package models

import "time"

// Manager is a staff contact assigned to assist customers after booking.
// Phone is unique across managers.
type Manager struct {
	ID             string    `json:"id" bson:"id"`
	Name           string    `json:"name" bson:"name"`
	Phone          string    `json:"phone" bson:"phone"`
	Email          string    `json:"email,omitempty" bson:"email,omitempty"`
	AssignedOrders int       `json:"assignedOrders" bson:"assignedOrders"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Ref returns the contact embedded into orders.
func (m *Manager) Ref() ManagerRef {
	return ManagerRef{Name: m.Name, Phone: m.Phone}
}
