package models

import "time"

// User is a customer identified by mobile number. Profile fields are captured
// once after the first login.
type User struct {
	Mobile    string    `json:"mobile" bson:"mobile"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Gender    string    `json:"gender,omitempty" bson:"gender,omitempty"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
