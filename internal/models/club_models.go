package models

import "time"

// Club is a venue. Location is free text used as a map-link target and Vibe is a
// comma-separated tag list.
type Club struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Location    string    `json:"location" bson:"location"`
	Vibe        string    `json:"vibe" bson:"vibe"`
	Instagram   string    `json:"instagram,omitempty" bson:"instagram,omitempty"`
	ImageBase64 string    `json:"imageBase64,omitempty" bson:"imageBase64,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Snapshot copies the club into the form embedded in orders.
func (c *Club) Snapshot() ClubSnapshot {
	return ClubSnapshot{
		ID:          c.ID,
		Name:        c.Name,
		Location:    c.Location,
		Vibe:        c.Vibe,
		Instagram:   c.Instagram,
		ImageBase64: c.ImageBase64,
	}
}
