package models

// Identity is the payload carried by a verified identity token.
type Identity struct {
	Mobile string `json:"mobile"`
}

// TicketType is a bookable entry option with a fixed price.
type TicketType struct {
	Type    string  `json:"type"`
	Price   float64 `json:"price"`
	Caption string  `json:"caption"`
}

// TicketCatalog is the fixed set of entry options.
var TicketCatalog = []TicketType{
	{Type: "Single Girls", Price: 0, Caption: "Girls (Free)"},
	{Type: "Boys", Price: 1000, Caption: "Boys - ₹1000 (Redeemable coupon)"},
	{Type: "Couples", Price: 0, Caption: "Couple (Free)"},
}

// LookupTicketType finds a catalog entry by its type name.
func LookupTicketType(name string) (TicketType, bool) {
	for _, t := range TicketCatalog {
		if t.Type == name {
			return t, true
		}
	}
	return TicketType{}, false
}
