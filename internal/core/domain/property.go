package domain

import "errors"

var ErrPropertyNotFound = errors.New("property not found")

// DefaultOwnerEmail is recorded when a listing is submitted without an owner.
const DefaultOwnerEmail = "unknown@host.com"

// Property is a rentable listing in the catalog.
type Property struct {
	ID         int     `json:"id" bson:"_id"`
	Title      string  `json:"title" bson:"title"`
	Location   string  `json:"location" bson:"location"`
	Price      float64 `json:"price" bson:"price"`
	OwnerEmail string  `json:"owner_email,omitempty" bson:"owner_email,omitempty"`
}

// SeedProperties returns the catalog every fresh store starts with.
func SeedProperties() []Property {
	return []Property{
		{ID: 1, Title: "Luxury Villa Dubai", Location: "Dubai", Price: 299},
		{ID: 2, Title: "Beach House Karachi", Location: "Karachi", Price: 180},
		{ID: 3, Title: "Mountain Cabin Murree", Location: "Murree", Price: 150},
	}
}
