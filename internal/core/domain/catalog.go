package domain

import "time"

// Store is a physical location that field users visit.
type Store struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Location  string    `json:"location" bson:"location"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Product is an item that can appear in visit photos.
type Product struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
