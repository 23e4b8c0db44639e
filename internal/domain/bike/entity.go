package bike

import "time"

// Bike is one catalog listing. The description travels as "desc" on the wire
// and in storage, matching the public API contract.
type Bike struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"desc" bson:"desc"`
	Image       string    `json:"image" bson:"image"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// validate enforces the catalog invariant shared by both repository backends:
// a listing is only stored with all of name, price, desc and image present.
func (b *Bike) validate() error {
	if b == nil || b.Name == "" || b.Price <= 0 || b.Description == "" || b.Image == "" {
		return ErrInvalidBike
	}
	return nil
}
