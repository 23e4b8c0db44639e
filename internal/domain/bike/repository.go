package bike

import "context"

// Repository is the catalog behind the HTTP layer. Two backends implement it:
// a MongoDB collection that survives restarts, and an in-process list that
// does not. Which one runs is a deployment choice made at startup.
//
// Both delete operations return the removed listing and report a missing key
// or name as *NotFoundError.
type Repository interface {
	Create(ctx context.Context, b *Bike) (*Bike, error)
	List(ctx context.Context) ([]Bike, error)
	DeleteByID(ctx context.Context, id string) (*Bike, error)
	DeleteByName(ctx context.Context, name string) (*Bike, error)
}
