package bike

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps the catalog in process memory; contents are lost on
// restart. Every listing gets a generated id that stays valid for its whole
// lifetime, so deleting one listing never changes the key of another. All
// operations hold the mutex, keeping concurrent mutations from interleaving.
type MemoryRepository struct {
	mu    sync.RWMutex
	bikes []Bike
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, b *Bike) (*Bike, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *b
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	r.bikes = append(r.bikes, stored)
	return &stored, nil
}

// List returns the catalog in insertion order.
func (r *MemoryRepository) List(ctx context.Context) ([]Bike, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Bike, len(r.bikes))
	copy(out, r.bikes)
	return out, nil
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id string) (*Bike, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bikes {
		if b.ID == id {
			r.bikes = append(r.bikes[:i], r.bikes[i+1:]...)
			return &b, nil
		}
	}
	return nil, &NotFoundError{Key: id, Inventory: len(r.bikes)}
}

// DeleteByName removes the first listing whose name matches exactly,
// case sensitive.
func (r *MemoryRepository) DeleteByName(ctx context.Context, name string) (*Bike, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bikes {
		if b.Name == name {
			r.bikes = append(r.bikes[:i], r.bikes[i+1:]...)
			return &b, nil
		}
	}
	return nil, &NotFoundError{Name: name, Inventory: len(r.bikes)}
}
