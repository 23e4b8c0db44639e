package bike

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "bikes"

// MongoRepository persists the catalog in a MongoDB collection. Listing keys
// are the hex form of the document's ObjectID.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

// bikeDoc is the stored shape; _id stays an ObjectID inside the collection.
type bikeDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Description string             `bson:"desc"`
	Image       string             `bson:"image"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d bikeDoc) toBike() Bike {
	return Bike{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		Image:       d.Image,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *MongoRepository) Create(ctx context.Context, b *Bike) (*Bike, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	doc := bikeDoc{
		ID:          primitive.NewObjectID(),
		Name:        b.Name,
		Price:       b.Price,
		Description: b.Description,
		Image:       b.Image,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert bike: %w", err)
	}

	stored := doc.toBike()
	return &stored, nil
}

// List returns the whole catalog sorted by _id, which for ids generated here
// matches insertion order.
func (r *MongoRepository) List(ctx context.Context) ([]Bike, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find bikes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []bikeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bikes: %w", err)
	}

	bikes := make([]Bike, 0, len(docs))
	for _, d := range docs {
		bikes = append(bikes, d.toBike())
	}
	return bikes, nil
}

func (r *MongoRepository) DeleteByID(ctx context.Context, id string) (*Bike, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed key can't match any document.
		return nil, r.notFound(ctx, &NotFoundError{Key: id})
	}

	var doc bikeDoc
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.notFound(ctx, &NotFoundError{Key: id})
	}
	if err != nil {
		return nil, fmt.Errorf("delete bike %s: %w", id, err)
	}

	b := doc.toBike()
	return &b, nil
}

// DeleteByName removes the oldest listing whose name matches exactly,
// case sensitive.
func (r *MongoRepository) DeleteByName(ctx context.Context, name string) (*Bike, error) {
	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "_id", Value: 1}})

	var doc bikeDoc
	err := r.coll.FindOneAndDelete(ctx, bson.M{"name": name}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.notFound(ctx, &NotFoundError{Name: name})
	}
	if err != nil {
		return nil, fmt.Errorf("delete bike by name %q: %w", name, err)
	}

	b := doc.toBike()
	return &b, nil
}

// notFound fills in the catalog size echoed with 404 responses. Counting is
// best effort; on error the size stays zero.
func (r *MongoRepository) notFound(ctx context.Context, nf *NotFoundError) error {
	if n, err := r.coll.CountDocuments(ctx, bson.M{}); err == nil {
		nf.Inventory = int(n)
	}
	return nf
}
