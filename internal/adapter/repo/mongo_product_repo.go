package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/usecase"
)

type MongoProductRepo struct {
	col *mongo.Collection
}

func NewMongoProductRepo(db *mongo.Database) *MongoProductRepo {
	return &MongoProductRepo{col: db.Collection(colProducts)}
}

var _ usecase.ProductStore = (*MongoProductRepo)(nil)

func (r *MongoProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	var p entity.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *MongoProductRepo) Insert(ctx context.Context, p *entity.Product) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Status == "" {
		p.Status = entity.ProductActive
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return mapErr(err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoProductRepo) Update(ctx context.Context, id primitive.ObjectID, p *entity.Product) (*entity.Product, error) {
	p.ID = id
	p.UpdatedAt = time.Now().UTC()

	var updated entity.Product
	err := r.col.FindOneAndReplace(ctx, bson.M{"_id": id}, p,
		options.FindOneAndReplace().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, mapErr(err)
	}
	return &updated, nil
}

// Archive is the soft delete: the document stays, only its status flips,
// so existing order lines keep a resolvable product reference.
func (r *MongoProductRepo) Archive(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    entity.ProductArchived,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoProductRepo) List(ctx context.Context, q usecase.ProductQuery) ([]entity.Product, int64, error) {
	filter := productFilter(q)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapErr(err)
	}

	skip, limit := pageWindow(q.Page, q.Limit, 12)
	sortField := q.Sort
	if sortField == "" {
		sortField = "createdAt"
	}

	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir(q.SortAsc)}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return nil, 0, mapErr(err)
	}

	products := []entity.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, mapErr(err)
	}
	return products, total, nil
}

// productFilter translates the query into a conjunctive bson filter.
// Status defaults to active, so archived products never leak into the
// storefront listing.
func productFilter(q usecase.ProductQuery) bson.M {
	status := q.Status
	if status == "" {
		status = entity.ProductActive
	}
	filter := bson.M{"status": status}

	if q.Category != "" {
		filter["categories"] = q.Category
	}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": ciRegex(q.Search)},
			bson.M{"description": ciRegex(q.Search)},
			bson.M{"tags": ciRegex(q.Search)},
		}
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	if q.InStockOnly {
		filter["$and"] = bson.A{bson.M{"$or": bson.A{
			bson.M{"trackQuantity": false},
			bson.M{"trackQuantity": true, "quantity": bson.M{"$gt": 0}},
		}}}
	}
	return filter
}

// DecrementStock only matches when enough stock remains, so the counter
// can never go negative even with concurrent checkouts.
func (r *MongoProductRepo) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{
		"_id":           id,
		"trackQuantity": true,
		"quantity":      bson.M{"$gte": qty},
	}, bson.M{
		"$inc": bson.M{"quantity": -qty},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return false, mapErr(err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoProductRepo) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
