package repo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/usecase"
)

type MongoCustomerRepo struct {
	col *mongo.Collection
}

func NewMongoCustomerRepo(db *mongo.Database) *MongoCustomerRepo {
	return &MongoCustomerRepo{col: db.Collection(colCustomers)}
}

var _ usecase.CustomerStore = (*MongoCustomerRepo)(nil)

func (r *MongoCustomerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

// GetByEmail matches case-insensitively; emails are stored lowercased,
// so lowering the needle is enough.
func (r *MongoCustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&c)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *MongoCustomerRepo) Insert(ctx context.Context, c *entity.Customer) error {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	c.Email = strings.ToLower(c.Email)

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return mapErr(err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoCustomerRepo) Update(ctx context.Context, id primitive.ObjectID, c *entity.Customer) (*entity.Customer, error) {
	c.ID = id
	c.Email = strings.ToLower(c.Email)
	c.UpdatedAt = time.Now().UTC()

	var updated entity.Customer
	err := r.col.FindOneAndReplace(ctx, bson.M{"_id": id}, c,
		options.FindOneAndReplace().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, mapErr(err)
	}
	return &updated, nil
}

func (r *MongoCustomerRepo) SetStats(ctx context.Context, id primitive.ObjectID, orderCount int, totalSpent float64) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"orderCount": orderCount,
		"totalSpent": totalSpent,
		"updatedAt":  time.Now().UTC(),
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoCustomerRepo) List(ctx context.Context, q usecase.CustomerQuery) ([]entity.Customer, int64, error) {
	filter := customerFilter(q)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapErr(err)
	}

	skip, limit := pageWindow(q.Page, q.Limit, 20)
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

	customers := []entity.Customer{}
	if err := cur.All(ctx, &customers); err != nil {
		return nil, 0, mapErr(err)
	}
	return customers, total, nil
}

func customerFilter(q usecase.CustomerQuery) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"email": ciRegex(q.Search)},
			bson.M{"firstName": ciRegex(q.Search)},
			bson.M{"lastName": ciRegex(q.Search)},
			bson.M{"phone": ciRegex(q.Search)},
		}
	}
	return filter
}
