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

type MongoOrderRepo struct {
	col *mongo.Collection
}

func NewMongoOrderRepo(db *mongo.Database) *MongoOrderRepo {
	return &MongoOrderRepo{col: db.Collection(colOrders)}
}

var _ usecase.OrderStore = (*MongoOrderRepo)(nil)

func (r *MongoOrderRepo) Insert(ctx context.Context, o *entity.Order) error {
	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return mapErr(err)
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	var o entity.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}

func (r *MongoOrderRepo) List(ctx context.Context, q usecase.OrderQuery) ([]entity.Order, int64, error) {
	filter := orderFilter(q)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapErr(err)
	}

	skip, limit := pageWindow(q.Page, q.Limit, 20)
	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return nil, 0, mapErr(err)
	}

	orders := []entity.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, mapErr(err)
	}
	return orders, total, nil
}

func orderFilter(q usecase.OrderQuery) bson.M {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.CustomerID != nil {
		filter["customer"] = *q.CustomerID
	}
	if q.StartDate != "" || q.EndDate != "" {
		created := bson.M{}
		if t, ok := parseDate(q.StartDate); ok {
			created["$gte"] = t
		}
		if t, ok := parseDate(q.EndDate); ok {
			created["$lte"] = t
		}
		if len(created) > 0 {
			filter["createdAt"] = created
		}
	}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"orderNumber": ciRegex(q.Search)},
			bson.M{"email": ciRegex(q.Search)},
			bson.M{"shippingAddress.firstName": ciRegex(q.Search)},
			bson.M{"shippingAddress.lastName": ciRegex(q.Search)},
		}
	}
	return filter
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r *MongoOrderRepo) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]entity.Order, error) {
	cur, err := r.col.Find(ctx, bson.M{"customer": customerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	orders := []entity.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, mapErr(err)
	}
	return orders, nil
}

func (r *MongoOrderRepo) ListPaidByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]entity.Order, error) {
	cur, err := r.col.Find(ctx, bson.M{
		"customer":       customerID,
		"payment.status": entity.PaymentPaid,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	orders := []entity.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, mapErr(err)
	}
	return orders, nil
}

func (r *MongoOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, patch usecase.StatusPatch) (*entity.Order, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Fulfillment != nil {
		set["fulfillment"] = *patch.Fulfillment
	}
	if patch.PaymentStatus != nil {
		set["payment.status"] = *patch.PaymentStatus
	}

	var o entity.Order
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&o)
	if err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}

// Stats feeds the admin dashboard. Revenue sums count paid orders only.
func (r *MongoOrderRepo) Stats(ctx context.Context) (*usecase.OrderStats, error) {
	now := time.Now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats := &usecase.OrderStats{StatusCounts: map[string]int64{}}

	var err error
	if stats.TotalOrders, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, mapErr(err)
	}
	if stats.TodayOrders, err = r.col.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": startOfDay}}); err != nil {
		return nil, mapErr(err)
	}

	if stats.TotalRevenue, err = r.sumPaid(ctx, bson.M{"payment.status": entity.PaymentPaid}); err != nil {
		return nil, err
	}
	if stats.MonthlyRevenue, err = r.sumPaid(ctx, bson.M{
		"payment.status": entity.PaymentPaid,
		"createdAt":      bson.M{"$gte": startOfMonth},
	}); err != nil {
		return nil, err
	}

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, mapErr(err)
	}
	var counts []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, mapErr(err)
	}
	for _, c := range counts {
		stats.StatusCounts[c.ID] = c.Count
	}
	return stats, nil
}

func (r *MongoOrderRepo) sumPaid(ctx context.Context, match bson.M) (float64, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	})
	if err != nil {
		return 0, mapErr(err)
	}
	var out []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, mapErr(err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}
