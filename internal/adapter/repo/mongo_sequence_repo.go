package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storekit/storefront-api/internal/usecase"
)

// MongoSequenceRepo backs order numbering with a counter document per
// sequence name. A single findOneAndUpdate with $inc is atomic on the
// server, so concurrent checkouts each see a distinct value — unlike
// deriving the number from a collection count.
type MongoSequenceRepo struct {
	col *mongo.Collection
}

func NewMongoSequenceRepo(db *mongo.Database) *MongoSequenceRepo {
	return &MongoSequenceRepo{col: db.Collection(colCounters)}
}

var _ usecase.SequenceStore = (*MongoSequenceRepo)(nil)

func (r *MongoSequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, mapErr(err)
	}
	return doc.Seq, nil
}
