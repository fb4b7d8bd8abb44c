package repo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/usecase"
)

type MongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{col: db.Collection(colUsers)}
}

var _ usecase.UserStore = (*MongoUserRepo)(nil)

func (r *MongoUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var u entity.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *MongoUserRepo) Insert(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	u.Email = strings.ToLower(u.Email)
	if u.Role == "" {
		u.Role = entity.RoleStaff
	}

	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return mapErr(err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoUserRepo) SetLastLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"lastLogin": time.Now().UTC(),
		"updatedAt": time.Now().UTC(),
	}})
	return mapErr(err)
}
