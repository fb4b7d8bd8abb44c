package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/storekit/storefront-api/configs"
	"github.com/storekit/storefront-api/internal/adapter/cache"
	adapterhttp "github.com/storekit/storefront-api/internal/adapter/http"
	"github.com/storekit/storefront-api/internal/adapter/http/middleware"
	"github.com/storekit/storefront-api/internal/adapter/repo"
	"github.com/storekit/storefront-api/internal/logging"
	"github.com/storekit/storefront-api/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

// InitWithConfig wires storage, sessions, usecases and handlers. The
// returned cleanup closes the mongo and redis clients.
func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	l := logging.New("app")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.Mongo.Database)

	if err := repo.EnsureIndexes(ctx, db); err != nil {
		return nil, nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	l.Info("storefront: starting up", "db", cfg.Mongo.Database)

	// repositories
	productRepo := repo.NewMongoProductRepo(db)
	customerRepo := repo.NewMongoCustomerRepo(db)
	orderRepo := repo.NewMongoOrderRepo(db)
	userRepo := repo.NewMongoUserRepo(db)
	seqRepo := repo.NewMongoSequenceRepo(db)
	sessions := cache.NewRedisSessionStore(rdb, cfg.Session.TTL)

	// usecases
	stats := usecase.NewCustomerStats(customerRepo, orderRepo)
	createOrder := usecase.NewCreateOrder(productRepo, customerRepo, orderRepo, seqRepo, stats)
	updateOrder := usecase.NewUpdateOrderStatus(orderRepo, stats)

	// handlers + middleware
	auth := middleware.NewAuth(sessions, userRepo, cfg.Session.CookieName)
	productH := adapterhttp.NewProductHandler(productRepo)
	orderH := adapterhttp.NewOrderHandler(createOrder, updateOrder, orderRepo)
	customerH := adapterhttp.NewCustomerHandler(customerRepo, orderRepo)
	authH := adapterhttp.NewAuthHandler(userRepo, sessions, adapterhttp.SessionConfig{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})
	pages := adapterhttp.NewPageHandler(cfg.App.Name)

	router := adapterhttp.NewRouter(productH, orderH, customerH, authH, pages, auth)

	cleanup := func() {
		_ = rdb.Close()
		_ = client.Disconnect(context.Background())
	}
	return &App{Router: router}, cleanup, nil
}
