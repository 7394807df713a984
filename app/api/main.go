package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/database/mongoclient"
	"github.com/bidhaus/goapi/base/database/redisclient"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/base/metrics"
	bValidator "github.com/bidhaus/goapi/base/validator"
	mmiddleware "github.com/bidhaus/goapi/middleware"
	"github.com/bidhaus/goapi/service/query"
	"github.com/bidhaus/goapi/service/redis"
	auction_delivery "github.com/bidhaus/goapi/stores/auction/delivery/http"
	auction_repository "github.com/bidhaus/goapi/stores/auction/repository"
	auction_usecase "github.com/bidhaus/goapi/stores/auction/usecase"
	bid_delivery "github.com/bidhaus/goapi/stores/bid/delivery/http"
	bid_repository "github.com/bidhaus/goapi/stores/bid/repository"
	bid_usecase "github.com/bidhaus/goapi/stores/bid/usecase"
	hc_delivery "github.com/bidhaus/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/bidhaus/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/bidhaus/goapi/stores/healthcheck/usecase"
	leaderboard_delivery "github.com/bidhaus/goapi/stores/leaderboard/delivery/http"
	leaderboard_repository "github.com/bidhaus/goapi/stores/leaderboard/repository"
	leaderboard_usecase "github.com/bidhaus/goapi/stores/leaderboard/usecase"
	notification_delivery "github.com/bidhaus/goapi/stores/notification/delivery/http"
	notification_repository "github.com/bidhaus/goapi/stores/notification/repository"
	notification_usecase "github.com/bidhaus/goapi/stores/notification/usecase"
	wallet_delivery "github.com/bidhaus/goapi/stores/wallet/delivery/http"
	wallet_repository "github.com/bidhaus/goapi/stores/wallet/repository"
	wallet_usecase "github.com/bidhaus/goapi/stores/wallet/usecase"
)

func init() {
	pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	if err := viper.ReadInConfig(); err != nil {
		panic(xerrors.Errorf("read config %s: %w", viper.GetString("config"), err))
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	auctionRepo := auction_repository.NewAuction(q)
	bidRepo := bid_repository.NewBid(q)
	userBidRecordRepo := bid_repository.NewUserBidRecord(q)
	walletRepo := wallet_repository.NewWallet(q)
	leaderboardRepo := leaderboard_repository.NewLeaderboard(q)
	notificationRepo := notification_repository.NewNotification(q)

	hc := hc_usecase.New(hcRepo)
	notificationUsecase := notification_usecase.NewNotification(notificationRepo)
	auctionUsecase := auction_usecase.NewAuction(q, auctionRepo, walletRepo, redisCache)
	bidUsecase := bid_usecase.NewBid(q, auctionRepo, bidRepo, userBidRecordRepo, leaderboardRepo, notificationUsecase)
	walletUsecase := wallet_usecase.NewWallet(walletRepo)
	leaderboardUsecase := leaderboard_usecase.NewLeaderboard(leaderboardRepo)

	hc_delivery.New(e, hc)
	auction_delivery.New(e, auctionUsecase)
	bid_delivery.New(e, bidUsecase)
	wallet_delivery.New(e, walletUsecase)
	leaderboard_delivery.New(e, leaderboardUsecase)
	notification_delivery.New(e, notificationUsecase)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
