package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/database/mongoclient"
	"github.com/pixeldonor/goapi/base/database/redisclient"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/base/metrics"
	bValidator "github.com/pixeldonor/goapi/base/validator"
	"github.com/pixeldonor/goapi/domain"
	mmiddleware "github.com/pixeldonor/goapi/middleware"
	"github.com/pixeldonor/goapi/service/query"
	"github.com/pixeldonor/goapi/service/redis"
	account_delivery "github.com/pixeldonor/goapi/stores/account/delivery/http"
	account_repository "github.com/pixeldonor/goapi/stores/account/repository"
	account_usecase "github.com/pixeldonor/goapi/stores/account/usecase"
	asset_delivery "github.com/pixeldonor/goapi/stores/asset/delivery/http"
	asset_repository "github.com/pixeldonor/goapi/stores/asset/repository"
	asset_usecase "github.com/pixeldonor/goapi/stores/asset/usecase"
	auth_delivery "github.com/pixeldonor/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/pixeldonor/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/pixeldonor/goapi/stores/auth/usecase"
	hc_delivery "github.com/pixeldonor/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/pixeldonor/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/pixeldonor/goapi/stores/healthcheck/usecase"
	market_delivery "github.com/pixeldonor/goapi/stores/market/delivery/http"
	market_repository "github.com/pixeldonor/goapi/stores/market/repository"
	market_usecase "github.com/pixeldonor/goapi/stores/market/usecase"
	property_repository "github.com/pixeldonor/goapi/stores/property/repository"
	property_usecase "github.com/pixeldonor/goapi/stores/property/usecase"
	sale_delivery "github.com/pixeldonor/goapi/stores/sale/delivery/http"
	sale_repository "github.com/pixeldonor/goapi/stores/sale/repository"
	sale_usecase "github.com/pixeldonor/goapi/stores/sale/usecase"
	wallet_delivery "github.com/pixeldonor/goapi/stores/wallet/delivery/http"
	wallet_repository "github.com/pixeldonor/goapi/stores/wallet/repository"
	wallet_usecase "github.com/pixeldonor/goapi/stores/wallet/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func toAddresses(raw []string) []domain.Address {
	addrs := make([]domain.Address, 0, len(raw))
	for _, a := range raw {
		addrs = append(addrs, domain.Address(a).ToLower())
	}
	return addrs
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

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	admins := domain.AdminCapability{Addresses: toAddresses(viper.GetStringSlice("admin.addresses"))}
	engineAddress := domain.Address(viper.GetString("sale.engineAddress")).ToLower()
	// the engine mints sold units itself, so it always carries the
	// minter capability
	minters := domain.MinterCapability{
		Addresses: append(toAddresses(viper.GetStringSlice("minter.addresses")), engineAddress),
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	accountRepo := account_repository.New(q, redisCache)
	activityRepo := account_repository.NewActivityRepo(q)
	walletRepo := wallet_repository.NewWalletRepo(q)
	assetRepo := asset_repository.NewAssetRepo(q)
	propertyRepo := property_repository.NewPropertyRepo(q)
	templateRepo := property_repository.NewTemplateRepo(q)
	askRepo := market_repository.NewAskRepo(q)
	bidRepo := market_repository.NewBidRepo(q)
	settingsRepo := market_repository.NewSettingsRepo(q)
	classRepo := sale_repository.NewClassRepo(q)
	engineRepo := sale_repository.NewEngineRepo(q)

	hc := hc_usecase.New(hcRepo)
	account := account_usecase.New(&account_usecase.AccountUseCaseCfg{
		Repo: accountRepo,
	})
	wallet := wallet_usecase.New(&wallet_usecase.WalletUseCaseCfg{
		WalletRepo: walletRepo,
		Admins:     admins,
	})
	property := property_usecase.New(&property_usecase.PropertyUseCaseCfg{
		PropertyRepo: propertyRepo,
		TemplateRepo: templateRepo,
		AssetRepo:    assetRepo,
		Minters:      minters,
		Admins:       admins,
	})
	asset := asset_usecase.New(&asset_usecase.AssetUseCaseCfg{
		AssetRepo:    assetRepo,
		PropertyUC:   property,
		AskRepo:      askRepo,
		BidRepo:      bidRepo,
		ActivityRepo: activityRepo,
		Minters:      minters,
	})
	market := market_usecase.New(&market_usecase.MarketUseCaseCfg{
		AskRepo:      askRepo,
		BidRepo:      bidRepo,
		SettingsRepo: settingsRepo,
		AssetUC:      asset,
		WalletUC:     wallet,
		ActivityRepo: activityRepo,
		Admins:       admins,
	})
	sale := sale_usecase.New(&sale_usecase.SaleUseCaseCfg{
		ClassRepo:     classRepo,
		EngineRepo:    engineRepo,
		AssetUC:       asset,
		PropertyUC:    property,
		WalletUC:      wallet,
		ActivityRepo:  activityRepo,
		Admins:        admins,
		EngineAddress: engineAddress,
		Decimals:      viper.GetInt32("sale.decimals"),
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetString("auth.signatureMsg"), account)

	authMiddleware := auth_middleware.New(auth, admins)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	account_delivery.New(e, account, activityRepo, authMiddleware)
	wallet_delivery.New(e, wallet, authMiddleware)
	asset_delivery.New(e, asset, property, authMiddleware)
	market_delivery.New(e, market, authMiddleware)
	sale_delivery.New(e, sale, authMiddleware)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, authMiddleware.Auth())

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
