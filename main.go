// Package main VTU Nigeria API.
//
// @title           VTU Nigeria API
// @version         1.0
// @description     Wallet-funded reseller API for airtime, data, TV, electricity, exam pins and flights.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"vtunigeria/app/echoServer"
	adminctrl "vtunigeria/app/echoServer/controller/admin"
	authctrl "vtunigeria/app/echoServer/controller/auth"
	catalogctrl "vtunigeria/app/echoServer/controller/catalog"
	flightctrl "vtunigeria/app/echoServer/controller/flight"
	paymentctrl "vtunigeria/app/echoServer/controller/payment"
	purchasectrl "vtunigeria/app/echoServer/controller/purchase"
	referralctrl "vtunigeria/app/echoServer/controller/referral"
	supportctrl "vtunigeria/app/echoServer/controller/support"
	walletctrl "vtunigeria/app/echoServer/controller/wallet"
	"vtunigeria/app/echoServer/validation"
	"vtunigeria/config"
	adminrepo "vtunigeria/repository/admin"
	authrepo "vtunigeria/repository/auth"
	catalogrepo "vtunigeria/repository/catalog"
	orderrepo "vtunigeria/repository/order"
	paystackrepo "vtunigeria/repository/paystack"
	referralrepo "vtunigeria/repository/referral"
	supportrepo "vtunigeria/repository/support"
	"vtunigeria/repository/vtuprov"
	walletrepo "vtunigeria/repository/wallet"
	adminsvc "vtunigeria/service/admin"
	authsvc "vtunigeria/service/auth"
	flightsvc "vtunigeria/service/flight"
	paymentsvc "vtunigeria/service/payment"
	purchasesvc "vtunigeria/service/purchase"
	referralsvc "vtunigeria/service/referral"
	supportsvc "vtunigeria/service/support"
	walletsvc "vtunigeria/service/wallet"
	"vtunigeria/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ar := authrepo.New(db)
	wr := walletrepo.New(db)
	cr := catalogrepo.New(db)
	or := orderrepo.New(db)
	rr := referralrepo.New(db)
	adr := adminrepo.New(db)
	sr := supportrepo.New(db)

	// external ports
	gw := paystackrepo.NewHTTP(cfg.PaystackSecret)
	var prov vtuprov.Repo
	if cfg.ProviderMode == "http" {
		prov = vtuprov.NewHTTP(cfg.ProviderBaseURL, cfg.ProviderAPIKey)
	} else {
		prov = vtuprov.NewMock()
	}

	var mailer supportsvc.Mailer
	if cfg.SendgridKey != "" {
		mailer = supportsvc.NewSendgridMailer(cfg.SendgridKey, cfg.SupportEmail)
	} else {
		mailer = supportsvc.NewLogMailer()
	}

	// services
	ws := walletsvc.New(db, wr, gw)
	as := authsvc.New(ar, rr, ws, cfg.JWTSecret)
	ps := paymentsvc.New(db, gw, wr, rr)
	bs := purchasesvc.New(db, cr, wr, or, prov)
	fs := flightsvc.New(db, cr, wr, or)
	rs := referralsvc.New(ar, rr)
	ads := adminsvc.New(adr, wr)
	ss := supportsvc.New(sr, mailer)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	walletC := &walletctrl.Controller{Svc: ws, Users: as, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, Log: log}
	catalogC := &catalogctrl.Controller{Repo: cr, Log: log}
	purchaseC := &purchasectrl.Controller{Svc: bs, V: v, Log: log}
	flightC := &flightctrl.Controller{Svc: fs, V: v, Log: log}
	referralC := &referralctrl.Controller{Svc: rs, Log: log}
	supportC := &supportctrl.Controller{Svc: ss, Users: as, V: v, Log: log}
	adminC := &adminctrl.Controller{Svc: ads, V: v, Log: log}

	// scheduler: expire stale PENDING topups
	cleaner := walletsvc.NewCleaner(wr)
	sched := cron.New(cron.WithSeconds())
	if _, err := sched.AddFunc(cfg.TopupExpiryCron, func() {
		n, err := cleaner.ExpireStale(context.Background())
		if err != nil {
			log.Error("topup expiry sweep failed", "err", err)
			return
		}
		if n > 0 {
			log.Info("expired stale topups", "count", n)
		}
	}); err != nil {
		log.Error("cron schedule invalid", "spec", cfg.TopupExpiryCron, "err", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Wallet:   walletC,
		Payment:  paymentC,
		Catalog:  catalogC,
		Purchase: purchaseC,
		Flight:   flightC,
		Referral: referralC,
		Support:  supportC,
		Admin:    adminC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env, "provider_mode", cfg.ProviderMode)

	e.Logger.Fatal(e.Start(":" + port))
}
