package echoServer

import (
	"net/http"

	"vtunigeria/app/echoServer/controller/admin"
	"vtunigeria/app/echoServer/controller/auth"
	"vtunigeria/app/echoServer/controller/catalog"
	"vtunigeria/app/echoServer/controller/flight"
	"vtunigeria/app/echoServer/controller/payment"
	"vtunigeria/app/echoServer/controller/purchase"
	"vtunigeria/app/echoServer/controller/referral"
	"vtunigeria/app/echoServer/controller/support"
	"vtunigeria/app/echoServer/controller/wallet"
	"vtunigeria/app/echoServer/jwtx"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Wallet    *wallet.Controller
	Payment   *payment.Controller
	Catalog   *catalog.Controller
	Purchase  *purchase.Controller
	Flight    *flight.Controller
	Referral  *referral.Controller
	Support   *support.Controller
	Admin     *admin.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	// gateway webhook
	pub.POST("/payment/paystack", c.Payment.HandlePaystack)

	// Authenticated
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id extraction
	authed.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			if role, err := jwtx.RoleFromContext(ctx); err == nil {
				ctx.Set("role", role)
			}
			return next(ctx)
		}
	})

	// Profile
	authed.POST("/auth/logout", c.Auth.Logout)
	authed.GET("/me", c.Auth.Me)
	authed.PUT("/me", c.Auth.UpdateProfile)

	// Wallet
	authed.POST("/wallet/fund", c.Wallet.Fund) // returns payment link
	authed.GET("/wallet", c.Wallet.Balance)
	authed.GET("/wallet/transactions", c.Wallet.Transactions)

	// Catalogs
	authed.GET("/networks", c.Catalog.Networks)
	authed.GET("/networks/:id/plans", c.Catalog.DataPlans)
	authed.GET("/tv/providers", c.Catalog.TVProviders)
	authed.GET("/tv/providers/:id/plans", c.Catalog.TVPlans)
	authed.GET("/discos", c.Catalog.Discos)
	authed.GET("/education/services", c.Catalog.ExamServices)

	// Purchases
	authed.POST("/purchases/airtime", c.Purchase.Airtime)
	authed.POST("/purchases/data", c.Purchase.Data)
	authed.POST("/purchases/tv", c.Purchase.TV)
	authed.POST("/purchases/electricity", c.Purchase.Electricity)
	authed.POST("/purchases/education", c.Purchase.Education)
	authed.POST("/validate/smartcard", c.Purchase.ValidateSmartCard)
	authed.POST("/validate/meter", c.Purchase.ValidateMeter)
	authed.GET("/orders", c.Purchase.Orders)

	// Flights
	authed.GET("/flights/cities", c.Flight.Cities)
	authed.POST("/flights/search", c.Flight.Search)
	authed.POST("/flights/book", c.Flight.Book)

	// Referrals
	authed.GET("/referrals", c.Referral.Overview)

	// Support
	authed.POST("/support", c.Support.Submit)
	authed.GET("/support", c.Support.History)

	// Admin
	adm := e.Group("/v1/admin", JWTAuth(c.JWTSecret), RequireRole("admin"))
	adm.GET("/dashboard", c.Admin.Dashboard)
	adm.GET("/transactions", c.Admin.Transactions)
	adm.PATCH("/users/:id/status", c.Admin.SetUserStatus)
}
