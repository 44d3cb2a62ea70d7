package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"bagshop/internal/config"
	"bagshop/internal/domain"
	applog "bagshop/internal/log"
)

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "bagshop",
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(applog.Access())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-API-Key",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := d.DB.PingContext(c.UserContext()); err != nil {
			return domain.DataAccess("database unavailable", err)
		}
		return c.JSON(fiber.Map{"ok": true})
	})

	api := app.Group("/api")

	// Catalog
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/new", d.ProductHandler.New)
	api.Get("/products/best", d.ProductHandler.Best)
	api.Get("/products/:id", d.ProductHandler.Detail)
	admin := RequireAPIKey(cfg.AdminAPIKey)
	api.Post("/products", admin, d.ProductHandler.Create)
	api.Delete("/products/:id", admin, d.ProductHandler.Delete)

	// Cart
	carts := api.Group("/carts", RequireUser(d.Tokens))
	carts.Get("/", d.CartHandler.View)
	carts.Post("/", d.CartHandler.Add)
	carts.Delete("/:productId", d.CartHandler.Remove)

	// Users (signup/login throttled)
	users := api.Group("/users")
	throttle := authLimiter(cfg.LoginRateLimit)
	users.Post("/signup", throttle, d.AuthHandler.Signup)
	users.Post("/login", throttle, d.AuthHandler.Login)
	users.Get("/me", RequireUser(d.Tokens), d.AuthHandler.Me)
	users.Put("/me", RequireUser(d.Tokens), d.AuthHandler.UpdateMe)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	return app
}

func authLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return fiber.ErrTooManyRequests
		},
	})
}
