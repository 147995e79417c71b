package main

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/user/nairaswap/backend/internal/auth"
	"github.com/user/nairaswap/backend/internal/authz"
	"github.com/user/nairaswap/backend/internal/config"
	"github.com/user/nairaswap/backend/internal/database"
	"github.com/user/nairaswap/backend/internal/handlers"
	"github.com/user/nairaswap/backend/internal/middleware"
	"github.com/user/nairaswap/backend/internal/ratefeed"
	internalws "github.com/user/nairaswap/backend/internal/websocket"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	auth.Init(cfg.JWTSecret)
	handlers.Currency = cfg.Currency

	// Initialize Database
	if err := database.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer database.CloseDB()

	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Schema migration failed: %v", err)
	}

	// Initialize WebSocket Hub and the bitcoin rate feed behind it
	internalws.InitializeGlobalHub()
	ratefeed.InitFeed()

	roleStore := database.NewRoleStore()

	app := fiber.New()

	// --- WebSocket Routes ---
	wsGroup := app.Group("/ws")
	wsGroup.Use("/", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	wsGroup.Get("/rates", websocket.New(handlers.RateWSEndpoint))

	// --- API Routes ---
	api := app.Group("/api")

	// Health check (Public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("NairaSwap API is healthy!")
	})

	// Public rate board
	api.Get("/rates", handlers.GetRates)

	// Auth routes (Public)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", handlers.Signup)
	authGroup.Post("/login", handlers.Login)

	// --- Protected Routes ---
	api.Use(middleware.Protected())

	api.Get("/me", handlers.GetMe)

	// Trade submission and self-service reads
	tradesGroup := api.Group("/trades")
	tradesGroup.Post("/giftcard", handlers.SubmitGiftCardTrade)
	tradesGroup.Post("/bitcoin", handlers.SubmitBitcoinTrade)
	tradesGroup.Get("/", handlers.GetTrades)
	tradesGroup.Get("/:id", handlers.GetTradeByID)

	// Wallet
	api.Get("/wallet", handlers.GetWallet)
	api.Get("/wallet/transactions", handlers.GetTransactions)
	api.Post("/wallet/deposit", handlers.Deposit)
	api.Post("/wallet/withdraw", handlers.Withdraw)

	// Payout destinations
	bankGroup := api.Group("/bank-accounts")
	bankGroup.Get("/", handlers.ListBankAccounts)
	bankGroup.Post("/", handlers.CreateBankAccount)
	bankGroup.Delete("/:id", handlers.DeleteBankAccount)

	// --- Admin Routes (role check fails closed) ---
	admin := api.Group("/admin", authz.RequireAdmin(roleStore))
	admin.Get("/trades", handlers.ListTradesByStatus)
	admin.Patch("/trades/:id/review", handlers.ReviewTrade)
	admin.Post("/rates/giftcard", handlers.SetGiftCardRate)
	admin.Delete("/rates/giftcard/:id", handlers.DeactivateGiftCardRate)
	admin.Post("/rates/bitcoin", handlers.AppendBitcoinRate)
	admin.Get("/analytics", handlers.GetAnalytics)
	admin.Get("/users", handlers.ListUsers)
	admin.Patch("/users/:id/kyc", handlers.UpdateKYC)

	log.Printf("Starting server on %s", cfg.ListenAddr)
	log.Fatal(app.Listen(cfg.ListenAddr))
}
