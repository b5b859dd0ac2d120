// Package main is the entry point for the coating-service application.
//
// @title           Coating Service API
// @version         1.0.0
// @description     Quote pricing, catalog management and content for a powder coating shop.
//
//	Prices multi-step quote requests against a versioned catalog and stores submitted quotes for review.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/coating-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT access token as "Bearer <token>".
//
// @tag.name        Quotes
// @tag.description Quote estimates, the quote form and saved quotes
//
// @tag.name        Catalog
// @tag.description The active pricing catalog
//
// @tag.name        Blog
// @tag.description Published articles
//
// @tag.name        Contact
// @tag.description Contact form
//
// @tag.name        Admin
// @tag.description Quote review, catalog publishing and content management
//
// @tag.name        Auth
// @tag.description Authentication endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/coating-service/config"
	_ "github.com/guttosm/coating-service/docs" // swagger docs
	"github.com/guttosm/coating-service/internal/app"
)

func main() {
	// A missing .env is fine; the environment wins over it.
	_ = godotenv.Load()

	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server)
	server.OnShutdown(application.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
