package main

import (
	"os"

	"github.com/aegisplatform/aegis/internal/pkg/logger"
	"github.com/aegisplatform/aegis/internal/server"
)

// @title AEGIS API
// @version 1.0
// @description Role-based university platform: authentication, grievances, courses, opportunities and personal tasks.

// @contact.name API Support
// @contact.email support@aegisplatform.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token, prefixed with "Bearer "

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}
}
