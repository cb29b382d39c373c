package main

import (
	"os"

	"github.com/ekoca/volunteerhub/internal/pkg/logger"
	"github.com/ekoca/volunteerhub/internal/server"
)

// @title VolunteerHub API
// @version 1.0
// @description API for the VolunteerHub volunteer coordination platform

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}

	logger.Info().Msg("Server stopped")
}
