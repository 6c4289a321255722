package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/checkout"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/config"
)

// Handlers holds all HTTP handlers for the payments service.
type Handlers struct {
	checkoutService *checkout.Service
	config          *config.Config
	logger          *logrus.Entry
}

// NewHandlers creates a new handlers instance.
func NewHandlers(checkoutService *checkout.Service, cfg *config.Config, logger *logrus.Entry) *Handlers {
	return &Handlers{
		checkoutService: checkoutService,
		config:          cfg,
		logger:          logger,
	}
}
