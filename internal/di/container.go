// Package di provides dependency injection for the SmartChef CLI.
// It contains the service container and factory functions.
package di

import (
	"context"
	"log/slog"

	"github.com/smartchef/smartchef-cli/internal/api"
	"github.com/smartchef/smartchef-cli/internal/auth"
	"github.com/smartchef/smartchef-cli/internal/config"
	"github.com/smartchef/smartchef-cli/internal/service"
	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
	"github.com/smartchef/smartchef-cli/internal/session"
)

// Container holds all service dependencies for the CLI.
// Services are accessed via interfaces to enable mocking in tests.
type Container struct {
	authService    iface.AuthService
	recipeService  iface.RecipeService
	paymentService iface.PaymentService
}

// NewContainer creates a new dependency container with default implementations
// and restores the persisted session.
func NewContainer(ctx context.Context, settings *config.Settings, logger *slog.Logger) (*Container, error) {
	store, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	return NewContainerWithStore(ctx, settings, store, logger), nil
}

// NewContainerWithStore wires the services on top of a given token store
func NewContainerWithStore(ctx context.Context, settings *config.Settings, store session.Store, logger *slog.Logger) *Container {
	client := api.NewClient(settings.APIURL, settings.Timeout, logger)
	sess := session.NewManager(store, auth.NewRemote(client), logger)
	client.SetTokenSource(sess)

	// An unreadable store leaves the CLI usable so the user can log in again
	if _, err := sess.InitSession(ctx); err != nil {
		logger.WarnContext(ctx, "starting without a session", slog.Any("error", err))
	}

	return &Container{
		authService:    service.NewAuthService(sess, client),
		recipeService:  service.NewRecipeService(sess, client),
		paymentService: service.NewPaymentService(sess, client),
	}
}

// NewContainerWithServices creates a container with custom service implementations.
// This is useful for testing with mock services.
func NewContainerWithServices(
	authService iface.AuthService,
	recipeService iface.RecipeService,
	paymentService iface.PaymentService,
) *Container {
	return &Container{
		authService:    authService,
		recipeService:  recipeService,
		paymentService: paymentService,
	}
}

// AuthService returns the authentication service
func (c *Container) AuthService() iface.AuthService {
	return c.authService
}

// RecipeService returns the recipe service
func (c *Container) RecipeService() iface.RecipeService {
	return c.recipeService
}

// PaymentService returns the payment service
func (c *Container) PaymentService() iface.PaymentService {
	return c.paymentService
}
