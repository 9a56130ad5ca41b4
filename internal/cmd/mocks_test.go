package cmd

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/smartchef/smartchef-cli/internal/di"
	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
)

// MockAuthService is a mock implementation of iface.AuthService
type MockAuthService struct {
	LoginFunc      func(ctx context.Context, username, password string) error
	RegisterFunc   func(ctx context.Context, input *iface.RegisterInput) (*iface.RegisterResult, error)
	LogoutFunc     func(ctx context.Context) error
	IsLoggedInFunc func() bool
	StatusFunc     func(ctx context.Context) (*iface.SessionStatus, error)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) error {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return nil
}

func (m *MockAuthService) Register(ctx context.Context, input *iface.RegisterInput) (*iface.RegisterResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &iface.RegisterResult{SignedIn: true}, nil
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockAuthService) IsLoggedIn() bool {
	if m.IsLoggedInFunc != nil {
		return m.IsLoggedInFunc()
	}
	return true
}

func (m *MockAuthService) Status(ctx context.Context) (*iface.SessionStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	return &iface.SessionStatus{Authenticated: true, State: "authenticated"}, nil
}

// MockRecipeService is a mock implementation of iface.RecipeService
type MockRecipeService struct {
	SuggestFunc        func(ctx context.Context, ingredients []string) (*iface.Suggestion, error)
	ListFavoritesFunc  func(ctx context.Context) ([]iface.Favorite, error)
	AddFavoriteFunc    func(ctx context.Context, recipeID int64) (int64, error)
	RemoveFavoriteFunc func(ctx context.Context, recipeID int64) error
}

func (m *MockRecipeService) Suggest(ctx context.Context, ingredients []string) (*iface.Suggestion, error) {
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, ingredients)
	}
	return &iface.Suggestion{Recipe: iface.Recipe{ID: 1, Title: "Test Recipe"}}, nil
}

func (m *MockRecipeService) ListFavorites(ctx context.Context) ([]iface.Favorite, error) {
	if m.ListFavoritesFunc != nil {
		return m.ListFavoritesFunc(ctx)
	}
	return nil, nil
}

func (m *MockRecipeService) AddFavorite(ctx context.Context, recipeID int64) (int64, error) {
	if m.AddFavoriteFunc != nil {
		return m.AddFavoriteFunc(ctx, recipeID)
	}
	return 1, nil
}

func (m *MockRecipeService) RemoveFavorite(ctx context.Context, recipeID int64) error {
	if m.RemoveFavoriteFunc != nil {
		return m.RemoveFavoriteFunc(ctx, recipeID)
	}
	return nil
}

// MockPaymentService is a mock implementation of iface.PaymentService
type MockPaymentService struct {
	CreateCheckoutFunc func(ctx context.Context, input *iface.CheckoutInput) (*iface.Checkout, error)
}

func (m *MockPaymentService) CreateCheckout(ctx context.Context, input *iface.CheckoutInput) (*iface.Checkout, error) {
	if m.CreateCheckoutFunc != nil {
		return m.CreateCheckoutFunc(ctx, input)
	}
	return &iface.Checkout{OrderID: "order-1", PaymentURL: "https://pay.example.com/order-1"}, nil
}

// executeWithMocks runs the CLI with the given args against mock services
// and returns what the command wrote to stdout.
func executeWithMocks(auth iface.AuthService, recipes iface.RecipeService, payments iface.PaymentService, args ...string) (string, error) {
	if auth == nil {
		auth = &MockAuthService{}
	}
	if recipes == nil {
		recipes = &MockRecipeService{}
	}
	if payments == nil {
		payments = &MockPaymentService{}
	}

	root := NewRootCommand()
	root.SetContainer(di.NewContainerWithServices(auth, recipes, payments))

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	root.Command().SetArgs(args)
	err := root.Command().Execute()

	// Restore stdout and read output
	w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	io.Copy(&buf, r)

	return buf.String(), err
}
