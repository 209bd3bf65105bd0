// Package services holds the client's application services. Each owns its
// state on the event loop and talks to the backend through client.Client.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docwatch/internal/client/client"
)

// AuthService logs the user in and out. Tokens live only in the client.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context)
	IsLoggedIn() bool
}

type authService struct {
	client client.Client
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	if err := a.client.Login(ctx, username, string(password)); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.client.Logout()
}

func (a *authService) IsLoggedIn() bool {
	return a.client.LoggedIn()
}
