// Package controllers adapts HTTP requests to service calls. Every handler
// has the ctx.HandlerFunc shape; the ctx package writes results and maps
// errors to status codes.
package controllers

import (
	"context"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (models.PublicUser, error)
	Authenticate(ctx context.Context, email, password string) (services.Session, error)
	Detail(ctx context.Context, userID string) (models.PublicUser, error)
}

type UserController struct {
	users UserService
}

func NewUserController(users UserService) *UserController {
	return &UserController{users: users}
}

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"nullable,email"`
	Password string `json:"password"`
}

type sessionInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /users.
func (uc *UserController) Register(c *ctx.Context) (any, error) {
	var in registerInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return uc.users.Register(c.Context(), in.Name, in.Email, in.Password)
}

// Session handles POST /session.
func (uc *UserController) Session(c *ctx.Context) (any, error) {
	var in sessionInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return uc.users.Authenticate(c.Context(), in.Email, in.Password)
}

// Me handles GET /me for the authenticated caller.
func (uc *UserController) Me(c *ctx.Context) (any, error) {
	id, err := c.UserID()
	if err != nil {
		return nil, err
	}
	return uc.users.Detail(c.Context(), id)
}
