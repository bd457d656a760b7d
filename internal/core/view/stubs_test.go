package view

import (
	"context"

	"github.com/99minutos/user-console/internal/core/domain"
)

type stubUsers struct {
	listFn   func(ctx context.Context, page int) (*domain.UserPage, error)
	getFn    func(ctx context.Context, id int) (*domain.User, error)
	updateFn func(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error)
	deleteFn func(ctx context.Context, id int) error
}

func (s *stubUsers) ListUsers(ctx context.Context, page int) (*domain.UserPage, error) {
	return s.listFn(ctx, page)
}

func (s *stubUsers) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUsers) UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, id, update)
}

func (s *stubUsers) DeleteUser(ctx context.Context, id int) error {
	return s.deleteFn(ctx, id)
}

type stubNav struct {
	navs []domain.Navigation
}

func (n *stubNav) Navigate(nav domain.Navigation) {
	n.navs = append(n.navs, nav)
}

type stubSession struct {
	loginFn       func(ctx context.Context, email, password string) error
	authenticated bool
	loading       bool
}

func (s *stubSession) Login(ctx context.Context, email, password string) error {
	return s.loginFn(ctx, email, password)
}
func (s *stubSession) Logout(context.Context) {}
func (s *stubSession) IsAuthenticated() bool { return s.authenticated }
func (s *stubSession) IsLoading(context.Context) bool { return s.loading }
func (s *stubSession) Token() string { return "" }

var pageOne = []domain.User{
	{ID: 1, Email: "george.bluth@reqres.in", FirstName: "George", LastName: "Bluth", Avatar: "https://reqres.in/img/faces/1-image.jpg"},
	{ID: 2, Email: "janet.weaver@reqres.in", FirstName: "Janet", LastName: "Weaver", Avatar: "https://reqres.in/img/faces/2-image.jpg"},
	{ID: 3, Email: "emma.wong@reqres.in", FirstName: "Emma", LastName: "Wong", Avatar: "https://reqres.in/img/faces/3-image.jpg"},
}
