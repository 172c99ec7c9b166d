// Package routes declares the API surface.
package routes

import (
	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

// Controllers bundles the handlers mounted by RegisterAPI.
type Controllers struct {
	Users      *controllers.UserController
	Categories *controllers.CategoryController
	Products   *controllers.ProductController
	Orders     *controllers.OrderController
}

// RegisterAPI mounts the public account routes and, behind gate, everything
// else.
func RegisterAPI(r *router.Router, c Controllers, gate router.Middleware) {
	r.Post("/users", "users.register", ctx.Handle(c.Users.Register))
	r.Post("/session", "users.session", ctx.Handle(c.Users.Session))

	protected := r.Group("", gate)
	protected.Get("/me", "users.me", ctx.Handle(c.Users.Me))

	protected.Post("/category", "categories.create", ctx.Handle(c.Categories.Create))
	protected.Get("/category", "categories.list", ctx.Handle(c.Categories.List))

	protected.Post("/product", "products.create", ctx.Handle(c.Products.Create))
	protected.Get("/category/product", "products.by_category", ctx.Handle(c.Products.ListByCategory))

	protected.Post("/order", "orders.create", ctx.Handle(c.Orders.Create))
	protected.Delete("/order", "orders.remove", ctx.Handle(c.Orders.Remove))
	protected.Post("/order/add", "orders.items.add", ctx.Handle(c.Orders.AddItem))
	protected.Delete("/order/remove", "orders.items.remove", ctx.Handle(c.Orders.RemoveItem))
	protected.Put("/order/send", "orders.send", ctx.Handle(c.Orders.Send))
	protected.Get("/orders", "orders.list", ctx.Handle(c.Orders.List))
	protected.Get("/order/detail", "orders.detail", ctx.Handle(c.Orders.Detail))
	protected.Put("/order/finish", "orders.finish", ctx.Handle(c.Orders.Finish))
}
