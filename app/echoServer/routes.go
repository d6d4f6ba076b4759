package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Washington-NKE/Bookvault/app/echoServer/controller/admin"
	"github.com/Washington-NKE/Bookvault/app/echoServer/controller/auth"
	"github.com/Washington-NKE/Bookvault/app/echoServer/controller/book"
	"github.com/Washington-NKE/Bookvault/app/echoServer/controller/borrow"
	"github.com/Washington-NKE/Bookvault/app/echoServer/jwtx"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Borrow    *borrow.Controller
	Admin     *admin.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	authed.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, _ := jwtx.RoleFromContext(ctx)
			ctx.Set("user_id", uid)
			ctx.Set("role", role)
			return next(ctx)
		}
	})

	// Books
	authed.GET("/books", c.Book.List)
	authed.GET("/books/:id", c.Book.Detail)
	// Admin catalog endpoints
	authed.POST("/books", c.Book.Create)
	authed.PUT("/books/:id", c.Book.Update)

	// Circulation
	authed.POST("/borrows/checkout", c.Borrow.Checkout)
	authed.POST("/borrows/request", c.Borrow.Request)
	authed.POST("/borrows/:id/return", c.Borrow.Return)
	authed.GET("/borrows/my", c.Borrow.My)
	authed.GET("/borrows/:id/receipt", c.Borrow.Receipt)

	// Admin review surface
	authed.GET("/admin/registrations", c.Admin.PendingRegistrations)
	authed.POST("/admin/users/:id/approve", c.Admin.ApproveUser)
	authed.POST("/admin/users/:id/reject", c.Admin.RejectUser)
	authed.GET("/admin/borrows/requests", c.Admin.PendingRequests)
	authed.POST("/admin/borrows/:id/status", c.Admin.SetBorrowStatus)
	authed.GET("/admin/stats", c.Admin.Stats)
}
