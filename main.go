// Package main Bookvault API.
//
// @title           Bookvault API
// @version         1.0
// @description     Library circulation service (catalog, borrowing, approvals).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Washington-NKE/Bookvault/app/echoServer"
	adminctrl "github.com/Washington-NKE/Bookvault/app/echoServer/controller/admin"
	authctrl "github.com/Washington-NKE/Bookvault/app/echoServer/controller/auth"
	bookctrl "github.com/Washington-NKE/Bookvault/app/echoServer/controller/book"
	borrowctrl "github.com/Washington-NKE/Bookvault/app/echoServer/controller/borrow"
	"github.com/Washington-NKE/Bookvault/app/echoServer/validation"
	"github.com/Washington-NKE/Bookvault/config"
	bookrepo "github.com/Washington-NKE/Bookvault/repository/book"
	borrowrepo "github.com/Washington-NKE/Bookvault/repository/borrow"
	notifyrepo "github.com/Washington-NKE/Bookvault/repository/notify"
	userrepo "github.com/Washington-NKE/Bookvault/repository/user"
	accountsvc "github.com/Washington-NKE/Bookvault/service/account"
	authsvc "github.com/Washington-NKE/Bookvault/service/auth"
	booksvc "github.com/Washington-NKE/Bookvault/service/book"
	"github.com/Washington-NKE/Bookvault/service/circulation"
	viewsvc "github.com/Washington-NKE/Bookvault/service/view"
	"github.com/Washington-NKE/Bookvault/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	store := borrowrepo.New(db)
	queries := borrowrepo.NewQueries(db)

	notifier := notifyrepo.NewNoop()
	if cfg.MailAPIURL != "" && cfg.MailAPIKey != "" {
		notifier = notifyrepo.NewHTTP(cfg.MailAPIURL, cfg.MailAPIKey)
	}

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	accounts := accountsvc.New(ur)
	books := booksvc.New(br)
	circ := circulation.New(store, ur, notifier, cfg.LoanPeriodDays, log)
	views := viewsvc.New(queries)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: books, V: v, Log: log}
	borrowC := &borrowctrl.Controller{Svc: circ, View: views, V: v, Log: log}
	adminC := &adminctrl.Controller{Accounts: accounts, Circ: circ, View: views, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:   authC,
		Book:   bookC,
		Borrow: borrowC,
		Admin:  adminC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
