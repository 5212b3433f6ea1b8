// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"time"

	"codeberg.org/oliverandrich/kingcooking/internal/config"
	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/handlers"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"codeberg.org/oliverandrich/kingcooking/internal/services/auth"
	"codeberg.org/oliverandrich/kingcooking/internal/services/reset"
	"codeberg.org/oliverandrich/kingcooking/internal/services/session"
	"github.com/labstack/echo/v4"
)

func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	repo *repository.Repository,
	sessions *session.Manager,
	flashStore *flash.Store,
	mailer handlers.Mailer,
) {
	authService := auth.NewService(repo)
	resetService := reset.NewService(repo, authService, time.Duration(cfg.Reset.TokenTTL)*time.Minute)

	h := handlers.New(repo, flashStore)
	authH := handlers.NewAuth(
		authService,
		resetService,
		sessions,
		flashStore,
		mailer,
		time.Duration(cfg.Reset.SendTimeout)*time.Second,
	)
	recipes := handlers.NewRecipes(repo, flashStore)
	favorites := handlers.NewFavorites(repo, flashStore)
	schedule := handlers.NewSchedule(repo, flashStore)

	e.GET("/health", h.Health)
	e.GET("/", h.Index)

	e.GET("/signup", authH.SignupPage)
	e.POST("/signup", authH.Signup)
	e.GET("/login", authH.LoginPage)
	e.POST("/login", authH.Login)
	e.GET("/logout", authH.Logout)
	e.GET("/forgot", authH.ForgotPage)
	e.POST("/forgot", authH.Forgot)
	e.GET("/reset/:token", authH.ResetPage)
	e.POST("/reset/:token", authH.Reset)

	dashboard := e.Group("/dashboard", requireAuth(flashStore))
	dashboard.GET("", h.Dashboard)

	dashboard.GET("/myreceipes", recipes.List)
	dashboard.GET("/newreceipe", recipes.NewPage)
	dashboard.POST("/newreceipe", recipes.Create)
	dashboard.GET("/myreceipes/:id", recipes.Show)
	dashboard.POST("/myreceipes/:id", recipes.CreateIngredient)
	dashboard.DELETE("/myreceipes/:id", recipes.Delete)
	dashboard.GET("/myreceipes/:id/newingredient", recipes.NewIngredientPage)
	dashboard.POST("/myreceipes/:id/:ingredientID/edit", recipes.EditIngredientPage)
	dashboard.PUT("/myreceipes/:id/:ingredientID", recipes.UpdateIngredient)
	dashboard.DELETE("/myreceipes/:id/:ingredientID", recipes.DeleteIngredient)

	dashboard.GET("/favourites", favorites.List)
	dashboard.GET("/favourites/newfavourite", favorites.NewPage)
	dashboard.POST("/favourites", favorites.Create)
	dashboard.DELETE("/favourites/:id", favorites.Delete)

	dashboard.GET("/schedule", schedule.List)
	dashboard.GET("/schedule/newschedule", schedule.NewPage)
	dashboard.POST("/schedule", schedule.Create)
	dashboard.DELETE("/schedule/:id", schedule.Delete)
}
