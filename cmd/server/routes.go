package main

import (
	"github.com/gin-gonic/gin"
	"lendhub.backend/internal/interfaces/http/handlers"
	"lendhub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	loanHandler    *handlers.LoanHandler
	userHandler    *handlers.UserHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// Loan request routes (protected)
		loans := v1.Group("/loans")
		loans.Use(d.authMiddleware)
		{
			loans.POST("", middleware.IdempotencyMiddleware(), d.loanHandler.Create)
			loans.GET("/open", d.loanHandler.ListOpen)
			loans.GET("/borrower/:userId", d.loanHandler.ListByBorrower)
			loans.GET("/lender/:userId", d.loanHandler.ListByLender)
			loans.GET("/:id", d.loanHandler.Get)
			loans.POST("/:id/interest", d.loanHandler.ExpressInterest)
			loans.POST("/:id/respond", d.loanHandler.Respond)
		}

		// Profile routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/profile", d.userHandler.GetProfile)
			users.PUT("/profile", d.userHandler.UpdateProfile)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/requests", d.adminHandler.ListLoanRequests)
			admin.PUT("/requests/:id/review", d.adminHandler.FlagForReview)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.POST("/kyc/:userId/verify", d.adminHandler.VerifyKYC)
		}
	}
}
