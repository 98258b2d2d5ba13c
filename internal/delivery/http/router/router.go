// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"emotionai/internal/delivery/http/middleware"
	"emotionai/internal/delivery/http/router/handler"
	"emotionai/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler           *handler.AuthHandler
	PatientHandler        *handler.PatientHandler
	TherapySessionHandler *handler.TherapySessionHandler
	AnalyticsHandler      *handler.AnalyticsHandler
	AgentHandler          *handler.AgentHandler
	AuthMiddleware        *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler           *handler.AuthHandler
	patientHandler        *handler.PatientHandler
	therapySessionHandler *handler.TherapySessionHandler
	analyticsHandler      *handler.AnalyticsHandler
	agentHandler          *handler.AgentHandler
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:           params.AuthHandler,
		patientHandler:        params.PatientHandler,
		therapySessionHandler: params.TherapySessionHandler,
		analyticsHandler:      params.AnalyticsHandler,
		agentHandler:          params.AgentHandler,
		authMiddleware:        params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Account routes that require authentication
	accountGroup := e.Group("/auth")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.POST("/logout", r.authHandler.Logout)
		accountGroup.GET("/me", r.authHandler.Me)
		accountGroup.PATCH("/me", r.authHandler.UpdateMe)
	}

	// Admin routes require authentication and the "admin" role
	adminGroup := e.Group("/auth/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/dashboard", r.authHandler.AdminDashboard)
	}

	// Patient routes, always scoped to the authenticated clinic account
	patientGroup := e.Group("/patients")
	patientGroup.Use(r.authMiddleware.Authenticate)
	{
		patientGroup.POST("", r.patientHandler.Create)
		patientGroup.GET("", r.patientHandler.List)
		patientGroup.GET("/:id", r.patientHandler.Get)
		patientGroup.POST("/:id/notes", r.patientHandler.AddNote)
		patientGroup.GET("/:id/notes", r.patientHandler.ListNotes)

		patientGroup.POST("/:id/therapy-sessions", r.therapySessionHandler.Create)
		patientGroup.GET("/:id/therapy-sessions", r.therapySessionHandler.List)
		patientGroup.GET("/:id/therapy-sessions/:sid", r.therapySessionHandler.Get)
		patientGroup.PATCH("/:id/therapy-sessions/:sid/observations", r.therapySessionHandler.UpdateObservations)
		patientGroup.POST("/:id/therapy-sessions/analyze", r.therapySessionHandler.Analyze)
	}

	// Analytics routes aggregate a patient's stored analysis documents
	analyticsGroup := e.Group("/analytics")
	analyticsGroup.Use(r.authMiddleware.Authenticate)
	{
		analyticsGroup.GET("/patient/:id/emotions/summary", r.analyticsHandler.Summary)
		analyticsGroup.GET("/patient/:id/emotions/by-session", r.analyticsHandler.BySession)
	}

	// Agent proxy routes
	agentGroup := e.Group("/agent")
	agentGroup.Use(r.authMiddleware.Authenticate)
	{
		agentGroup.POST("/chat", r.agentHandler.SendMessage)
		agentGroup.GET("/chat/:patient_id", r.agentHandler.ChatHistory)
		agentGroup.POST("/analyze/:patient_id", r.agentHandler.Analyze)
	}
}
