package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"team-hub.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	teamHandler       *handlers.TeamHandler
	chatHandler       *handlers.ChatHandler
	snapshotHandler   *handlers.SnapshotHandler
	invitationHandler *handlers.InvitationHandler
	aiHandler         *handlers.AIHandler
	wsHandler         *handlers.WSHandler
	authMiddleware    gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Team routes (protected)
		teams := v1.Group("/teams")
		teams.Use(d.authMiddleware)
		{
			teams.GET("", d.teamHandler.ListTeams)
			teams.POST("", d.teamHandler.CreateTeam)
			teams.POST("/join", d.teamHandler.JoinTeam)
			teams.GET("/:id", d.teamHandler.GetTeam)
			teams.DELETE("/:id", d.teamHandler.DeleteTeam)
			teams.POST("/:id/leave", d.teamHandler.LeaveTeam)
			teams.GET("/:id/members", d.teamHandler.ListMembers)
			teams.POST("/:id/codes", d.teamHandler.RegenerateCodes)
			teams.PUT("/:id/password", d.teamHandler.SetPassword)

			// Chat channel
			teams.GET("/:id/messages", d.chatHandler.ListMessages)
			teams.POST("/:id/messages", d.chatHandler.SendMessage)

			// Snapshots
			teams.PUT("/:id/snapshots/:kind", d.snapshotHandler.UpsertSnapshot)
			teams.GET("/:id/snapshots/:kind/:userId", d.snapshotHandler.GetSnapshot)

			// Invitations
			teams.POST("/:id/invitations", d.invitationHandler.CreateInvitation)
			teams.GET("/:id/invitations", d.invitationHandler.ListInvitations)
		}

		invitations := v1.Group("/invitations")
		invitations.Use(d.authMiddleware)
		{
			invitations.POST("/:id/accept", d.invitationHandler.AcceptInvitation)
		}

		// AI proxy (protected)
		ai := v1.Group("/ai")
		ai.Use(d.authMiddleware)
		{
			ai.POST("/chat", d.aiHandler.Chat)
		}

		// Realtime websocket (protected; token also accepted as query param)
		v1.GET("/ws", d.authMiddleware, d.wsHandler.Connect)
	}
}
