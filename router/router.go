package router

import (
	"log"

	"stella/config"
	"stella/controllers"
	"stella/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Initialize wires all routes and middlewares.
// Três superfícies: pública (health/metrics/webhook), agente (token estático)
// e operação (calls/users) - por ora também atrás do token do agente.
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Webhook da plataforma de voz (autenticado pelo JWT da própria plataforma)
	api.POST("/webhook/livekit", Logger(), controllers.LivekitWebhook)

	// Tudo abaixo exige o token do agente
	agent := api.Group("")
	agent.Use(controllers.AgentAuthRequired())

	// Usuários
	agent.POST("/users", Logger(), controllers.CreateUser)
	agent.GET("/users/:id", Logger(), controllers.GetUserByID)
	agent.GET("/agent/users", Logger(), controllers.LookupUserByPhone)

	// Callbacks do agente durante a ligação
	agent.GET("/agent/context", Logger(), controllers.GetCoachingContext)
	agent.POST("/agent/events", Logger(), controllers.ReportEvent)
	agent.PUT("/agent/events", Logger(), controllers.UpdateEventProgress)
	agent.GET("/agent/events", Logger(), controllers.GetActiveEvents)
	agent.POST("/agent/habits", Logger(), controllers.UpsertHabit)
	agent.GET("/agent/habits", Logger(), controllers.GetHabitsForUser)
	agent.POST("/agent/onboarding", Logger(), controllers.UpsertOnboarding)
	agent.GET("/agent/onboarding", Logger(), controllers.GetOnboarding)
	agent.POST("/agent/messages", Logger(), controllers.CreateMessage)
	agent.GET("/agent/messages", Logger(), controllers.GetMessages)
	agent.POST("/agent/reply", Logger(), controllers.GenerateReply)
	agent.GET("/agent/status", Logger(), controllers.AgentStatus)

	// Ligações outbound
	agent.POST("/calls", Logger(), controllers.CreateCall)
	agent.GET("/calls", Logger(), controllers.GetCalls)
	agent.GET("/calls/:id", Logger(), controllers.GetCallByID)

	log.Printf("Routes initialized")
}
