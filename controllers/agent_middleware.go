package controllers

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// AgentAuthRequired protege os endpoints chamados pelo runtime do agente de voz.
// Token estático compartilhado (AGENT_API_TOKEN), comparação em tempo constante.
// Não há login humano aqui: quem fala com essa API é só o agente.
func AgentAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := strings.TrimSpace(os.Getenv("AGENT_API_TOKEN"))
		if expected == "" {
			RespondError(c, "AGENT_API_TOKEN not set", http.StatusInternalServerError)
			c.Abort()
			return
		}

		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		token := strings.TrimSpace(h[len("Bearer "):])

		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Next()
	}
}
