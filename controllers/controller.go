package controllers

import "github.com/gin-gonic/gin"

// RespondError responde {"error": msg} com o status dado.
func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

// RespondSuccess responde 200 com o payload como veio.
// O runtime do agente espera sempre um objeto JSON no corpo.
func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}
