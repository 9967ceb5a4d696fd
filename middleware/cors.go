package middleware

import "github.com/gin-gonic/gin"

// CORSMiddleware libera CORS aberto. O runtime do agente fala server-to-server
// (não passa por CORS); isso aqui existe pro console de operação em dev.
// Se um front de produção aparecer, troque por uma lista de origens.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Application-Version")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
