package middlewares

import "github.com/gin-gonic/gin"

// RequireLogistics admits logistics providers and stores their id under "logisticsId".
func RequireLogistics() gin.HandlerFunc {
	return requireTokenType(TokenTypeLogistics, "logisticsId", "Logistics access required")
}
