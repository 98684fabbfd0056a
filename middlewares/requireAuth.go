package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeUser      = "user"
	TokenTypeLogistics = "logistics"
)

// RequireAuth validates an HS256 bearer token and stores its claims under "user".
func RequireAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Authorization token required"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid token claims"})
			return
		}

		ctx.Set("user", claims)
		ctx.Next()
	}
}

// RequireUser admits marketplace users and stores their id under "userId".
func RequireUser() gin.HandlerFunc {
	return requireTokenType(TokenTypeUser, "userId", "User access required")
}

func requireTokenType(tokenType, key, denied string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userClaims, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "User not found in context"})
			return
		}

		claims := userClaims.(jwt.MapClaims)
		kind, ok := claims["type"].(string)
		if !ok || kind != tokenType {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": false, "message": denied})
			return
		}

		id, err := subjectID(claims)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid token subject"})
			return
		}

		ctx.Set(key, id)
		ctx.Next()
	}
}

func subjectID(claims jwt.MapClaims) (uint, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}
	var id uint
	if _, err := fmt.Sscan(sub, &id); err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject %q", sub)
	}
	return id, nil
}
