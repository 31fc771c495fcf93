package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/pkg/auth"
	"github.com/iamasit07/connect-four/pkg/httputil"
)

const ViewClaimsKey = "view_claims"

// ViewTokenMiddleware only lets requests through whose view token was issued
// for the game named by the :param route parameter.
func ViewTokenMiddleware(tokens *auth.ViewTokenIssuer, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := tokens.ValidateForGame(tokenString, c.Param(param))
		if errors.Is(err, auth.ErrWrongGame) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token not valid for this game"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ViewClaimsKey, claims)
		c.Next()
	}
}
