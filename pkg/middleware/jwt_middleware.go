package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"moodlog/pkg/memcache"
	"moodlog/pkg/utils"
)

const (
	AccountIDKey      = "account_id"
	TokenIDKey        = "token_id"
	TokenExpiresAtKey = "token_expires_at"
)

func JWTAuthMiddleware(jwtManager *utils.JWTManager, denylist memcache.TokenDenylist) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			zap.L().Warn("token denylist lookup failed", zap.String("trace_id", c.GetString(TraceIDKey)), zap.Error(err))
		}
		if revoked || err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Token is logged out")
			c.Abort()
			return
		}

		accountID, _ := claims.AccountID()
		c.Set(AccountIDKey, accountID)
		c.Set(TokenIDKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(TokenExpiresAtKey, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// AccountIDFromContext returns the id stored by JWTAuthMiddleware.
func AccountIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(AccountIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// TokenFromContext returns the token id and its expiry for logout.
func TokenFromContext(c *gin.Context) (string, time.Time) {
	expiresAt, _ := c.Get(TokenExpiresAtKey)
	t, _ := expiresAt.(time.Time)
	return c.GetString(TokenIDKey), t
}
