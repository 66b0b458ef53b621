package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextBarberID = "barberID"
)

// AuthMiddleware validates the bearer token. For barber accounts the linked
// barber profile is resolved once here so handlers can authorise against it.
func AuthMiddleware(cfg *config.Config, barbers domain.BarberDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		userID, ok := claims["sub"].(float64)
		role, _ := claims["role"].(string)
		if !ok || userID <= 0 || role == "" {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)

		if role == models.RoleBarber {
			barber, err := barbers.GetBarberByUserID(c.Request.Context(), uint(userID))
			if err != nil {
				zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("resolve barber profile")
				httperr.Respond(c, httperr.Unavailable("get_barber_by_user", err))
				c.Abort()
				return
			}
			if barber != nil {
				c.Set(ContextBarberID, barber.ID)
			}
		}

		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden_role", "Your account cannot perform this action.")
		c.Abort()
	}
}

// RequireBarberProfile rejects barber accounts not linked to a barber.
func RequireBarberProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetUint(ContextBarberID) == 0 {
			httperr.Forbidden(c, "no_barber_profile", "This account is not linked to a barber.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Actor builds the booking actor of the authenticated request.
func Actor(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID:   c.GetUint(ContextUserID),
		Role:     c.GetString(ContextUserRole),
		BarberID: c.GetUint(ContextBarberID),
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Authentication required.")
	c.Abort()
}
