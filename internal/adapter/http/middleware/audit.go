package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuditLog writes one audit line per successful state-changing request.
// It runs after the handler so only committed operations are recorded.
func AuditLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method != http.MethodPost {
			return
		}

		action, resource := mapPathToAction(c.FullPath())
		if action == "" {
			return
		}

		event := log.Info().
			Str("audit_action", action).
			Str("resource", resource).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status())
		if id, ok := IdentityID(c); ok {
			event = event.Int64("identity_id", id)
		}
		event.Msg("audit")
	}
}

func mapPathToAction(route string) (string, string) {
	switch route {
	case "/api/v1/auth/register":
		return "REGISTER", "identity"
	case "/api/v1/auth/login":
		return "LOGIN", "session"
	case "/api/v1/topup":
		return "TOPUP", "balance"
	case "/api/v1/transaction":
		return "PAYMENT", "balance"
	}
	return "", ""
}
