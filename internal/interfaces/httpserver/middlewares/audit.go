package middlewares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"freightdesk/services/support-api/internal/infrastructure/audit"
)

// AuditRecorder persists admin action entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// AdminAudit records every mutating request made by an admin. Reads
// are not tracked. Recording runs after the handler so the entry
// carries the final status code.
func AdminAudit(recorder AuditRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsAdmin() {
			return
		}

		recorder.Record(c.Request.Context(), audit.Entry{
			AdminID:    principal.ID,
			AdminEmail: principal.Email,
			Action:     c.Request.Method + " " + c.FullPath(),
			ResourceID: auditResourceID(c),
			StatusCode: c.Writer.Status(),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		})
	}
}

func auditResourceID(c *gin.Context) string {
	for _, param := range []string{"conv_public_id", "pkg_public_id", "uid"} {
		if id := c.Param(param); id != "" {
			return id
		}
	}
	return ""
}
