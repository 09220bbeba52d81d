package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"freightdesk/services/support-api/internal/domain"
	"freightdesk/services/support-api/internal/infrastructure/audit"
)

type recorderSpy struct {
	entries []audit.Entry
}

func (r *recorderSpy) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

func auditTestRouter(spy *recorderSpy, principal *domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if principal != nil {
			setPrincipal(c, *principal)
		}
	})
	router.Use(AdminAudit(spy))
	router.POST("/conversations/:conv_public_id/end", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/conversations/:conv_public_id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAdminAuditRecordsMutations(t *testing.T) {
	spy := &recorderSpy{}
	admin := &domain.Principal{ID: "usr_admin", Email: "agent@freightdesk.test", Role: domain.RoleAdmin}
	router := auditTestRouter(spy, admin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/conversations/conv_abc123/end", nil)
	req.Header.Set("User-Agent", "support-console/2.1")
	router.ServeHTTP(w, req)

	if len(spy.entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(spy.entries))
	}
	entry := spy.entries[0]
	if entry.AdminID != "usr_admin" {
		t.Errorf("AdminID = %q, want usr_admin", entry.AdminID)
	}
	if entry.Action != "POST /conversations/:conv_public_id/end" {
		t.Errorf("Action = %q", entry.Action)
	}
	if entry.ResourceID != "conv_abc123" {
		t.Errorf("ResourceID = %q, want conv_abc123", entry.ResourceID)
	}
	if entry.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", entry.StatusCode)
	}
	if entry.UserAgent != "support-console/2.1" {
		t.Errorf("UserAgent = %q", entry.UserAgent)
	}
}

func TestAdminAuditIgnoresReads(t *testing.T) {
	spy := &recorderSpy{}
	admin := &domain.Principal{ID: "usr_admin", Role: domain.RoleAdmin}
	router := auditTestRouter(spy, admin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conversations/conv_abc123", nil))

	if len(spy.entries) != 0 {
		t.Fatalf("recorded %d entries for a read, want 0", len(spy.entries))
	}
}

func TestAdminAuditIgnoresNonAdmins(t *testing.T) {
	spy := &recorderSpy{}
	customer := &domain.Principal{ID: "usr_customer", Role: domain.RoleCustomer}
	router := auditTestRouter(spy, customer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/conversations/conv_abc123/end", nil))

	if len(spy.entries) != 0 {
		t.Fatalf("recorded %d entries for a customer, want 0", len(spy.entries))
	}

	spy = &recorderSpy{}
	router = auditTestRouter(spy, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/conversations/conv_abc123/end", nil))

	if len(spy.entries) != 0 {
		t.Fatalf("recorded %d entries without a principal, want 0", len(spy.entries))
	}
}
