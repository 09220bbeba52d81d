package conversationhandler

import (
	"testing"

	"freightdesk/services/support-api/internal/domain"
	"freightdesk/services/support-api/internal/domain/conversation"
)

func TestSenderLabel(t *testing.T) {
	if got := senderLabel(conversation.Actor{ID: "usr_1"}); got != "customer" {
		t.Errorf("senderLabel(customer) = %q, want customer", got)
	}
	if got := senderLabel(conversation.Actor{ID: "usr_2", Admin: true}); got != "admin" {
		t.Errorf("senderLabel(admin) = %q, want admin", got)
	}
}

func TestActorFromPrincipalSplitsName(t *testing.T) {
	p := domain.Principal{
		ID:    "usr_3",
		Name:  "Mara van den Berg",
		Email: "mara@example.com",
		Role:  domain.RoleAdmin,
	}

	actor := ActorFromPrincipal(p)
	if actor.FirstName != "Mara" || actor.LastName != "van den Berg" {
		t.Errorf("name split = %q / %q", actor.FirstName, actor.LastName)
	}
	if !actor.Admin {
		t.Error("admin role was not carried over")
	}

	single := ActorFromPrincipal(domain.Principal{ID: "usr_4", Name: "Cher"})
	if single.FirstName != "Cher" || single.LastName != "" {
		t.Errorf("single name split = %q / %q", single.FirstName, single.LastName)
	}
}
