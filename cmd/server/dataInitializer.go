package main

import (
	"context"
	"fmt"
	"strings"

	"freightdesk/services/support-api/internal/config"
	"freightdesk/services/support-api/internal/domain/user"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

type DataInitializer struct {
	users *user.Service
}

// Install seeds the configured support agent accounts so admins exist
// before the first login.
func (d *DataInitializer) Install(ctx context.Context) error {
	cfg := config.GetGlobal()

	entries := cfg.AgentSeedEntries()
	if len(entries) == 0 {
		return nil
	}

	for i := range entries {
		entry := entries[i]
		if err := d.seedAgent(ctx, cfg.Issuer, entry); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, fmt.Sprintf("failed to seed agent %q", entry.Email))
		}
	}
	return nil
}

func (d *DataInitializer) seedAgent(ctx context.Context, issuer string, entry config.AgentSeedEntry) error {
	first := entry.Name
	last := ""
	if parts := strings.Fields(entry.Name); len(parts) > 1 {
		first = parts[0]
		last = strings.Join(parts[1:], " ")
	}

	_, err := d.users.EnsureUser(ctx, user.Identity{
		Issuer:    issuer,
		Subject:   entry.ExternalID,
		FirstName: first,
		LastName:  last,
		Email:     entry.Email,
		Role:      user.RoleAdmin,
	})
	return err
}
