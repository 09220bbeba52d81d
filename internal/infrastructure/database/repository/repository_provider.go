package repository

import (
	"github.com/google/wire"

	"freightdesk/services/support-api/internal/infrastructure/database/repository/conversationrepo"
	"freightdesk/services/support-api/internal/infrastructure/database/repository/shipmentrepo"
	"freightdesk/services/support-api/internal/infrastructure/database/repository/userrepo"
)

var RepositoryProviderSet = wire.NewSet(
	conversationrepo.NewConversationGormRepository,
	shipmentrepo.NewShipmentGormRepository,
	userrepo.NewUserGormRepository,
)
