package dbschema

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"freightdesk/services/support-api/internal/domain/shipment"
	"freightdesk/services/support-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(ShipmentPackage{})
}

// ShipmentPackage represents the database schema for freight packages.
type ShipmentPackage struct {
	ID          uint            `gorm:"primaryKey"`
	PublicID    string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	CustomerID  string          `gorm:"type:varchar(64);index;not null"`
	Description string          `gorm:"type:text;not null"`
	// Declared value kept as exact numeric for claims handling.
	DeclaredValue decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Attributes    datatypes.JSON  `gorm:"type:jsonb"`
	Canceled      bool            `gorm:"index:idx_package_canceled_created;not null;default:false"`
	CanceledAt    *time.Time
	CreatedTime   time.Time `gorm:"index:idx_package_canceled_created;not null"`
	UpdatedAt     time.Time
}

// NewSchemaShipmentPackage creates a database schema from a domain package
func NewSchemaShipmentPackage(p *shipment.ShipmentPackage) (*ShipmentPackage, error) {
	var attributes datatypes.JSON
	if len(p.Attributes) > 0 {
		data, err := json.Marshal(p.Attributes)
		if err != nil {
			return nil, err
		}
		attributes = datatypes.JSON(data)
	}

	return &ShipmentPackage{
		ID:            p.ID,
		PublicID:      p.PublicID,
		CustomerID:    p.CustomerID,
		Description:   p.Description,
		DeclaredValue: p.DeclaredValue,
		Attributes:    attributes,
		Canceled:      p.Canceled,
		CanceledAt:    p.CanceledAt,
		CreatedTime:   p.CreatedTime,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

// EtoD converts database schema to a domain package (Entity to Domain)
func (p *ShipmentPackage) EtoD() (*shipment.ShipmentPackage, error) {
	var attributes map[string]any
	if len(p.Attributes) > 0 {
		if err := json.Unmarshal(p.Attributes, &attributes); err != nil {
			return nil, err
		}
	}

	return &shipment.ShipmentPackage{
		ID:            p.ID,
		PublicID:      p.PublicID,
		CustomerID:    p.CustomerID,
		Description:   p.Description,
		DeclaredValue: p.DeclaredValue,
		Attributes:    attributes,
		Canceled:      p.Canceled,
		CanceledAt:    p.CanceledAt,
		CreatedTime:   p.CreatedTime,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}
