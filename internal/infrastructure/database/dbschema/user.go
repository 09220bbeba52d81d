package dbschema

import (
	"freightdesk/services/support-api/internal/domain/user"
	"freightdesk/services/support-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the persisted user schema mirrored from the external
// identity provider.
type User struct {
	BaseModel
	PublicID  string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Issuer    string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_issuer_subject"`
	Subject   string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_issuer_subject"`
	FirstName string    `gorm:"type:varchar(100);not null;default:''"`
	LastName  string    `gorm:"type:varchar(100);not null;default:''"`
	Email     string    `gorm:"type:varchar(320);uniqueIndex;not null"`
	Role      user.Role `gorm:"type:varchar(20);not null;default:'customer'"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		PublicID:  u.PublicID,
		Issuer:    u.Issuer,
		Subject:   u.Subject,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:        u.ID,
		PublicID:  u.PublicID,
		Issuer:    u.Issuer,
		Subject:   u.Subject,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
