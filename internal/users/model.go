package user

import (
	"time"

	"github.com/swiftcart/swiftcart-backend/pkg/enums"
)

// User is the persisted identity row. There is no password: sign-in is
// OTP based, identity is the email or mobile itself.
type User struct {
	ID        string         `gorm:"column:id;primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Email     string         `gorm:"column:email;uniqueIndex;not null"`
	Mobile    string         `gorm:"column:mobile;uniqueIndex;not null"`
	Gender    string         `gorm:"column:gender"`
	Role      enums.UserRole `gorm:"column:role;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}
