package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string `gorm:"size:150;not null"        json:"full_name"`
	Email        string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Enabled      bool   `gorm:"not null;default:true"    json:"enabled"`
	Roles        []Role `gorm:"many2many:user_roles"     json:"roles"`
}

// RoleNames returns the names of the user's assigned roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// RefreshToken holds the single rotating refresh credential of a user.
// The unique index on UserID enforces at most one row per user; rotation
// overwrites this row instead of inserting a new one.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string `gorm:"uniqueIndex;not null"     json:"token"`
	UserID    uint   `gorm:"uniqueIndex;not null"     json:"user_id"`
	ExpiresAt int64  `gorm:"not null"                 json:"expires_at"`
	Revoked   bool   `gorm:"not null;default:false"   json:"revoked"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return t.ExpiresAt <= now.Unix()
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName string    `gorm:"size:255;index;not null"  json:"productName"`
	CreatedBy   string    `gorm:"size:100;not null"        json:"createdBy"`
	CreatedOn   time.Time `gorm:"autoCreateTime"           json:"createdOn"`
	ModifiedBy  string    `gorm:"size:100"                 json:"modifiedBy"`
	ModifiedOn  time.Time `gorm:"autoUpdateTime"           json:"modifiedOn"`
	Items       []Item    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Item struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint `gorm:"index;not null"           json:"productId"`
	Quantity  int  `gorm:"not null"                 json:"quantity"`
}
