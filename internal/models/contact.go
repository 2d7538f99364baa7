package models

import "time"

type Contact struct {
	BaseModel
	Name     string `gorm:"index;not null" json:"name"`
	Lastname string `json:"lastname"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	// Date of birth; time component is ignored everywhere
	Birthday    *time.Time `json:"birthday"`
	Age         int        `json:"age"`
	Description string     `gorm:"index" json:"description"`

	UserID string `gorm:"index;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
