package models

type User struct {
	BaseModel
	Username     string `gorm:"size:50" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Avatar       string `gorm:"size:255" json:"avatar"`
	// The single live refresh token; overwritten on every login/refresh,
	// cleared when a presented refresh token does not match
	RefreshToken *string `gorm:"size:512" json:"-"`
	Confirmed    bool    `gorm:"default:false" json:"confirmed"`

	Contacts []Contact `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
