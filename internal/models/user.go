// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string     `json:"name" gorm:"size:100;not null"`
	Photo        string     `json:"photo" gorm:"size:512"`
	Role         Role       `json:"role" gorm:"type:varchar(20);default:'user';not null"`
	PasswordHash string     `json:"-" gorm:"size:255"`
	LastSignedIn *time.Time `json:"last_signed_in"`
}

// SetPassword is a no-op when password is empty; accounts created through the
// external identity provider carry no local credential.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
