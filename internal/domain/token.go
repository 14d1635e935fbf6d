package domain

import "time"

// ActivationToken is a one-time credential proving control of an email
// address. It is created alongside the user at registration and deleted on
// every terminal activation attempt, successful or not.
type ActivationToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Token     string    `json:"-" gorm:"size:255;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// RefreshToken stores an issued refresh token. Possession of the signed
// token plus a matching row here is the authority; deleting the row revokes
// the token server-side even while the signature is still valid.
type RefreshToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Token     string    `json:"-" gorm:"size:512;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// PasswordResetToken is a short-lived one-time credential. At most one live
// row per user: creating a new one deletes any prior rows first.
type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Token     string    `json:"-" gorm:"size:255;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the token is past its validity window. A token
// exactly at its expiry instant is already expired.
func expired(expiresAt, now time.Time) bool {
	return !now.UTC().Before(expiresAt.UTC())
}

func (t ActivationToken) Expired(now time.Time) bool    { return expired(t.ExpiresAt, now) }
func (t RefreshToken) Expired(now time.Time) bool       { return expired(t.ExpiresAt, now) }
func (t PasswordResetToken) Expired(now time.Time) bool { return expired(t.ExpiresAt, now) }
