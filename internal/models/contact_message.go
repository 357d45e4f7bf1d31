package models

import "time"

// ContactMessage is a public contact-form submission. Admins can only flip
// the read flag; there is no further workflow.
type ContactMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Subject   string    `json:"subject" gorm:"type:varchar(200)" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
