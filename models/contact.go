package models

// Contact is a message left through the portfolio's contact form.
type Contact struct {
	ID      uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name    string `json:"name" db:"name" gorm:"type:text;not null"`
	Email   string `json:"email" db:"email" gorm:"type:text;not null"`
	Message string `json:"message" db:"message" gorm:"type:text;not null"`
}
