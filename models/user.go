package models

// User is the owner of a portfolio. A user owns zero or more projects.
type User struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email       string    `json:"email" db:"email" gorm:"type:text;not null"`
	Bio         *string   `json:"bio" db:"bio" gorm:"type:text"`
	GithubURL   *string   `json:"github_url" db:"github_url" gorm:"column:github_url;type:text"`
	LinkedinURL *string   `json:"linkedin_url" db:"linkedin_url" gorm:"column:linkedin_url;type:text"`
	Projects    []Project `json:"projects" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
}
