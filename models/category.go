package models

// Category groups projects. A project has at most one category.
type Category struct {
	ID       uint      `json:"id" db:"id" gorm:"primaryKey"`
	Name     string    `json:"name" db:"name" gorm:"type:text;not null"`
	Projects []Project `json:"projects" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT"`
}
