package models

// Skill is a technology or competence shown on projects.
type Skill struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Proficiency *int      `json:"proficiency" db:"proficiency" gorm:"type:integer"`
	Projects    []Project `json:"projects" gorm:"many2many:project_skills;constraint:OnDelete:CASCADE"`
}
