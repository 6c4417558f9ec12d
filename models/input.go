package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oapi-codegen/nullable"
	"gorm.io/datatypes"

	"github.com/devportfolio/portfolio-backend/errs"
)

// valueOf is the pointer stored for a nullable field, nil when the field is
// null or was not sent.
func valueOf[T any](field nullable.Nullable[T]) *T {
	v, err := field.Get()
	if err != nil {
		return nil
	}
	return &v
}

// NullableDate decodes an ISO date string. null and "" decode to no date.
// A value that does not parse is kept in Invalid and reported by Check on
// the input that holds it, so the error can name its field.
type NullableDate struct {
	Time    *time.Time
	Invalid string
}

// NewNullableDate is a convenience for building inputs in code.
func NewNullableDate(t time.Time) NullableDate {
	return NullableDate{Time: &t}
}

func (d *NullableDate) UnmarshalJSON(data []byte) error {
	*d = NullableDate{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		d.Invalid = string(data)
		return nil
	}
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = &t
			return nil
		}
	}
	d.Invalid = s
	return nil
}

// check returns an invalid-field error naming field when the value did not parse.
func (d NullableDate) check(field string) error {
	if d.Invalid == "" {
		return nil
	}
	return errs.NewInvalidFieldError(field, fmt.Sprintf("%q is not YYYY-MM-DD or an RFC 3339 timestamp", d.Invalid))
}

// Date converts to the column type, nil when no date was given.
func (d NullableDate) Date() *datatypes.Date {
	if d.Time == nil {
		return nil
	}
	date := datatypes.Date(*d.Time)
	return &date
}

// UserInput is the body of POST and PUT /users.
type UserInput struct {
	Name        string                    `json:"name" validate:"required"`
	Email       string                    `json:"email" validate:"required"`
	Bio         nullable.Nullable[string] `json:"bio"`
	GithubURL   nullable.Nullable[string] `json:"github_url"`
	LinkedinURL nullable.Nullable[string] `json:"linkedin_url"`
}

// Row builds the row inserted on create. Absent optional fields stay NULL.
func (in UserInput) Row() User {
	return User{
		Name:        in.Name,
		Email:       in.Email,
		Bio:         valueOf(in.Bio),
		GithubURL:   valueOf(in.GithubURL),
		LinkedinURL: valueOf(in.LinkedinURL),
	}
}

// Changes lists the columns written on update. Required fields are always
// written, optional ones only when present in the payload.
func (in UserInput) Changes() map[string]any {
	changes := map[string]any{
		"name":  in.Name,
		"email": in.Email,
	}
	setIfPresent(changes, "bio", in.Bio)
	setIfPresent(changes, "github_url", in.GithubURL)
	setIfPresent(changes, "linkedin_url", in.LinkedinURL)
	return changes
}

// ProjectInput is the body of POST and PUT /projects.
//
// UserID is required on create. On update a zero UserID or a nil CategoryID
// leaves the link unchanged, and a nil SkillIDs leaves the skill set
// unchanged while an empty, non-nil list clears it.
type ProjectInput struct {
	Title         string                    `json:"title" validate:"required"`
	Description   nullable.Nullable[string] `json:"description"`
	RepositoryURL nullable.Nullable[string] `json:"repository_url"`
	DemoURL       nullable.Nullable[string] `json:"demo_url"`
	ImageURL      nullable.Nullable[string] `json:"image_url"`
	StartDate     NullableDate              `json:"start_date"`
	EndDate       NullableDate              `json:"end_date"`
	UserID        uint                      `json:"userId" validate:"required"`
	CategoryID    *uint                     `json:"categoryId"`
	SkillIDs      []uint                    `json:"skillIds" validate:"omitempty,dive,gt=0"`
}

// Row builds the project row. Relations are linked separately.
func (in ProjectInput) Row() Project {
	return Project{
		Title:         in.Title,
		Description:   valueOf(in.Description),
		RepositoryURL: valueOf(in.RepositoryURL),
		DemoURL:       valueOf(in.DemoURL),
		ImageURL:      valueOf(in.ImageURL),
		StartDate:     in.StartDate.Date(),
		EndDate:       in.EndDate.Date(),
		UserID:        in.UserID,
		CategoryID:    linkedCategory(in.CategoryID),
	}
}

// Changes lists the literal columns written on update. Dates are always
// written, so an omitted date clears the column.
func (in ProjectInput) Changes() map[string]any {
	changes := map[string]any{
		"title":      in.Title,
		"start_date": in.StartDate.Date(),
		"end_date":   in.EndDate.Date(),
	}
	setIfPresent(changes, "description", in.Description)
	setIfPresent(changes, "repository_url", in.RepositoryURL)
	setIfPresent(changes, "demo_url", in.DemoURL)
	setIfPresent(changes, "image_url", in.ImageURL)
	return changes
}

// Check rejects dates that did not parse.
func (in ProjectInput) Check() error {
	if err := in.StartDate.check("start_date"); err != nil {
		return err
	}
	return in.EndDate.check("end_date")
}

// LinkedCategory is the category to connect, nil when none was supplied.
func (in ProjectInput) LinkedCategory() *uint {
	return linkedCategory(in.CategoryID)
}

func linkedCategory(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// SkillInput is the body of POST and PUT /skills.
type SkillInput struct {
	Name        string `json:"name" validate:"required"`
	Proficiency *int   `json:"proficiency"`
}

// ProficiencyValue maps a missing or zero proficiency to NULL.
func (in SkillInput) ProficiencyValue() *int {
	if in.Proficiency == nil || *in.Proficiency == 0 {
		return nil
	}
	return in.Proficiency
}

func (in SkillInput) Row() Skill {
	return Skill{Name: in.Name, Proficiency: in.ProficiencyValue()}
}

func (in SkillInput) Changes() map[string]any {
	return map[string]any{
		"name":        in.Name,
		"proficiency": in.ProficiencyValue(),
	}
}

// CategoryInput is the body of POST and PUT /categories.
type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

func (in CategoryInput) Row() Category {
	return Category{Name: in.Name}
}

func (in CategoryInput) Changes() map[string]any {
	return map[string]any{"name": in.Name}
}

// ContactInput is the body of POST and PUT /contacts.
type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (in ContactInput) Row() Contact {
	return Contact{Name: in.Name, Email: in.Email, Message: in.Message}
}

func (in ContactInput) Changes() map[string]any {
	return map[string]any{
		"name":    in.Name,
		"email":   in.Email,
		"message": in.Message,
	}
}

// setIfPresent writes column only when the field was sent, so an explicit
// null clears it and an omitted field leaves it unchanged.
func setIfPresent[T any](changes map[string]any, column string, field nullable.Nullable[T]) {
	if field.IsSpecified() {
		changes[column] = valueOf(field)
	}
}
