//go:build integration
// +build integration

package database

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/devportfolio/portfolio-backend/errs"
	"github.com/devportfolio/portfolio-backend/models"
)

var testDB *Database

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("portfolio"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		panic("failed to start PostgreSQL container: " + err.Error())
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic("failed to get connection string: " + err.Error())
	}

	testDB, err = Open(ctx, Options{DSN: connStr, MaxOpenConns: 5, Logger: zerolog.Nop()})
	if err != nil {
		panic("failed to open database: " + err.Error())
	}
	if err := testDB.Migrate(ctx); err != nil {
		panic("failed to migrate: " + err.Error())
	}

	code := m.Run()

	testDB.Close()
	_ = pgContainer.Terminate(ctx)
	os.Exit(code)
}

// resetTables empties every table and restarts the id sequences.
func resetTables(t *testing.T) {
	t.Helper()
	err := testDB.db.Exec("TRUNCATE project_skills, projects, skills, categories, users, contacts RESTART IDENTITY CASCADE").Error
	require.NoError(t, err)
}

func addUser(t *testing.T, name string) *models.User {
	t.Helper()
	user, err := testDB.UserRepo().Add(context.Background(), models.UserInput{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return user
}

func addSkill(t *testing.T, name string) *models.Skill {
	t.Helper()
	skill, err := testDB.SkillRepo().Add(context.Background(), models.SkillInput{Name: name})
	require.NoError(t, err)
	return skill
}

func addCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category, err := testDB.CategoryRepo().Add(context.Background(), models.CategoryInput{Name: name})
	require.NoError(t, err)
	return category
}

func TestMigrateIsIdempotent(t *testing.T) {
	require.NoError(t, testDB.Migrate(context.Background()))
}

func TestColumnReportMatchesModels(t *testing.T) {
	report, err := testDB.ColumnReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestPing(t *testing.T) {
	assert.NoError(t, testDB.Ping(context.Background()))
}

func TestUserLifecycle(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := testDB.UserRepo()

	first := addUser(t, "ana")
	second := addUser(t, "bruno")
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	bio := "Backend developer"
	updated, err := repo.Update(ctx, first.ID, models.UserInput{
		Name:  "Ana",
		Email: "ana@example.com",
		Bio:   nullable.NewNullableWithValue(bio),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)

	// Omitted optional fields keep their value, null clears them
	updated, err = repo.Update(ctx, first.ID, models.UserInput{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	updated, err = repo.Update(ctx, first.ID, models.UserInput{Name: "Ana", Email: "ana@example.com", Bio: nullable.NewNullNullable[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.Bio)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	require.NotNil(t, users[0].Projects)
	assert.Len(t, users[0].Projects, 0)
	body, err := json.Marshal(users[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"projects":[]`)

	found, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Projects)
	assert.Len(t, found.Projects, 0)

	require.NoError(t, repo.Delete(ctx, second.ID))
	err = repo.Delete(ctx, second.ID)
	assert.True(t, errs.IsNotFound(err))

	_, err = repo.FindByID(ctx, second.ID)
	assert.True(t, errs.IsNotFound(err))

	_, err = repo.Update(ctx, 999, models.UserInput{Name: "x", Email: "x@example.com"})
	assert.True(t, errs.IsNotFound(err))
}

func TestProjectRelations(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := testDB.ProjectRepo()

	user := addUser(t, "ana")
	category := addCategory(t, "Web")
	goSkill := addSkill(t, "Go")
	sqlSkill := addSkill(t, "SQL")

	created, err := repo.Add(ctx, models.ProjectInput{
		Title:      "Portfolio",
		StartDate:  models.NewNullableDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		UserID:     user.ID,
		CategoryID: &category.ID,
		SkillIDs:   []uint{sqlSkill.ID, goSkill.ID, goSkill.ID},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.User)
	assert.Equal(t, user.ID, found.User.ID)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Web", found.Category.Name)
	require.Len(t, found.Skills, 2)
	assert.Equal(t, goSkill.ID, found.Skills[0].ID)
	assert.Equal(t, sqlSkill.ID, found.Skills[1].ID)
	require.NotNil(t, found.StartDate)
	assert.Nil(t, found.EndDate)

	withProjects, err := testDB.UserRepo().FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, withProjects.Projects, 1)
	assert.Equal(t, "Portfolio", withProjects.Projects[0].Title)

	skill, err := testDB.SkillRepo().FindByID(ctx, goSkill.ID)
	require.NoError(t, err)
	require.Len(t, skill.Projects, 1)

	cat, err := testDB.CategoryRepo().FindByID(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, cat.Projects, 1)
}

func TestProjectUpdateSemantics(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := testDB.ProjectRepo()

	user := addUser(t, "ana")
	other := addUser(t, "bruno")
	web := addCategory(t, "Web")
	cli := addCategory(t, "CLI")
	goSkill := addSkill(t, "Go")
	sqlSkill := addSkill(t, "SQL")

	created, err := repo.Add(ctx, models.ProjectInput{
		Title:       "Portfolio",
		Description: nullable.NewNullableWithValue("first"),
		StartDate:   models.NewNullableDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		UserID:      user.ID,
		CategoryID:  &web.ID,
		SkillIDs:    []uint{goSkill.ID},
	})
	require.NoError(t, err)

	// No user, no category, no skills: links stay, the omitted date clears
	_, err = repo.Update(ctx, created.ID, models.ProjectInput{Title: "Renamed"})
	require.NoError(t, err)
	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.Title)
	assert.Equal(t, user.ID, found.UserID)
	require.NotNil(t, found.CategoryID)
	assert.Equal(t, web.ID, *found.CategoryID)
	require.Len(t, found.Skills, 1)
	assert.Nil(t, found.StartDate)
	require.NotNil(t, found.Description)
	assert.Equal(t, "first", *found.Description)

	_, err = repo.Update(ctx, created.ID, models.ProjectInput{
		Title:      "Renamed",
		UserID:     other.ID,
		CategoryID: &cli.ID,
		SkillIDs:   []uint{sqlSkill.ID},
	})
	require.NoError(t, err)
	found, err = repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, found.UserID)
	assert.Equal(t, cli.ID, *found.CategoryID)
	require.Len(t, found.Skills, 1)
	assert.Equal(t, sqlSkill.ID, found.Skills[0].ID)

	_, err = repo.Update(ctx, created.ID, models.ProjectInput{Title: "Renamed", SkillIDs: []uint{}})
	require.NoError(t, err)
	found, err = repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Skills)

	require.NoError(t, repo.ReplaceSkills(ctx, created.ID, []uint{goSkill.ID, sqlSkill.ID}))
	require.NoError(t, repo.LinkCategory(ctx, created.ID, web.ID))
	found, err = repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, found.Skills, 2)
	assert.Equal(t, web.ID, *found.CategoryID)

	err = repo.ReplaceSkills(ctx, 999, []uint{goSkill.ID})
	assert.True(t, errs.IsNotFound(err))
	err = repo.LinkCategory(ctx, created.ID, 999)
	assert.True(t, errs.IsInvalidReferenceError(err))
}

func TestProjectInvalidReferencesRollBack(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := testDB.ProjectRepo()
	user := addUser(t, "ana")

	missing := uint(999)
	tests := []struct {
		name  string
		in    models.ProjectInput
		field string
	}{
		{"unknown user", models.ProjectInput{Title: "x", UserID: missing}, "userId"},
		{"unknown category", models.ProjectInput{Title: "x", UserID: user.ID, CategoryID: &missing}, "categoryId"},
		{"unknown skill", models.ProjectInput{Title: "x", UserID: user.ID, SkillIDs: []uint{missing}}, "skillIds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Add(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, errs.IsInvalidReferenceError(err))
			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.field, apiErr.Field)
		})
	}

	projects, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestDeletePolicies(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	user := addUser(t, "ana")
	category := addCategory(t, "Web")
	goSkill := addSkill(t, "Go")
	sqlSkill := addSkill(t, "SQL")
	project, err := testDB.ProjectRepo().Add(ctx, models.ProjectInput{
		Title:      "Portfolio",
		UserID:     user.ID,
		CategoryID: &category.ID,
		SkillIDs:   []uint{goSkill.ID, sqlSkill.ID},
	})
	require.NoError(t, err)

	err = testDB.UserRepo().Delete(ctx, user.ID)
	assert.True(t, errs.IsInUseError(err))
	err = testDB.CategoryRepo().Delete(ctx, category.ID)
	assert.True(t, errs.IsInUseError(err))

	// Deleting a skill only removes its links
	require.NoError(t, testDB.SkillRepo().Delete(ctx, goSkill.ID))
	found, err := testDB.ProjectRepo().FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, found.Skills, 1)
	assert.Equal(t, sqlSkill.ID, found.Skills[0].ID)

	require.NoError(t, testDB.ProjectRepo().Delete(ctx, project.ID))
	_, err = testDB.SkillRepo().FindByID(ctx, sqlSkill.ID)
	assert.NoError(t, err)

	assert.NoError(t, testDB.CategoryRepo().Delete(ctx, category.ID))
	assert.NoError(t, testDB.UserRepo().Delete(ctx, user.ID))
}

func TestSkillAndContactFields(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	zero, five := 0, 5
	skill, err := testDB.SkillRepo().Add(ctx, models.SkillInput{Name: "Go", Proficiency: &zero})
	require.NoError(t, err)
	assert.Nil(t, skill.Proficiency)

	skill, err = testDB.SkillRepo().Update(ctx, skill.ID, models.SkillInput{Name: "Go", Proficiency: &five})
	require.NoError(t, err)
	require.NotNil(t, skill.Proficiency)
	assert.Equal(t, 5, *skill.Proficiency)

	contact, err := testDB.ContactRepo().Add(ctx, models.ContactInput{Name: "Ana", Email: "ana@example.com", Message: "Olá"})
	require.NoError(t, err)
	contacts, err := testDB.ContactRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, contact.ID, contacts[0].ID)
	assert.Equal(t, "Olá", contacts[0].Message)
}
