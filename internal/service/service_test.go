package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"attractions/internal/database"
	"attractions/internal/model"
	"attractions/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeeder struct {
	path string
	err  error
}

func (f *fakeSeeder) ExecScript(ctx context.Context, path string) error {
	f.path = path
	return f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func newMockPool(t *testing.T) (*database.Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewPool(sqlx.NewDb(db, "postgres")), mock
}

func newAttractionService(t *testing.T, seeder scriptRunner) (*AttractionService, sqlmock.Sqlmock) {
	pool, mock := newMockPool(t)
	repo := repository.NewAttractionRepository(pool, repository.NewLocationRepository(pool))
	return NewAttractionService(repo, seeder, "seed/attractions.sql"), mock
}

func TestFindByLocationNormalizesInput(t *testing.T) {
	svc, mock := newAttractionService(t, &fakeSeeder{})
	mock.ExpectQuery(regexp.QuoteMeta("FROM tourist_attractions1 t1")).
		WithArgs("british columbia", "victoria").
		WillReturnRows(sqlmock.NewRows([]string{"attraction_id", "attraction_name"}))

	got, err := svc.FindByLocation(context.Background(), "  British Columbia ", "VICTORIA")

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAttractionValidation(t *testing.T) {
	svc, mock := newAttractionService(t, &fakeSeeder{})
	valid := func() model.NewAttraction {
		a := model.NewAttraction{Province: "bc", City: "victoria"}
		a.Name = "butchart gardens"
		a.Latitude, a.Longitude = 48.56417, -123.46972
		return a
	}

	tests := map[string]func(a *model.NewAttraction){
		"no name":      func(a *model.NewAttraction) { a.Name = "  " },
		"no city":      func(a *model.NewAttraction) { a.City = "" },
		"bad latitude": func(a *model.NewAttraction) { a.Latitude = 91 },
		"bad longitude": func(a *model.NewAttraction) {
			a.Longitude = -181
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			a := valid()
			mutate(&a)
			_, err := svc.AddAttraction(context.Background(), a)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	// до базы дело не дошло
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAttractionNormalizesLocation(t *testing.T) {
	svc, mock := newAttractionService(t, &fakeSeeder{})
	a := model.NewAttraction{Province: " Alberta", City: "Banff "}
	a.Name = " lake louise "
	a.Category = "Nature"
	a.Latitude, a.Longitude = 51.41669, -116.2179

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO locations")).
		WithArgs("alberta", "banff").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tourist_attractions1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM tourist_attractions1 WHERE")).
		WillReturnRows(sqlmock.NewRows([]string{"latitude", "longitude", "province", "city"}).
			AddRow(51.41669, -116.2179, "alberta", "banff"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tourist_attractions2")).
		WithArgs("lake louise", "", "nature", "", "", 51.41669, -116.2179).
		WillReturnRows(sqlmock.NewRows([]string{"attraction_id"}).AddRow(4))
	mock.ExpectCommit()

	id, err := svc.AddAttraction(context.Background(), a)

	require.NoError(t, err)
	assert.Equal(t, 4, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepopulate(t *testing.T) {
	seeder := &fakeSeeder{}
	svc, mock := newAttractionService(t, seeder)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT attraction_id, attraction_name FROM tourist_attractions2")).
		WillReturnRows(sqlmock.NewRows([]string{"attraction_id", "attraction_name"}).AddRow(1, "stanley park"))

	got, err := svc.Repopulate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "seed/attractions.sql", seeder.path)
	assert.Equal(t, []model.AttractionSummary{{ID: 1, Name: "stanley park"}}, got)
}

func TestRepopulateSeedFailure(t *testing.T) {
	svc, _ := newAttractionService(t, &fakeSeeder{err: errors.New("no such file")})

	_, err := svc.Repopulate(context.Background())

	assert.ErrorContains(t, err, "no such file")
}

func TestCitiesWithMoreThanRejectsNegative(t *testing.T) {
	svc, _ := newAttractionService(t, &fakeSeeder{})
	_, err := svc.CitiesWithMoreThan(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectExperiencesRejectsUnknownColumns(t *testing.T) {
	pool, mock := newMockPool(t)
	svc := NewExperienceService(repository.NewExperienceRepository(pool))

	_, err := svc.ProjectExperiences(context.Background(), 1, []string{"price", "(SELECT name FROM demotable)"})
	assert.ErrorIs(t, err, model.ErrInvalidColumn)

	_, err = svc.ProjectExperiences(context.Background(), 1, []string{})
	assert.ErrorIs(t, err, model.ErrNoColumns)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilterByBudget(t *testing.T) {
	pool, mock := newMockPool(t)
	svc := NewExperienceService(repository.NewExperienceRepository(pool))

	_, err := svc.FilterByBudget(context.Background(), 10, "between")
	assert.ErrorIs(t, err, model.ErrInvalidComparison)

	_, err = svc.FilterByBudget(context.Background(), -5, "<")
	assert.ErrorIs(t, err, ErrInvalidInput)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE price > $1")).
		WithArgs(100.0).
		WillReturnRows(sqlmock.NewRows([]string{"experience_id", "experience_name", "price"}).
			AddRow(5, "edgewalk", 225.0))
	got, err := svc.FilterByBudget(context.Background(), 100, "greater")
	require.NoError(t, err)
	assert.Equal(t, []model.ExperiencePrice{{ID: 5, Name: "edgewalk", Price: 225}}, got)
}

func TestDemoServiceRejectsEmptyNames(t *testing.T) {
	pool, mock := newMockPool(t)
	svc := NewDemoService(repository.NewDemoRepository(pool))

	assert.ErrorIs(t, svc.Insert(context.Background(), 1, " "), ErrInvalidInput)
	assert.ErrorIs(t, svc.UpdateName(context.Background(), "Alice", ""), ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusCheck(t *testing.T) {
	assert.True(t, NewStatusService(fakePinger{}).Check(context.Background()))
	assert.False(t, NewStatusService(fakePinger{err: errors.New("refused")}).Check(context.Background()))
}

func TestUserServiceValidation(t *testing.T) {
	pool, mock := newMockPool(t)
	svc := NewUserService(repository.NewUserRepository(pool))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (user_name)")).
		WithArgs("dave").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(4))

	_, err := svc.CreateUser(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	id, err := svc.CreateUser(context.Background(), " Dave ")
	require.NoError(t, err)
	assert.Equal(t, 4, id)

	assert.ErrorIs(t, svc.CompleteExperience(context.Background(), 0, 1), ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}
