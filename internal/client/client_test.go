package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer поднимает тестовый API, который запоминает последнее тело запроса.
func newServer(t *testing.T, routes map[string]string, status int) (*Client, *map[string]any) {
	t.Helper()
	var last map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = nil
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&last)
		}
		resp, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL + "/"), &last
}

func TestGetAttractionsSanitizesInput(t *testing.T) {
	c, last := newServer(t, map[string]string{
		"POST /get-attractions": `{"data":[[3,"butchart gardens"],[9,"craigdarroch castle"]]}`,
	}, http.StatusOK)

	got, err := c.GetAttractions(context.Background(), " British Columbia", "VICTORIA ")

	require.NoError(t, err)
	assert.Equal(t, []Attraction{{ID: 3, Name: "butchart gardens"}, {ID: 9, Name: "craigdarroch castle"}}, got)
	assert.Equal(t, map[string]any{"province": "british columbia", "city": "victoria"}, *last)
}

func TestGetAttractionsRequiresLocation(t *testing.T) {
	c, last := newServer(t, map[string]string{}, http.StatusOK)

	_, err := c.GetAttractions(context.Background(), "bc", "  ")

	assert.ErrorIs(t, err, ErrMissingLocation)
	assert.Nil(t, *last)
}

func TestProjectExperiencesRequiresAttribute(t *testing.T) {
	c, _ := newServer(t, map[string]string{}, http.StatusOK)

	_, err := c.ProjectExperiences(context.Background(), 1, nil)

	assert.ErrorIs(t, err, ErrNoAttributes)
}

func TestProjectExperiences(t *testing.T) {
	c, last := newServer(t, map[string]string{
		"POST /project-tables": `{"projectedExperiences":[["seawall bike tour",45]]}`,
	}, http.StatusOK)

	rows, err := c.ProjectExperiences(context.Background(), 1, []string{"experienceName", "price"})

	require.NoError(t, err)
	assert.Equal(t, [][]any{{"seawall bike tour", 45.0}}, rows)
	assert.Equal(t, float64(1), (*last)["id"])
	assert.Equal(t, []any{"experienceName", "price"}, (*last)["toSelect"])
}

func TestAPIErrorCarriesMessage(t *testing.T) {
	c, _ := newServer(t, map[string]string{
		"POST /add-attraction": `{"data":false,"error":"координаты уже привязаны к другой локации"}`,
	}, http.StatusConflict)

	_, err := c.AddAttraction(context.Background(), NewAttraction{Name: "x", Province: "bc", City: "victoria"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "координаты")
}

func TestDecodesTupleRows(t *testing.T) {
	c, _ := newServer(t, map[string]string{
		"POST /count-attractions-having":    `{"success":true,"data":[["british columbia","vancouver",2]]}`,
		"GET /avg-attractions-per-province": `{"success":true,"data":[["alberta",1]]}`,
		"POST /filter-experiences":          `{"filteredExperiences":[[2,"totem pole walk",0]]}`,
		"POST /find-completionists":         `{"data":[[1,"alice"]]}`,
		"POST /count-attractions":           `{"success":true,"count":2}`,
		"GET /locations":                    `{"data":[{"province":"alberta","city":"banff"}]}`,
	}, http.StatusOK)
	ctx := context.Background()

	cities, err := c.CitiesWithMoreThan(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []CityCount{{Province: "british columbia", City: "vancouver", Count: 2}}, cities)

	avgs, err := c.AveragePerProvince(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ProvinceAverage{{Province: "alberta", Average: 1}}, avgs)

	exps, err := c.FilterExperiences(ctx, 50, "<")
	require.NoError(t, err)
	assert.Equal(t, []ExperiencePrice{{ID: 2, Name: "totem pole walk"}}, exps)

	users, err := c.FindCompletionists(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []User{{ID: 1, Name: "alice"}}, users)

	count, err := c.CountAttractions(ctx, "British Columbia", "Vancouver")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	locs, err := c.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Location{{Province: "alberta", City: "banff"}}, locs)
}

func TestCheckConnection(t *testing.T) {
	c, _ := newServer(t, map[string]string{"GET /check-db-connection": "connected"}, http.StatusOK)

	status, err := c.CheckConnection(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "connected", status)
}

func TestOperatorCalls(t *testing.T) {
	c, last := newServer(t, map[string]string{
		"PUT /update-attraction":      `{"success":true}`,
		"GET /initiate-table":         `{"data":[[1,"stanley park"]]}`,
		"GET /demotable":              `{"data":[[1,"alice"]]}`,
		"POST /update-name-demotable": `{"success":true}`,
		"GET /count-demotable":        `{"success":true,"count":1}`,
	}, http.StatusOK)
	ctx := context.Background()

	require.NoError(t, c.UpdateAttraction(ctx, AttractionUpdate{ID: 4, Name: " Lake LOUISE "}))
	assert.Equal(t, "lake louise", (*last)["name"])
	assert.Equal(t, float64(4), (*last)["id"])

	all, err := c.Repopulate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Attraction{{ID: 1, Name: "stanley park"}}, all)

	rows, err := c.Demotable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []DemoRow{{ID: 1, Name: "alice"}}, rows)

	require.NoError(t, c.RenameDemo(ctx, "alice", "bob"))
	assert.Equal(t, map[string]any{"oldName": "alice", "newName": "bob"}, *last)

	count, err := c.CountDemo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertDemoFailure(t *testing.T) {
	c, _ := newServer(t, map[string]string{
		"POST /insert-demotable": `{"success":false,"error":"duplicate key"}`,
	}, http.StatusInternalServerError)

	err := c.InsertDemo(context.Background(), 1, "alice")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "duplicate key", apiErr.Message)
}
