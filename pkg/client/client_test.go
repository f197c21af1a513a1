package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personaldata-backend/internal/domains/person/handler"
	"personaldata-backend/internal/domains/person/repository"
	"personaldata-backend/internal/domains/person/service"
	"personaldata-backend/pkg/client"
)

// newTestServer stands up the real handler stack over an in-memory store,
// so these tests exercise the wire format end to end.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := handler.NewPersonHandler(
		service.NewPersonService(repository.NewMemoryRepository(), nil))

	r := gin.New()
	persons := r.Group("/api/v1/persons")
	{
		persons.GET("", h.ListPersons)
		persons.POST("", h.CreatePerson)
		persons.PUT("/:id", h.UpdatePerson)
	}

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	srv := newTestServer(t)
	return client.New(srv.URL + "/api/v1")
}

func samplePerson() client.PersonRequest {
	return client.PersonRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Address:   "1 Orchid Lane, Bangkok",
		BirthDate: "1990-05-15",
	}
}

func TestCreateAndListRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreatePerson(ctx, samplePerson())
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Ann Lee", created.FullName)
	assert.Equal(t, "1990-05-15", created.BirthDate)

	page, err := c.ListPersons(ctx, client.ListOptions{Search: "orchid"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, created.ID, page.Data[0].ID)
	assert.Equal(t, 1, page.TotalCount)
}

func TestUpdatePersonRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreatePerson(ctx, samplePerson())
	require.NoError(t, err)

	req := samplePerson()
	req.FirstName = "Anna"
	updated, err := c.UpdatePerson(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestUpdateMissingPersonSurfacesAPIError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.UpdatePerson(context.Background(), 42, samplePerson())
	require.Error(t, err)

	apiErr, ok := err.(*client.APIError)
	require.True(t, ok, "error should be an *APIError, got %T", err)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestValidationErrorsCarryDetails(t *testing.T) {
	c := newTestClient(t)

	req := samplePerson()
	req.Address = "short"

	_, err := c.CreatePerson(context.Background(), req)
	require.Error(t, err)

	apiErr, ok := err.(*client.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Errors)
}

func TestUnreachableServerIsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening anymore

	c := client.New(srv.URL + "/api/v1")

	_, err := c.ListPersons(context.Background(), client.ListOptions{})
	require.Error(t, err)

	apiErr, ok := err.(*client.APIError)
	require.True(t, ok)
	assert.Equal(t, "Unable to reach the server", apiErr.Message)
	assert.Zero(t, apiErr.StatusCode)
}

func TestAgeAt(t *testing.T) {
	c := client.New("http://unused")

	dayBefore := time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC)
	birthday := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

	age, err := c.AgeAt("1990-05-15", dayBefore)
	require.NoError(t, err)
	assert.Equal(t, 33, age)

	age, err = c.AgeAt("1990-05-15", birthday)
	require.NoError(t, err)
	assert.Equal(t, 34, age)

	_, err = c.AgeAt("15/05/1990", birthday)
	assert.Error(t, err)
}
