package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrChorusman/team-calendar-go/internal/config"
	"github.com/MrChorusman/team-calendar-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmployees(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/employees", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"employees": [
				{"id": 1, "full_name": "Ana García", "country": "ES", "team_ids": [10]},
				{"id": 2, "full_name": "John Doe", "country": "USA", "team_ids": [10, 11]}
			]
		}`))
	}))
	t.Cleanup(server.Close)

	client := NewDirectoryClient(config.DirectoryConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
	employees, err := client.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, "1", employees[0].ID)
	assert.Equal(t, "Ana García", employees[0].FullName)
	assert.Equal(t, "ES", employees[0].Country)
	assert.Equal(t, []string{"10", "11"}, employees[1].TeamIDs)
}

func TestListEmployees_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewDirectoryClient(config.DirectoryConfig{BaseURL: server.URL, Timeout: time.Second})
	_, err := client.ListEmployees(context.Background())
	assert.ErrorIs(t, err, employee.ErrDirectoryFailed)
}
