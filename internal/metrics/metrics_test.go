package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RegistryObserver(t *testing.T) {
	m := New()

	m.UserCreated(1)
	m.UserCreated(2)
	m.UserInserted(3)
	m.CreateRejected("email")
	m.CreateRejected("email")
	m.CreateRejected("name")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.usersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.usersInserted))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.registrySize))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.createRejected.WithLabelValues("email")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.createRejected.WithLabelValues("name")))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/v1/users/{id}", http.StatusNotFound, 3*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/users/{id}", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.httpRequests.WithLabelValues("GET", "/api/v1/users/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.UserCreated(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "userregistry_users_created_total 1")
	assert.Contains(t, body, "userregistry_registry_users 1")
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestMetrics_Lint(t *testing.T) {
	m := New()
	m.CreateRejected("name")

	problems, err := testutil.GatherAndLint(m.Registry(), "userregistry_user_create_failures_total")
	require.NoError(t, err)
	assert.Empty(t, problems)
}
