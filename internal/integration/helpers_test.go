package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cineflow/cineflow/api"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

const (
	eventuallyTimeout = 3 * time.Second
	eventuallyTick    = 50 * time.Millisecond
)

var keysToIgnore = []string{"id", "timestamp", "requestId", "createdAt", "reference", "startTime", "cancelledAt", "usedAt"}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func prepareRequest(method, path string, body io.Reader, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore nondeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		for _, ignored := range keysToIgnore {
			if k == ignored {
				return true
			}
		}
		return false
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func execSQL(t testing.TB, app *TestApp, stmts ...string) {
	t.Helper()

	for _, stmt := range stmts {
		_, err := app.DB.Exec(context.Background(), stmt)
		require.NoError(t, err, "failed to execute: %s", stmt)
	}
}

// purchaseTickets buys tickets through the API and returns the parsed response.
func purchaseTickets(t testing.TB, app *TestApp, cookies []*http.Cookie, showtimeID int, body string) api.PurchaseResponse {
	t.Helper()

	req := prepareRequest(http.MethodPost, fmt.Sprintf("/showtimes/%d/tickets", showtimeID), strings.NewReader(body), cookies)
	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, "purchase failed: %s", rec.Body.String())

	var resp api.PurchaseResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return resp
}

// resetTicketing clears all ticketing state while keeping the seeded catalog.
func resetTicketing(t testing.TB, app *TestApp) {
	t.Helper()

	execSQL(t, app,
		`DELETE FROM used_tickets`,
		`DELETE FROM cancelled_tickets`,
		`DELETE FROM tickets`,
	)
}
