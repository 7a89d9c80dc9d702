package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// pagedHandler answers with the body registered for the request's pageToken
// and records every token it was asked for.
type pagedHandler struct {
	bodies map[string]string
	status int
	tokens []string
	auth   []string
}

func (h *pagedHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	token := req.URL.Query().Get("pageToken")
	h.tokens = append(h.tokens, token)
	h.auth = append(h.auth, req.Header.Get("Authorization"))

	w.Header().Set("Content-Type", "application/json")
	if h.status != 0 {
		w.WriteHeader(h.status)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Rate Limit Exceeded","errors":[{"reason":"rateLimitExceeded"}]}}`))
		return
	}
	body, ok := h.bodies[token]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(body))
}

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	tok := &oauth2.Token{AccessToken: "access", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}
	c, err := NewClient(context.Background(), oauth2.StaticTokenSource(tok), nil,
		option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return c
}

func TestClientCalendarsAcrossPages(t *testing.T) {
	h := &pagedHandler{bodies: map[string]string{
		"": `{"items":[{"id":"personal@example.com","summary":"Personal"},{"id":"work@group.calendar.google.com","summary":"Work"}],
			"nextPageToken":"A"}`,
		"A": `{"items":[{"id":"holidays@group.v.calendar.google.com","summary":"Holidays"}],"nextSyncToken":"S1"}`,
	}}
	mux := http.NewServeMux()
	mux.Handle("/users/me/calendarList", h)

	cals, err := newTestClient(t, mux).Calendars(context.Background())
	require.NoError(t, err)
	require.Len(t, cals, 3)
	assert.Equal(t, "personal@example.com", cals[0].ID)
	assert.Equal(t, "Personal", cals[0].Name)
	assert.Equal(t, "work@group.calendar.google.com", cals[1].ID)
	assert.Equal(t, "Holidays", cals[2].Name)
	assert.Equal(t, []string{"", "A"}, h.tokens)
	assert.Equal(t, []string{"Bearer access", "Bearer access"}, h.auth)
}

func TestClientEvents(t *testing.T) {
	h := &pagedHandler{bodies: map[string]string{
		"": `{"items":[
			{"summary":"Training","description":"Go course","start":{"dateTime":"2026-10-19T09:00:00+02:00"},"end":{"dateTime":"2026-10-19T17:00:00+02:00"}}
		],"nextPageToken":"next"}`,
		"next": `{"items":[
			{"summary":"Off","start":{"date":"2026-10-20"},"end":{"date":"2026-10-21"}},
			{"status":"cancelled"}
		],"nextSyncToken":"SYNC"}`,
	}}
	mux := http.NewServeMux()
	mux.Handle("/calendars/work-calendar/events", h)

	events, syncToken, err := newTestClient(t, mux).Events(context.Background(), "work-calendar")
	require.NoError(t, err)
	assert.Equal(t, "SYNC", syncToken)
	require.Len(t, events, 3)

	require.NotNil(t, events[0].Summary)
	assert.Equal(t, "Training", *events[0].Summary)
	assert.Equal(t, "2026-10-19T09:00:00+02:00", *events[0].Start)
	assert.Equal(t, "Go course", *events[0].Description)

	assert.Equal(t, "2026-10-20", *events[1].Start)
	assert.Equal(t, "2026-10-21", *events[1].End)
	assert.Nil(t, events[1].Description)

	assert.Nil(t, events[2].Summary)
	assert.Nil(t, events[2].Start)
	assert.Nil(t, events[2].End)

	assert.Equal(t, []string{"", "next"}, h.tokens)
}

func TestClientTransportErrorIsNotRetried(t *testing.T) {
	h := &pagedHandler{status: http.StatusForbidden}
	mux := http.NewServeMux()
	mux.Handle("/users/me/calendarList", h)

	cals, err := newTestClient(t, mux).Calendars(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Nil(t, cals)
	assert.Len(t, h.tokens, 1)
}

func TestNewClientNilTokenSource(t *testing.T) {
	c, err := NewClient(context.Background(), nil, nil)
	assert.Error(t, err)
	assert.Nil(t, c)
}
