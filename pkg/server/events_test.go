package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/publish"
)

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func TestEventsStream(t *testing.T) {
	msgs := make(chan publish.Message, 2)
	src := func(context.Context) (<-chan publish.Message, error) { return msgs, nil }

	ts := httptest.NewServer(New(fixture(t), WithEvents(src)))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/events"), nil)
	require.NoError(t, err)
	defer conn.Close()

	msgs <- publish.NewMessage("demo", graph.Event{Name: graph.EventNodeAdded, Key: "z", Attributes: graph.Attributes{"label": "Z"}})
	msgs <- publish.NewMessage("demo", graph.Event{Name: graph.EventCleared})

	var first, second publish.Message
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, "demo", first.Graph)
	assert.Equal(t, graph.EventNodeAdded, first.Event.Name)
	assert.Equal(t, "z", first.Event.Key)
	assert.Equal(t, "Z", first.Event.Attributes["label"])
	assert.Equal(t, graph.EventCleared, second.Event.Name)

	close(msgs)
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestEventsDisabled(t *testing.T) {
	w := get(t, New(fixture(t)), "/events")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventsSourceError(t *testing.T) {
	src := func(context.Context) (<-chan publish.Message, error) {
		return nil, errors.New(errors.ErrCodeNetwork, "redis down")
	}
	w := get(t, New(fixture(t), WithEvents(src)), "/events")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, errors.ErrCodeNetwork, decode[ErrorResponse](t, w).Code)
}

func TestEventsOrigin(t *testing.T) {
	src := func(ctx context.Context) (<-chan publish.Message, error) {
		return make(chan publish.Message), nil
	}

	tests := []struct {
		name   string
		cors   string
		origin string
		wantOK bool
	}{
		{"same origin default", "", "", true},
		{"foreign origin default", "", "http://evil.example", false},
		{"allowed origin", "http://app.example", "http://app.example", true},
		{"other origin", "http://app.example", "http://evil.example", false},
		{"any origin", "*", "http://evil.example", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(New(fixture(t), WithEvents(src), WithCORSOrigin(tt.cors)))
			defer ts.Close()

			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, "/events"), header)
			if tt.wantOK {
				require.NoError(t, err)
				conn.Close()
				return
			}
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}
