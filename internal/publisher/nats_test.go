package publisher

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectToken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"tracking", "tracking"},
		{" a b ", "a_b"},
		{"x.y", "x_y"},
		{"*>", "__"},
		{"", "_"},
		{"route/16", "route_16"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, subjectToken(tc.in))
		})
	}
}

func TestPanelSubject(t *testing.T) {
	assert.Equal(t, "transit.panel.destination_chosen", PanelSubject("transit", "destination_chosen"))
	assert.Equal(t, "cnmi.transit.panel.tracking", PanelSubject("cnmi.transit", "tracking"))
	assert.Equal(t, "transit.panel.a_b", PanelSubject("transit", "a.b"))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.PublishPanel(PanelMessage{}))
	assert.NoError(t, p.PublishTheme(ThemeMessage{}))
	p.Close()
}

func TestNATSPublishPanel(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set - skipping NATS integration test")
	}
	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()

	ch := make(chan *nats.Msg, 1)
	s, err := sub.ChanSubscribe("transit-test.panel.>", ch)
	require.NoError(t, err)
	defer s.Unsubscribe()
	require.NoError(t, sub.Flush())

	p, err := NewNATSPublisher(url, "transit-test", false, nil)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.PublishPanel(PanelMessage{SessionID: "s1", Event: "select_route", From: "destination_chosen", To: "tracking", TrackingBus: "1"}))

	select {
	case msg := <-ch:
		assert.Equal(t, "transit-test.panel.tracking", msg.Subject)
		var got PanelMessage
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "1", got.TrackingBus)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}
