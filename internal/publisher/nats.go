package publisher

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher fans UI state changes out to whoever listens. Implementations
// must be safe for concurrent use.
type Publisher interface {
	PublishPanel(msg PanelMessage) error
	PublishTheme(msg ThemeMessage) error
	Close()
}

type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	PublishObserve(d time.Duration)
	NATSSetConnected(connected bool)
}

type PanelMessage struct {
	SessionID   string    `json:"sessionId"`
	Event       string    `json:"event"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Destination string    `json:"destination,omitempty"`
	TrackingBus string    `json:"trackingBus,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type ThemeMessage struct {
	Preference string    `json:"preference"`
	Resolved   string    `json:"resolved"`
	Timestamp  time.Time `json:"timestamp"`
}

type NATSPublisher struct {
	nc          *nats.Conn
	prefix      string
	logSubjects bool
	metrics     PublisherMetrics
}

func NewNATSPublisher(url, prefix string, logSubjects bool, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("transitd"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, prefix: strings.TrimSpace(prefix), logSubjects: logSubjects, metrics: m}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// PublishPanel sends to <prefix>.panel.<state>.
func (p *NATSPublisher) PublishPanel(msg PanelMessage) error {
	return p.publish(PanelSubject(p.prefix, msg.To), msg)
}

// PublishTheme sends to <prefix>.theme.
func (p *NATSPublisher) PublishTheme(msg ThemeMessage) error {
	return p.publish(p.prefix+".theme", msg)
}

func (p *NATSPublisher) publish(subject string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if p.logSubjects {
		log.Printf("nats publish subject=%s", subject)
	}
	start := time.Now()
	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		p.metrics.PublishObserve(time.Since(start))
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

// PanelSubject builds the subject for a state. The configured prefix is used
// as given so it may span several tokens; only the state is sanitized.
func PanelSubject(prefix, state string) string {
	return fmt.Sprintf("%s.panel.%s", prefix, subjectToken(state))
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or trailing '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}

// Nop drops every message. Used when NATS_URL is empty.
type Nop struct{}

func (Nop) PublishPanel(PanelMessage) error { return nil }
func (Nop) PublishTheme(ThemeMessage) error { return nil }
func (Nop) Close()                          {}
