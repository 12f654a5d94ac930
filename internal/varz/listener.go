package varz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// ErrListenerStarted is returned when Start is called twice.
var ErrListenerStarted = errors.New("listener already started")

// stateDeleted removes an application from the snapshot.
const stateDeleted = "DELETED"

// Subscriber is the part of *nats.Conn the listener uses.
type Subscriber interface {
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// StatusMessage is the broadcast a component publishes for one application.
type StatusMessage struct {
	Org       string `json:"org"`
	Space     string `json:"space"`
	App       string `json:"app"`
	State     string `json:"state"`
	Instances int    `json:"instances"`
}

// Listener subscribes to status broadcasts and applies them to a Store.
type Listener struct {
	conn    Subscriber
	store   *Store
	subject string
	logger  capi.Logger

	mu  sync.Mutex
	sub *nats.Subscription
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithSubject overrides the broadcast subject.
func WithSubject(subject string) ListenerOption {
	return func(l *Listener) {
		if subject != "" {
			l.subject = subject
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger capi.Logger) ListenerOption {
	return func(l *Listener) {
		l.logger = logger
	}
}

// NewListener creates a listener that fills store.
func NewListener(conn Subscriber, store *Store, opts ...ListenerOption) *Listener {
	listener := &Listener{
		conn:    conn,
		store:   store,
		subject: constants.DefaultStatusSubject,
	}

	for _, opt := range opts {
		opt(listener)
	}

	return listener
}

// Connect dials the NATS server at url.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("capi-admin"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	return conn, nil
}

// Start subscribes to the status subject.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sub != nil {
		return ErrListenerStarted
	}

	sub, err := l.conn.Subscribe(l.subject, l.HandleMessage)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", l.subject, err)
	}

	l.sub = sub

	if l.logger != nil {
		l.logger.Info("Listening for status broadcasts", map[string]interface{}{"subject": l.subject})
	}

	return nil
}

// Close unsubscribes. It is safe to call more than once.
func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sub == nil {
		return nil
	}

	err := l.sub.Unsubscribe()
	l.sub = nil

	if err != nil && !errors.Is(err, nats.ErrConnectionClosed) && !errors.Is(err, nats.ErrBadSubscription) {
		return fmt.Errorf("unsubscribing from %s: %w", l.subject, err)
	}

	return nil
}

// HandleMessage applies one broadcast. Malformed messages are dropped.
func (l *Listener) HandleMessage(msg *nats.Msg) {
	var status StatusMessage

	err := json.Unmarshal(msg.Data, &status)
	if err != nil {
		l.drop(msg, "invalid JSON")

		return
	}

	if status.Org == "" || status.Space == "" || status.App == "" || status.State == "" {
		l.drop(msg, "missing org, space, app or state")

		return
	}

	key := capi.AppKey{Org: status.Org, Space: status.Space, App: status.App}
	state := strings.ToUpper(status.State)

	if state == stateDeleted {
		l.store.Remove(key)

		return
	}

	l.store.Update(key, state, status.Instances)
}

func (l *Listener) drop(msg *nats.Msg, reason string) {
	if l.logger != nil {
		l.logger.Warn("Dropping status broadcast", map[string]interface{}{
			"subject": msg.Subject,
			"reason":  reason,
		})
	}
}
