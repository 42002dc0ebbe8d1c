package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"route-cost-service/internal/ports"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// CatalogChange announces a catalog mutation.
// Origin and Destination are set when the change introduced or edited a specific leg.
type CatalogChange struct {
	Entity      string `json:"entity"`
	Action      string `json:"action"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Full        bool   `json:"full,omitempty"`
}

type TriggerReply struct {
	Created int    `json:"created"`
	Error   string `json:"error,omitempty"`
}

// Dispatch runs the regeneration strategy a change calls for: a full rebuild when
// requested, the localized path when both endpoints are named, and an incremental
// pass otherwise.
func Dispatch(ctx context.Context, r ports.RouteRegenerator, change CatalogChange) (int, error) {
	origin := strings.TrimSpace(change.Origin)
	dest := strings.TrimSpace(change.Destination)

	switch {
	case change.Full:
		return r.RegenerateAll(ctx)
	case origin != "" && dest != "":
		return r.RegenerateForAirportPair(ctx, origin, dest)
	default:
		return r.RegenerateIncremental(ctx)
	}
}

// NATSTrigger subscribes to catalog change messages and regenerates routes for each.
//
// Messages on one subscription are delivered one at a time, so regenerations never
// overlap within a process. When a message carries a reply subject the outcome is
// sent back as a TriggerReply.
type NATSTrigger struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	subject string
	engine  ports.RouteRegenerator
	timeout time.Duration
}

func NewNATSTrigger(url, subject string, engine ports.RouteRegenerator) (*NATSTrigger, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, errors.New("nats trigger: subject must not be empty")
	}
	if engine == nil {
		return nil, errors.New("nats trigger: engine must not be nil")
	}

	conn, err := nats.Connect(
		url,
		nats.Name("route-cost-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats trigger: connect %q: %w", url, err)
	}

	return &NATSTrigger{
		conn:    conn,
		subject: subject,
		engine:  engine,
		timeout: 5 * time.Minute,
	}, nil
}

// Start subscribes to the configured subject.
func (t *NATSTrigger) Start() error {
	sub, err := t.conn.Subscribe(t.subject, t.handle)
	if err != nil {
		return fmt.Errorf("nats trigger: subscribe %q: %w", t.subject, err)
	}
	t.sub = sub
	log.Printf("nats trigger: listening subject=%s", t.subject)
	return nil
}

func (t *NATSTrigger) handle(msg *nats.Msg) {
	reply := t.process(msg.Data)

	if msg.Reply == "" {
		return
	}
	b, err := json.Marshal(reply)
	if err != nil {
		log.Printf("nats trigger: encode reply failed: %v", err)
		return
	}
	if err := msg.Respond(b); err != nil {
		log.Printf("nats trigger: respond failed: %v", err)
	}
}

func (t *NATSTrigger) process(data []byte) TriggerReply {
	var change CatalogChange
	if err := json.Unmarshal(data, &change); err != nil {
		log.Printf("nats trigger: invalid message: %v", err)
		return TriggerReply{Error: "invalid catalog change message"}
	}

	timeout := t.timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := Dispatch(ctx, t.engine, change)
	if err != nil {
		log.Printf("nats trigger: regenerate failed entity=%s action=%s: %v", change.Entity, change.Action, err)
		return TriggerReply{Error: err.Error()}
	}

	log.Printf("nats trigger: entity=%s action=%s created=%d", change.Entity, change.Action, n)
	return TriggerReply{Created: n}
}

// Close unsubscribes and drains the connection.
func (t *NATSTrigger) Close() error {
	if t.sub != nil {
		if err := t.sub.Unsubscribe(); err != nil {
			log.Printf("nats trigger: unsubscribe failed: %v", err)
		}
	}
	return t.conn.Drain()
}
