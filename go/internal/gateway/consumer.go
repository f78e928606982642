package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/mcdev12/franchise/go/internal/events"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// EventConsumer subscribes to the league transaction stream and relays
// events onto the WebSocket feed
type EventConsumer struct {
	nc            *nats.Conn
	subjectPrefix string
	feed          *Feed
	sub           *nats.Subscription
}

// NewEventConsumer connects to NATS for feed relay
func NewEventConsumer(url, subjectPrefix string, feed *Feed) (*EventConsumer, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("feed consumer disconnected from NATS")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("feed consumer reconnected to NATS")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &EventConsumer{
		nc:            nc,
		subjectPrefix: subjectPrefix,
		feed:          feed,
	}, nil
}

// Start subscribes to every transaction subject and begins relaying
func (c *EventConsumer) Start() error {
	subject := fmt.Sprintf("%s.>", c.subjectPrefix)
	sub, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		var event events.TransactionEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject).Msg("failed to decode transaction event")
			return
		}
		c.feed.Broadcast(event)
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", subject, err)
	}
	c.sub = sub

	log.Info().Str("subject", subject).Msg("feed consumer subscribed")
	return nil
}

// Close unsubscribes and drops the NATS connection
func (c *EventConsumer) Close() error {
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			return err
		}
	}
	c.nc.Close()
	return nil
}
