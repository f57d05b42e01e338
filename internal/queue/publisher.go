package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/store"
	"restaurant_pos_backend/pkg/utils"
)

const (
	DefaultExchange = "orders_topic"
	publishBuffer   = 128
	publishTimeout  = 3 * time.Second
)

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// TableTotals looks up a table's running total when a ticket is built.
type TableTotals interface {
	GetTable(id string) models.Table
}

// KitchenPublisher turns order_confirmed store events into persistent AMQP messages.
type KitchenPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	tables   TableTotals
	tickets  chan OrderConfirmedEvent
}

// Dial connects to the broker and declares the durable topic exchange.
func Dial(url, exchange string, tables TableTotals) (*KitchenPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newKitchenPublisher(ch, exchange, tables)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newKitchenPublisher(ch channel, exchange string, tables TableTotals) (*KitchenPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &KitchenPublisher{
		ch:       ch,
		exchange: exchange,
		tables:   tables,
		tickets:  make(chan OrderConfirmedEvent, publishBuffer),
	}, nil
}

// HandleEvent queues a ticket for order_confirmed events and ignores the rest.
func (p *KitchenPublisher) HandleEvent(e store.Event) {
	if e.Kind != store.EventOrderConfirmed {
		return
	}
	var total int64
	if p.tables != nil {
		total = p.tables.GetTable(e.TableID).TotalAmount
	}
	ticket := NewOrderConfirmedEvent(e, total)

	select {
	case p.tickets <- ticket:
	default:
		utils.LogWarn(nil, "Kitchen ticket buffer full, dropping ticket", map[string]interface{}{"table_id": e.TableID})
	}
}

// Run publishes queued tickets until ctx is cancelled.
func (p *KitchenPublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ticket := <-p.tickets:
			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			if err := p.Publish(pubCtx, ticket); err != nil {
				utils.LogWarn(err, "Kitchen ticket publish failed", map[string]interface{}{"table_id": ticket.TableID})
			}
			cancel()
		}
	}
}

// Publish sends one ticket as a persistent JSON message.
func (p *KitchenPublisher) Publish(ctx context.Context, ticket OrderConfirmedEvent) error {
	body, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, ticket.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ticket.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Close releases the channel and connection.
func (p *KitchenPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
