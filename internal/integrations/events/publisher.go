// Package events публикует события бронирований в RabbitMQ (topic exchange,
// routing key = тип события). Ошибки публикации возвращаются вызывающему,
// который решает, логировать их или нет.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel часть *amqp.Channel, нужная для публикации
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// Dialer открывает соединение и канал
type Dialer func(url string) (Channel, func() error, error)

// DialAMQP реальное подключение к брокеру
func DialAMQP(url string) (Channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return ch, conn.Close, nil
}

// Publisher долгоживущий издатель. Соединение поднимается лениво
// и переоткрывается, если канал закрылся.
type Publisher struct {
	url      string
	exchange string
	dial     Dialer

	mu        sync.Mutex
	ch        Channel
	closeConn func() error
	closed    bool
}

func NewPublisher(url, exchange string, dial Dialer) *Publisher {
	if dial == nil {
		dial = DialAMQP
	}
	return &Publisher{url: url, exchange: exchange, dial: dial}
}

// Publish отправляет событие как persistent JSON
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.Type, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	return p.reset()
}

func (p *Publisher) channel() (Channel, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	ch, closeConn, err := p.dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		if closeConn != nil {
			_ = closeConn()
		}
		return nil, fmt.Errorf("%w: declare exchange %q: %v", ErrConnect, p.exchange, err)
	}

	p.ch = ch
	p.closeConn = closeConn
	return ch, nil
}

func (p *Publisher) reset() error {
	var err error
	if p.ch != nil {
		err = p.ch.Close()
		p.ch = nil
	}
	if p.closeConn != nil {
		if cerr := p.closeConn(); cerr != nil && err == nil {
			err = cerr
		}
		p.closeConn = nil
	}
	return err
}

// NopPublisher используется, когда публикация событий выключена
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
