package notification

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Message is one outbound notification. Email and SMS parts are optional
// and delivered independently.
type Message struct {
	Kind    string
	To      string
	Subject string
	Body    string
	Phone   string
	SMS     string
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Notifier is what the usecases depend on.
type Notifier interface {
	Enqueue(msg Message) bool
}

var ErrDispatcherClosed = errors.New("notification dispatcher is closed")

// Dispatcher delivers messages from a bounded queue on a fixed set of
// worker goroutines. Delivery failures are logged and never returned.
type Dispatcher struct {
	email   EmailSender
	sms     SMSSender
	log     *zap.Logger
	queue   chan Message
	workers int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(email EmailSender, sms SMSSender, workers, queueSize int, log *zap.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		email:   email,
		sms:     sms,
		log:     log.With(zap.String("component", "notification")),
		queue:   make(chan Message, queueSize),
		workers: workers,
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(i)
	}
	d.log.Info("Notification dispatcher started",
		zap.Int("workers", d.workers),
		zap.Int("queue_size", cap(d.queue)),
	)
}

// Enqueue never blocks. It reports false when the message was dropped.
func (d *Dispatcher) Enqueue(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Dropping notification after shutdown", zap.String("kind", msg.Kind))
		return false
	}

	select {
	case d.queue <- msg:
		return true
	default:
		d.log.Warn("Notification queue full, dropping message",
			zap.String("kind", msg.Kind),
			zap.String("to", msg.To),
		)
		return false
	}
}

// Shutdown stops accepting messages and waits for queued ones to be
// delivered, or for ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.log.Info("Notification dispatcher drained")
		return nil
	case <-ctx.Done():
		d.log.Warn("Notification dispatcher shutdown timed out", zap.Int("pending", len(d.queue)))
		return ctx.Err()
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()
	for msg := range d.queue {
		d.deliver(msg, id)
	}
}

func (d *Dispatcher) deliver(msg Message, worker int) {
	ctx := context.Background()
	log := d.log.With(zap.String("kind", msg.Kind), zap.Int("worker", worker))

	if msg.To != "" && d.email != nil {
		if err := d.email.SendEmail(ctx, msg.To, msg.Subject, msg.Body); err != nil {
			log.Error("Failed to send email", zap.Error(err), zap.String("to", msg.To))
		} else {
			log.Info("Email sent", zap.String("to", msg.To))
		}
	}

	if msg.Phone != "" && msg.SMS != "" && d.sms != nil {
		if err := d.sms.SendSMS(ctx, msg.Phone, msg.SMS); err != nil {
			log.Error("Failed to send SMS", zap.Error(err), zap.String("phone", msg.Phone))
		} else {
			log.Info("SMS sent", zap.String("phone", msg.Phone))
		}
	}
}
