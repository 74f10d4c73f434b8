package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	block chan struct{}
}

func (r *recordingSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("smtp down")
	}
	r.sent = append(r.sent, to)
	return nil
}

func (r *recordingSender) SendSMS(ctx context.Context, to, body string) error {
	return r.SendEmail(ctx, to, "", body)
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func TestDispatcher_DeliversAndDrains(t *testing.T) {
	email := &recordingSender{}
	sms := &recordingSender{}
	d := NewDispatcher(email, sms, 2, 10, zap.NewNop())
	d.Start()

	for i := 0; i < 5; i++ {
		assert.True(t, d.Enqueue(Message{Kind: "test", To: "a@example.com", Phone: "+254700000000", SMS: "hi"}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))

	assert.Equal(t, 5, email.count())
	assert.Equal(t, 5, sms.count())
	assert.False(t, d.Enqueue(Message{Kind: "late", To: "b@example.com"}))
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	email := &recordingSender{block: make(chan struct{})}
	d := NewDispatcher(email, nil, 1, 1, zap.NewNop())
	d.Start()

	// worker picks up the first message and blocks; the second fills the queue
	assert.True(t, d.Enqueue(Message{To: "1@example.com"}))
	assert.Eventually(t, func() bool { return len(d.queue) == 0 }, time.Second, time.Millisecond)
	assert.True(t, d.Enqueue(Message{To: "2@example.com"}))
	assert.False(t, d.Enqueue(Message{To: "3@example.com"}))

	close(email.block)
	require.NoError(t, d.Shutdown(context.Background()))
	assert.Equal(t, 2, email.count())
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	email := &recordingSender{fail: true}
	d := NewDispatcher(email, nil, 1, 4, zap.NewNop())
	d.Start()

	assert.True(t, d.Enqueue(Message{To: "x@example.com"}))
	assert.NoError(t, d.Shutdown(context.Background()))
	assert.ErrorIs(t, d.Shutdown(context.Background()), ErrDispatcherClosed)
}

func TestBookingConfirmationMessage(t *testing.T) {
	email := "amina@example.com"
	b := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		FullName: "Amina",
		Phone:    "+254700000001",
		Email:    &email,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:     entity.TimeOfDay{Hour: 10},
	}

	msg := BookingConfirmation(BookingDetails{Booking: b, ServiceName: "Box Braids", Price: decimal.NewFromInt(3500)})
	assert.Equal(t, email, msg.To)
	assert.Equal(t, "Booking Confirmation - Box Braids", msg.Subject)
	assert.Contains(t, msg.Body, "Date: 2025-06-01")
	assert.Contains(t, msg.Body, "Time: 10:00")
	assert.Contains(t, msg.Body, "Stylist: TBD")
	assert.Contains(t, msg.Body, "KES 3500.00")
	assert.Equal(t, b.Phone, msg.Phone)
}
