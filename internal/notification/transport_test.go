package notification

import (
	"context"
	"testing"

	"salon-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewMailer(t *testing.T) {
	assert.IsType(t, &LogMailer{}, NewMailer(utils.EmailConfig{}, zap.NewNop()))
	assert.IsType(t, &SMTPMailer{}, NewMailer(utils.EmailConfig{Host: "smtp.example.com", Port: 587}, zap.NewNop()))
}

func TestLogMailer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mailer := NewLogMailer(zap.New(core))

	require.NoError(t, mailer.SendEmail(context.Background(), "jane@example.com", "Booking Confirmation", "See you"))
	entries := logs.FilterField(zap.String("to", "jane@example.com")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Booking Confirmation", entries[0].ContextMap()["subject"])
}

func TestNewSMSSender(t *testing.T) {
	assert.Nil(t, NewSMSSender(utils.SMSConfig{AccountSID: "AC123"}))
	assert.NotNil(t, NewSMSSender(utils.SMSConfig{AccountSID: "AC123", AuthToken: "secret", From: "+15550001111"}))
}
