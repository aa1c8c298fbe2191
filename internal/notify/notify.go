// Package notify delivers SOS messages to emergency contacts.
package notify

import (
	"context"
	"errors"
	"fmt"

	"saferail/internal/logger"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrNoRecipient = errors.New("notify: empty recipient")

type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// SMS sends through the Twilio messages API.
type SMS struct {
	client *twilio.RestClient
	from   string
	log    *logger.Logger
}

func NewSMS(accountSID, authToken, from string, l *logger.Logger) *SMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMS{client: client, from: from, log: named(l)}
}

func (s *SMS) Send(ctx context.Context, to, body string) error {
	if to == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send sms to %s: %w", logger.MaskDigits(to), err)
	}
	if resp.Sid != nil {
		s.log.Debugw("sms_sent", "to", logger.MaskDigits(to), "sid", *resp.Sid)
	}
	return nil
}

// Log only writes the message to the service log.
type Log struct {
	log *logger.Logger
}

func NewLog(l *logger.Logger) *Log {
	return &Log{log: named(l)}
}

func (n *Log) Send(_ context.Context, to, body string) error {
	if to == "" {
		return ErrNoRecipient
	}
	n.log.Infow("sos_notification", "to", logger.MaskDigits(to), "body", body)
	return nil
}

func named(l *logger.Logger) *logger.Logger {
	if l == nil {
		return logger.Nop()
	}
	return l.Named("notify")
}
