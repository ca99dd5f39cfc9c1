package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewatch/ratewatch/pkg/types"
)

type fakeSES struct {
	err   error
	calls int
	input *ses.SendEmailInput
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.calls++
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

func validMessage() types.AlertMessage {
	return types.AlertMessage{
		Recipient: "alerts@prebid.org",
		Subject:   "ALERT: Stale Currency Rates File",
		Sender:    "alerts@prebid.org",
		ReplyTo:   "alerts@prebid.org",
		Body:      "The currency rates data has a stale timestamp of 2026-08-20.",
	}
}

func TestBuildSendEmailInput(t *testing.T) {
	msg := validMessage()
	input := BuildSendEmailInput(msg)

	require.NotNil(t, input)
	require.Len(t, input.Destination.ToAddresses, 1)
	assert.Equal(t, msg.Recipient, input.Destination.ToAddresses[0])
	assert.Equal(t, msg.Subject, *input.Message.Subject.Data)
	assert.Equal(t, "UTF-8", *input.Message.Subject.Charset)
	assert.Equal(t, msg.Body, *input.Message.Body.Text.Data)
	assert.Equal(t, "UTF-8", *input.Message.Body.Text.Charset)
	assert.Equal(t, msg.Sender, *input.Source)
	assert.Equal(t, []string{msg.ReplyTo}, input.ReplyToAddresses)
}

func TestBuildSendEmailInputMissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.AlertMessage)
	}{
		{"missing recipient", func(m *types.AlertMessage) { m.Recipient = "" }},
		{"missing subject", func(m *types.AlertMessage) { m.Subject = "" }},
		{"missing sender", func(m *types.AlertMessage) { m.Sender = "" }},
		{"missing replyTo", func(m *types.AlertMessage) { m.ReplyTo = "" }},
		{"missing message", func(m *types.AlertMessage) { m.Body = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validMessage()
			tt.mutate(&msg)
			assert.Nil(t, BuildSendEmailInput(msg))
		})
	}
}

func TestSend(t *testing.T) {
	client := &fakeSES{}
	m := NewWithClient(client)

	err := m.Send(context.Background(), validMessage())

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	require.NotNil(t, client.input)
}

func TestSendMissingField(t *testing.T) {
	client := &fakeSES{}
	m := NewWithClient(client)

	msg := validMessage()
	msg.Recipient = ""
	err := m.Send(context.Background(), msg)

	require.Error(t, err)
	assert.True(t, types.IsValidationError(err))
	assert.Zero(t, client.calls, "no send attempted with a missing field")
}

func TestSendServiceError(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	m := NewWithClient(client)

	err := m.Send(context.Background(), validMessage())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending alert email")
	assert.Contains(t, err.Error(), "throttled")
	assert.Equal(t, 1, client.calls, "exactly one attempt, no retry")
}
