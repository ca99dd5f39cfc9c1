// Package mailer delivers alert emails through Amazon SES.
package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/ratewatch/ratewatch/pkg/types"
)

const charset = "UTF-8"

// SESAPI is the subset of the SES client used by the mailer.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends alert emails via SES.
type SESMailer struct {
	client SESAPI
}

// New builds an SESMailer using the default AWS credential chain.
func New(ctx context.Context, region string) (*SESMailer, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg)}, nil
}

// NewWithClient builds an SESMailer around an existing client.
func NewWithClient(client SESAPI) *SESMailer {
	return &SESMailer{client: client}
}

// BuildSendEmailInput constructs the SES request for the message.
// Returns nil when any required field is missing; no send should be
// attempted in that case.
func BuildSendEmailInput(msg types.AlertMessage) *ses.SendEmailInput {
	if err := msg.Validate(); err != nil {
		return nil
	}
	return &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.Recipient},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String(charset),
			},
			Body: &sestypes.Body{
				Text: &sestypes.Content{
					Data:    aws.String(msg.Body),
					Charset: aws.String(charset),
				},
			},
		},
		Source:           aws.String(msg.Sender),
		ReplyToAddresses: []string{msg.ReplyTo},
	}
}

// Send delivers the message through SES exactly once. No retry.
func (m *SESMailer) Send(ctx context.Context, msg types.AlertMessage) error {
	input := BuildSendEmailInput(msg)
	if input == nil {
		return msg.Validate()
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("sending alert email: %w", err)
	}
	return nil
}
