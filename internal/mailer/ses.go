// Package mailer - ses.go sends through AWS SES.
package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// SESAPI is the slice of the SES client the transport uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SES implements Transport over AWS SES.
type SES struct {
	client SESAPI
	logger *zap.Logger
}

// NewSES builds an SES transport for a region, using the ambient AWS
// credential chain.
func NewSES(ctx context.Context, region string, logger *zap.Logger) (*SES, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSESWithClient(ses.NewFromConfig(cfg), logger), nil
}

// NewSESWithClient wires an existing client, mainly for tests.
func NewSESWithClient(client SESAPI, logger *zap.Logger) *SES {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SES{client: client, logger: logger}
}

// Send implements Transport.
func (t *SES) Send(ctx context.Context, msg Message) error {
	if err := ValidateMessage(msg); err != nil {
		return err
	}

	out, err := t.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body)},
			},
		},
		Source: aws.String(msg.From),
	})
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}

	t.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("messageId", aws.ToString(out.MessageId)))
	return nil
}
