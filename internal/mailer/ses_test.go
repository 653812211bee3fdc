package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSESAPI struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *mockSESAPI) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

func TestSES_Send(t *testing.T) {
	var captured *ses.SendEmailInput
	mock := &mockSESAPI{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{MessageId: aws.String("ses-msg-001")}, nil
		},
	}
	transport := NewSESWithClient(mock, nil)

	err := transport.Send(context.Background(), Message{
		From:    "moi@exemple.fr",
		To:      "rh@exemple.fr",
		Subject: "Candidature",
		Body:    "Bonjour,",
	})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, []string{"rh@exemple.fr"}, captured.Destination.ToAddresses)
	assert.Equal(t, "moi@exemple.fr", aws.ToString(captured.Source))
	assert.Equal(t, "Candidature", aws.ToString(captured.Message.Subject.Data))
	assert.Equal(t, "Bonjour,", aws.ToString(captured.Message.Body.Text.Data))
}

func TestSES_SendError(t *testing.T) {
	mock := &mockSESAPI{
		SendEmailFunc: func(_ context.Context, _ *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	transport := NewSESWithClient(mock, nil)

	err := transport.Send(context.Background(), Message{
		From: "moi@exemple.fr", To: "rh@exemple.fr", Subject: "s", Body: "b",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email via SES")
}

func TestSES_SendRejectsBadAddress(t *testing.T) {
	called := false
	mock := &mockSESAPI{
		SendEmailFunc: func(_ context.Context, _ *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			called = true
			return &ses.SendEmailOutput{}, nil
		},
	}
	transport := NewSESWithClient(mock, nil)

	err := transport.Send(context.Background(), Message{From: "moi@exemple.fr", To: "invalide"})
	assert.Error(t, err)
	assert.False(t, called, "transport should validate before calling SES")
}
