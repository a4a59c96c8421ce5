package email

import (
	"context"
	"fmt"
	"net/url"
	"time"
	c "yeonghwa/internal/core/domain/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESSender struct {
	ses sesAPI
	// This address must be verified with Amazon SES.
	sender string
	now    func() time.Time
}

func NewSESSender(awsConfig aws.Config, sender string, now func() time.Time) *SESSender {
	return &SESSender{ses: ses.NewFromConfig(awsConfig), sender: sender, now: now}
}

func (s *SESSender) SendPasswordResetURL(ctx context.Context, to c.Email, resetURL url.URL) error {
	msg, err := RenderPasswordReset(resetURL, s.now())
	if err != nil {
		return fmt.Errorf("could not render password reset email: %w", err)
	}
	source := fmt.Sprintf("%q <%s>", SenderName, s.sender)
	_, err = s.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{string(to)},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
				Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
			},
		},
	})
	return err
}
