// Package email delivers plain-text notification mail through Amazon SES or,
// in development, the log.
package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

// SESAPI is the subset of *sesv2.Client used by SESSender.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// NewSESClient builds an SES v2 client. endpoint overrides the service URL.
func NewSESClient(cfg aws.Config, endpoint string) *sesv2.Client {
	return sesv2.NewFromConfig(cfg, func(o *sesv2.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

type SESSender struct {
	api  SESAPI
	from string
	lg   zerolog.Logger
}

func NewSESSender(api SESAPI, from string, lg zerolog.Logger) (*SESSender, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return nil, errors.New("ses sender: from address is required")
	}
	return &SESSender{
		api:  api,
		from: from,
		lg:   lg.With().Str("component", "ses_sender").Logger(),
	}, nil
}

func (s *SESSender) Name() string { return "ses" }

// Send delivers mail as a UTF-8 text body.
func (s *SESSender) Send(ctx context.Context, mail domain.Email) error {
	if strings.TrimSpace(mail.To) == "" {
		return errors.New("ses sender: recipient is empty")
	}
	out, err := s.api.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{mail.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(mail.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(mail.Body), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	s.lg.Debug().Str("to", mail.To).Str("ses_message_id", aws.ToString(out.MessageId)).Msg("ses accepted email")
	return nil
}
