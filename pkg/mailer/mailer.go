package mailer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// ErrNotConfigured is returned by Disabled and when no sender is set.
var ErrNotConfigured = errors.New("email service not configured")

type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	From            string
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESMailer struct {
	client sesAPI
	from   string
}

func NewSESMailer(ctx context.Context, cfg Config) (*SESMailer, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &SESMailer{client: ses.NewFromConfig(awsCfg), from: cfg.From}, nil
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if m.from == "" {
		return ErrNotConfigured
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("recipient email address is empty")
	}

	body := &types.Body{
		Text: &types.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(msg.TextBody),
		},
	}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(msg.HTMLBody),
		}
	}

	input := &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(msg.Subject),
			},
			Body: body,
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email %q sent to %v", msg.Subject, msg.To)
	return nil
}

// Disabled is used when no sender address is configured.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error {
	return ErrNotConfigured
}
