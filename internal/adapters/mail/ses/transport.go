package ses

import (
	"context"
	"fmt"

	mailport "patilog/internal/ports/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	sesapi "github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Transport sends through AWS SES. The simple SendEmail API carries no
// attachment, so the ICS payload is dropped here; the add-to-calendar link in
// the body is the calendar path for SES deployments.
type Transport struct {
	client *sesapi.Client
	from   string
}

func New(ctx context.Context, region, from string) (*Transport, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("ses: load aws config: %w", err)
	}
	return &Transport{client: sesapi.NewFromConfig(cfg), from: from}, nil
}

func (t *Transport) Send(ctx context.Context, m mailport.Message) error {
	input := &sesapi.SendEmailInput{
		Source: aws.String(t.from),
		Destination: &types.Destination{
			ToAddresses: m.To,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(m.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(m.HTMLBody),
				},
			},
		},
	}

	if _, err := t.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses: send: %w", err)
	}
	return nil
}
