// Package notify delivers the customer confirmation for an issued RMA.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	stderrors "rma-desk/internal/common/errors"
	"rma-desk/internal/common/logger"
	"rma-desk/internal/rma"
)

// EmailSender is the SES surface the notifier needs. Satisfied by
// aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSSender is the SNS surface the notifier needs. Satisfied by
// aws.SNSClient.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Options struct {
	Email     EmailSender // optional
	SMS       SMSSender   // optional
	FromEmail string
	Logger    logger.Logger
}

type Notifier struct {
	email  EmailSender
	sms    SMSSender
	from   string
	logger logger.Logger
}

func New(opts Options) *Notifier {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Notifier{
		email:  opts.Email,
		sms:    opts.SMS,
		from:   opts.FromEmail,
		logger: log,
	}
}

// SendIssued mails the confirmation to the contact and, when a real phone
// number is on file, additionally sends an SMS.
func (n *Notifier) SendIssued(ctx context.Context, issued *rma.Issued) error {
	if n.email != nil && issued.Contact.Email != "" {
		input := &ses.SendEmailInput{
			Source: aws.String(n.from),
			Destination: &sestypes.Destination{
				ToAddresses: []string{issued.Contact.Email},
			},
			Message: &sestypes.Message{
				Subject: &sestypes.Content{
					Data: aws.String(fmt.Sprintf("RMA %d issued", issued.Number)),
				},
				Body: &sestypes.Body{
					Text: &sestypes.Content{
						Data: aws.String(emailBody(issued)),
					},
				},
			},
		}
		if _, err := n.email.SendEmail(ctx, input); err != nil {
			return stderrors.NewNotificationSendFailedError("email", err)
		}
		n.logger.Debug("Confirmation email sent", map[string]interface{}{
			"number": issued.Number,
			"to":     issued.Contact.Email,
		})
	}

	if n.sms != nil && issued.Contact.Phone != "" && issued.Contact.Phone != rma.PhoneUnknown {
		input := &sns.PublishInput{
			PhoneNumber: aws.String(issued.Contact.Phone),
			Message:     aws.String(fmt.Sprintf("Your return authorization %d has been issued.", issued.Number)),
		}
		if _, err := n.sms.Publish(ctx, input); err != nil {
			return stderrors.NewNotificationSendFailedError("sms", err)
		}
		n.logger.Debug("Confirmation SMS sent", map[string]interface{}{
			"number": issued.Number,
		})
	}

	return nil
}

func emailBody(issued *rma.Issued) string {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour return merchandise authorization has been issued.\n\nRMA number: %d\n",
		issued.Contact.Name, issued.Number,
	)
	if issued.Request.Product != "" {
		body += fmt.Sprintf("Product: %s\n", issued.Request.Product)
	}
	if issued.Request.SerialNumber != "" {
		body += fmt.Sprintf("Serial number: %s\n", issued.Request.SerialNumber)
	}
	body += "\nPlease include the RMA number with your shipment.\n"
	return body
}
