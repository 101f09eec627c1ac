package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
)

const (
	senderIDAttribute = "AWS.SNS.SMS.SenderID"
	smsTypeAttribute  = "AWS.SNS.SMS.SMSType"
)

// SNSSender publishes SMS directly to phone numbers through Amazon SNS.
type SNSSender struct {
	svc      snsiface.SNSAPI
	senderID string
}

func NewSNSSender(svc snsiface.SNSAPI, senderID string) *SNSSender {
	return &SNSSender{svc: svc, senderID: senderID}
}

func (s *SNSSender) Send(ctx context.Context, to, body string) error {
	_, err := s.svc.PublishWithContext(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(body),
		MessageAttributes: map[string]*sns.MessageAttributeValue{
			senderIDAttribute: {DataType: aws.String("String"), StringValue: aws.String(s.senderID)},
			smsTypeAttribute:  {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
		},
	})
	if err != nil {
		return fmt.Errorf("sns: %w", err)
	}
	return nil
}
