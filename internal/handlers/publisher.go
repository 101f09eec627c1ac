package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/google/uuid"
)

type Message struct {
	ID         string `json:"id"`
	Service    string `json:"service"`
	CreatedAt  string `json:"created_at"`
	RawMessage string `json:"raw_message"`
	Source     Source `json:"source"`
}

type Source struct {
	Channel    string `json:"channel"`
	SourceURI  string `json:"source_uri"`
	SenderName string `json:"sender_name"`
	SenderURI  string `json:"sender_uri"`
}

// NewMessage wraps an outgoing notification body. Service is filled in by
// the publisher.
func NewMessage(sourceURL, body string, now time.Time) Message {
	return Message{
		ID:         uuid.New().String(),
		CreatedAt:  now.Format(time.RFC3339),
		RawMessage: body,
		Source: Source{
			Channel:   "web",
			SourceURI: sourceURL,
		},
	}
}

// SQSPublisher forwards every outgoing message to an SQS queue as JSON.
type SQSPublisher struct {
	svc      sqsiface.SQSAPI
	queueURL string
	service  string
}

func NewSQSPublisher(svc sqsiface.SQSAPI, queueURL, service string) *SQSPublisher {
	return &SQSPublisher{svc: svc, queueURL: queueURL, service: service}
}

func (p *SQSPublisher) Publish(ctx context.Context, message Message) error {
	message.Service = p.service

	jsonMsg, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = p.svc.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(jsonMsg)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
