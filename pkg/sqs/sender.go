package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Client defines the SQS operations used by Sender and Worker
type Client interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Sender handles sending messages to SQS queues
type Sender struct {
	sqsClient Client
	mu        sync.RWMutex
	queueURLs map[string]string
}

// NewSender creates and returns a new Sender
func NewSender(sqsClient Client) *Sender {
	return &Sender{
		sqsClient: sqsClient,
		queueURLs: make(map[string]string),
	}
}

// SendMessage serializes the provided body to JSON and sends it to the specified queue
func (s *Sender) SendMessage(ctx context.Context, queueName string, body any) error {
	queueURL, err := s.getQueueURL(ctx, queueName)
	if err != nil {
		return fmt.Errorf("failed to get queue URL for %s: %w", queueName, err)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message body to JSON: %w", err)
	}

	messageBody := string(jsonBody)
	_, err = s.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    &queueURL,
		MessageBody: &messageBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to queue %s: %w", queueName, err)
	}

	return nil
}

// QueueURL resolves the URL of queueName, caching the answer
func (s *Sender) QueueURL(ctx context.Context, queueName string) (string, error) {
	return s.getQueueURL(ctx, queueName)
}

func (s *Sender) getQueueURL(ctx context.Context, queueName string) (string, error) {
	s.mu.RLock()
	cached, ok := s.queueURLs[queueName]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	queueURL, err := resolveQueueURL(ctx, s.sqsClient, queueName)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.queueURLs[queueName] = queueURL
	s.mu.Unlock()
	return queueURL, nil
}

func resolveQueueURL(ctx context.Context, client Client, queueName string) (string, error) {
	result, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: &queueName,
	})
	if err != nil {
		return "", err
	}
	if result.QueueUrl == nil {
		return "", fmt.Errorf("queue URL is nil for queue %s", queueName)
	}
	return *result.QueueUrl, nil
}
