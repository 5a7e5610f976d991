package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

type failedNotificationItem struct {
	MessageID string `dynamodbav:"messageId"`
	Target    string `dynamodbav:"target"`
	Recipient string `dynamodbav:"recipient,omitempty"`
	Error     string `dynamodbav:"error"`
	Attempts  int    `dynamodbav:"attempts"`
	Status    string `dynamodbav:"status"`
	CreatedAt string `dynamodbav:"createdAt"`
}

// FailedNotificationRepository writes undelivered notifications to their own table,
// keyed by messageId and target.
type FailedNotificationRepository struct {
	api   API
	table string
}

func NewFailedNotificationRepository(api API, table string) *FailedNotificationRepository {
	return &FailedNotificationRepository{api: api, table: table}
}

func (r *FailedNotificationRepository) Record(ctx context.Context, failure domain.FailedNotification) error {
	createdAt := failure.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	item, err := attributevalue.MarshalMap(failedNotificationItem{
		MessageID: failure.MessageID,
		Target:    failure.Target,
		Recipient: failure.Recipient,
		Error:     failure.Error,
		Attempts:  failure.Attempts,
		Status:    "pending",
		CreatedAt: createdAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal failed notification: %w", err)
	}
	if _, err := r.api.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(r.table), Item: item}); err != nil {
		return fmt.Errorf("put failed notification: %w", err)
	}
	return nil
}
