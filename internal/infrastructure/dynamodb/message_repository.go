package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	adminapp "github.com/sngm3741/contact-site/internal/admin/application"
	"github.com/sngm3741/contact-site/internal/public/domain"
)

// messageItem is the table layout: the original key schema plus an id attribute.
type messageItem struct {
	Email     string `dynamodbav:"email"`
	Timestamp string `dynamodbav:"timestamp"`
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Message   string `dynamodbav:"message"`
}

func newMessageItem(msg domain.ContactMessage) messageItem {
	return messageItem{
		Email:     msg.Email,
		Timestamp: msg.Timestamp(),
		ID:        msg.ID,
		Name:      msg.Name,
		Message:   msg.Message,
	}
}

func (it messageItem) toDomain() (domain.ContactMessage, error) {
	created, err := parseTimestamp(it.Timestamp)
	if err != nil {
		return domain.ContactMessage{}, err
	}
	return domain.ContactMessage{
		ID:        it.ID,
		Name:      it.Name,
		Email:     it.Email,
		Message:   it.Message,
		CreatedAt: created,
	}, nil
}

// MessageRepository implements the public write port and the admin read port.
type MessageRepository struct {
	api   API
	table string
}

func NewMessageRepository(api API, table string) *MessageRepository {
	return &MessageRepository{api: api, table: table}
}

// Create puts the item, refusing to overwrite an existing email/timestamp pair.
func (r *MessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	if msg == nil {
		return errors.New("message is nil")
	}
	item, err := attributevalue.MarshalMap(newMessageItem(*msg))
	if err != nil {
		return fmt.Errorf("marshal contact message: %w", err)
	}
	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#email) AND attribute_not_exists(#ts)"),
		ExpressionAttributeNames: map[string]string{"#email": "email", "#ts": "timestamp"},
	})
	if err != nil {
		return fmt.Errorf("put contact message: %w", err)
	}
	return nil
}

// Find scans the table and pages newest first. Contact tables stay small enough
// for a full scan; a timestamp GSI is the next step if that stops holding.
func (r *MessageRepository) Find(ctx context.Context, paging adminapp.Paging) ([]domain.ContactMessage, error) {
	paging = paging.Normalize()
	all, err := r.scan(ctx, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := paging.Offset()
	if start < 0 || start >= len(all) {
		return []domain.ContactMessage{}, nil
	}
	end := len(all)
	if paging.Limit < end-start {
		end = start + paging.Limit
	}
	return all[start:end], nil
}

// FindByID scans for the id attribute.
func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	found, err := r.scan(ctx, &dynamodb.ScanInput{
		FilterExpression:          aws.String("#id = :id"),
		ExpressionAttributeNames:  map[string]string{"#id": "id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, adminapp.ErrNotFound
	}
	return &found[0], nil
}

func (r *MessageRepository) scan(ctx context.Context, base *dynamodb.ScanInput) ([]domain.ContactMessage, error) {
	input := &dynamodb.ScanInput{}
	if base != nil {
		*input = *base
	}
	input.TableName = aws.String(r.table)

	var result []domain.ContactMessage
	for {
		out, err := r.api.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		var items []messageItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal contact messages: %w", err)
		}
		for _, it := range items {
			msg, err := it.toDomain()
			if err != nil {
				return nil, err
			}
			result = append(result, msg)
		}
		if len(out.LastEvaluatedKey) == 0 {
			return result, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
