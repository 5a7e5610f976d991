// Package dynamodb stores contact messages in a DynamoDB table keyed by
// email (partition) and timestamp (sort).
package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// API is the subset of *dynamodb.Client used here.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// NewClient builds a DynamoDB client from an AWS config. endpoint overrides the
// service URL (DynamoDB Local, LocalStack); empty keeps the regional default.
func NewClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// Pinger checks that a table is reachable.
type Pinger struct {
	api   API
	table string
}

func NewPinger(api API, table string) *Pinger {
	return &Pinger{api: api, table: table}
}

// Ping describes the table.
func (p *Pinger) Ping(ctx context.Context) error {
	if _, err := p.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(p.table)}); err != nil {
		return fmt.Errorf("describe table %s: %w", p.table, err)
	}
	return nil
}
