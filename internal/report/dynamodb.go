package report

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/pulselab/linkpulse/pkg/types"
)

// DDBAPI is the subset of the DynamoDB client used by DynamoDBSink.
type DDBAPI interface {
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoDBSink stores one item per report per run.
// PK = report name, SK = RUN#{runID}, so the latest snapshot per report is
// a single-key query for dashboard readers.
type DynamoDBSink struct {
	client    DDBAPI
	tableName string
}

// DynamoDBSinkOption configures a DynamoDBSink.
type DynamoDBSinkOption func(*DynamoDBSink)

// WithDynamoDBClient sets a custom DynamoDB client (useful for testing).
func WithDynamoDBClient(c DDBAPI) DynamoDBSinkOption {
	return func(s *DynamoDBSink) { s.client = c }
}

// NewDynamoDBSink creates a new DynamoDB report sink.
func NewDynamoDBSink(tableName string, opts ...DynamoDBSinkOption) (*DynamoDBSink, error) {
	if tableName == "" {
		return nil, fmt.Errorf("DynamoDB table name required")
	}
	s := &DynamoDBSink{tableName: tableName}
	for _, o := range opts {
		o(s)
	}
	if s.client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		s.client = dynamodb.NewFromConfig(cfg)
	}
	return s, nil
}

// Name returns the sink identifier.
func (s *DynamoDBSink) Name() string { return "dynamodb" }

// Write puts the report as one item.
func (s *DynamoDBSink) Write(ctx context.Context, report types.Report) error {
	rowsAV, err := attributevalue.Marshal(report.Rows)
	if err != nil {
		return fmt.Errorf("marshaling report rows: %w", err)
	}

	runID := report.RunID
	if runID == "" {
		runID = "adhoc"
	}
	generatedAt := report.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	item := map[string]ddbtypes.AttributeValue{
		"PK":          &ddbtypes.AttributeValueMemberS{Value: "REPORT#" + report.Name},
		"SK":          &ddbtypes.AttributeValueMemberS{Value: "RUN#" + runID},
		"name":        &ddbtypes.AttributeValueMemberS{Value: report.Name},
		"runId":       &ddbtypes.AttributeValueMemberS{Value: runID},
		"generatedAt": &ddbtypes.AttributeValueMemberS{Value: generatedAt.UTC().Format(time.RFC3339)},
		"rows":        rowsAV,
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("putting report to DynamoDB: %w", err)
	}
	return nil
}
