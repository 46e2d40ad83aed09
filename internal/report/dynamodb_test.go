package report

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDDBClient struct {
	lastInput *dynamodb.PutItemInput
	err       error
}

func (m *mockDDBClient) PutItem(_ context.Context, input *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.lastInput = input
	return &dynamodb.PutItemOutput{}, m.err
}

func TestDynamoDBSink_Write(t *testing.T) {
	mock := &mockDDBClient{}
	sink, err := NewDynamoDBSink("linkpulse-kpis", WithDynamoDBClient(mock))
	require.NoError(t, err)

	assert.Equal(t, "dynamodb", sink.Name())

	require.NoError(t, sink.Write(context.Background(), sampleReport()))

	require.NotNil(t, mock.lastInput)
	assert.Equal(t, "linkpulse-kpis", *mock.lastInput.TableName)

	pk := mock.lastInput.Item["PK"].(*ddbtypes.AttributeValueMemberS)
	sk := mock.lastInput.Item["SK"].(*ddbtypes.AttributeValueMemberS)
	assert.Equal(t, "REPORT#volume_summary", pk.Value)
	assert.Equal(t, "RUN#run-1", sk.Value)
	assert.Contains(t, mock.lastInput.Item, "rows")
}

func TestDynamoDBSink_MissingTable(t *testing.T) {
	_, err := NewDynamoDBSink("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "table name required")
}
