package report

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3Client struct {
	lastInput *s3.PutObjectInput
	err       error
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.lastInput = input
	return &s3.PutObjectOutput{}, m.err
}

func TestS3Sink_Write(t *testing.T) {
	mock := &mockS3Client{}
	sink, err := NewS3Sink("kpi-bucket", "kpis", WithS3Client(mock))
	require.NoError(t, err)

	assert.Equal(t, "s3", sink.Name())

	err = sink.Write(context.Background(), sampleReport())
	require.NoError(t, err)

	require.NotNil(t, mock.lastInput)
	assert.Equal(t, "kpi-bucket", *mock.lastInput.Bucket)
	assert.Equal(t, "kpis/2026-08-30/run-1/volume_summary.json", *mock.lastInput.Key)
	assert.Equal(t, "application/json", *mock.lastInput.ContentType)
}

func TestS3Sink_MissingBucket(t *testing.T) {
	_, err := NewS3Sink("", "kpis")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bucket name required")
}

func TestS3Sink_MissingRunID(t *testing.T) {
	mock := &mockS3Client{}
	sink, err := NewS3Sink("kpi-bucket", "", WithS3Client(mock))
	require.NoError(t, err)

	rep := sampleReport()
	rep.RunID = ""
	require.NoError(t, sink.Write(context.Background(), rep))
	assert.Equal(t, "2026-08-30/adhoc/volume_summary.json", *mock.lastInput.Key)
}
