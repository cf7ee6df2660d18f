package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/echomind/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	items   []map[string]types.AttributeValue
	putErr  error
	scanErr error
	tables  []string
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.tables = append(f.tables, *in.TableName)
	f.items = append(f.items, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// Scan returns items newest first to prove LoadAll restores insertion order.
func (f *fakeDynamo) Scan(_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	out := make([]map[string]types.AttributeValue, 0, len(f.items))
	for i := len(f.items) - 1; i >= 0; i-- {
		out = append(out, f.items[i])
	}
	return &dynamodb.ScanOutput{Items: out}, nil
}

func newDynamoStore(client *fakeDynamo) *DynamoStore {
	s := NewDynamoStore(client, "AssessmentLogs")
	var tick int64
	s.now = func() time.Time {
		tick++
		return time.Unix(0, tick)
	}
	return s
}

func TestDynamoStore_RoundTrip(t *testing.T) {
	client := &fakeDynamo{}
	s := newDynamoStore(client)
	ctx := context.Background()

	written := []models.LogEntry{
		entryAt(1, "first", models.LabelPositive, 80),
		entryAt(2, "second, with comma", models.LabelNegative, 66.67),
		entryAt(3, "third", models.LabelNeutral, 50),
	}
	for _, e := range written {
		require.NoError(t, s.Append(ctx, e))
	}

	assert.Equal(t, []string{"AssessmentLogs", "AssessmentLogs", "AssessmentLogs"}, client.tables)
	for _, item := range client.items {
		assert.Contains(t, item, "entry_id")
	}

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, written, loaded)
}

func TestDynamoStore_EmptyTable(t *testing.T) {
	entries, err := newDynamoStore(&fakeDynamo{}).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDynamoStore_Errors(t *testing.T) {
	ctx := context.Background()

	err := newDynamoStore(&fakeDynamo{}).Append(ctx, entryAt(1, "x", models.Label("MEH"), 1))
	assert.ErrorIs(t, err, models.ErrPersistence)

	err = newDynamoStore(&fakeDynamo{putErr: errors.New("throttled")}).
		Append(ctx, entryAt(1, "x", models.LabelPositive, 1))
	assert.ErrorIs(t, err, models.ErrPersistence)

	_, err = newDynamoStore(&fakeDynamo{scanErr: errors.New("no table")}).LoadAll(ctx)
	assert.ErrorIs(t, err, models.ErrPersistence)
}

func TestDynamoStore_SkipsMalformedItems(t *testing.T) {
	client := &fakeDynamo{}
	s := newDynamoStore(client)
	require.NoError(t, s.Append(context.Background(), entryAt(1, "ok", models.LabelPositive, 10)))
	client.items = append(client.items, map[string]types.AttributeValue{
		"entry_id":         &types.AttributeValueMemberS{Value: "broken"},
		"timestamp":        &types.AttributeValueMemberS{Value: "not a time"},
		"created_at_nanos": &types.AttributeValueMemberN{Value: "99"},
		"sentiment_label":  &types.AttributeValueMemberS{Value: "POSITIVE"},
		"sentiment_score":  &types.AttributeValueMemberN{Value: "10"},
	})

	entries, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].Text)
}
