package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/spacesedan/echomind/internal/models"
)

// DynamoAPI is the part of *dynamodb.Client the store uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	dynamodb.ScanAPIClient
}

type logItem struct {
	EntryID        string  `dynamodbav:"entry_id"`
	Timestamp      string  `dynamodbav:"timestamp"`
	CreatedAtNanos int64   `dynamodbav:"created_at_nanos"`
	Text           string  `dynamodbav:"text"`
	SentimentLabel string  `dynamodbav:"sentiment_label"`
	SentimentScore float64 `dynamodbav:"sentiment_score"`
}

// DynamoStore keeps the assessment log in a DynamoDB table keyed by
// entry_id. Each Append is a single PutItem, so concurrent writers never
// overwrite each other. Order is restored on read from created_at_nanos.
type DynamoStore struct {
	client DynamoAPI
	table  string
	now    func() time.Time
}

func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table, now: time.Now}
}

func (d *DynamoStore) Append(ctx context.Context, entry models.LogEntry) error {
	if !entry.SentimentLabel.Valid() {
		return fmt.Errorf("invalid label %q: %w", entry.SentimentLabel, models.ErrPersistence)
	}

	item, err := attributevalue.MarshalMap(logItem{
		EntryID:        uuid.NewString(),
		Timestamp:      entry.Timestamp.Format(models.TimestampLayout),
		CreatedAtNanos: d.now().UnixNano(),
		Text:           entry.Text,
		SentimentLabel: string(entry.SentimentLabel),
		SentimentScore: models.RoundTo(entry.SentimentScore, 2),
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] marshal entry: %v: %w", err, models.ErrPersistence)
	}

	if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("[DynamoDB] put entry: %v: %w", err, models.ErrPersistence)
	}

	slog.Info("[DynamoDB] Stored assessment", slog.String("table", d.table))
	return nil
}

func (d *DynamoStore) LoadAll(ctx context.Context) ([]models.LogEntry, error) {
	var items []logItem
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(d.table),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] scan %s: %v: %w", d.table, err, models.ErrPersistence)
		}
		var page []logItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("[DynamoDB] unmarshal page: %v: %w", err, models.ErrPersistence)
		}
		items = append(items, page...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAtNanos < items[j].CreatedAtNanos
	})

	entries := make([]models.LogEntry, 0, len(items))
	for _, item := range items {
		entry, err := decodeRow([]string{
			item.Timestamp,
			item.Text,
			item.SentimentLabel,
			fmt.Sprintf("%.2f", item.SentimentScore),
		})
		if err != nil {
			slog.Warn("[DynamoDB] Skipping malformed item",
				slog.String("entry_id", item.EntryID),
				slog.String("error", err.Error()))
			continue
		}
		entries = append(entries, entry)
	}

	slog.Info("[DynamoDB] Successfully retrieved assessments", slog.Int("count", len(entries)))
	return entries, nil
}
