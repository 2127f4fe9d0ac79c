// Package dynamodb stores conversation logs in a single DynamoDB table.
//
// Item layout: PK = "SESSION#<id>", SK = "TURN#<timestamp>#<seq>", plus role,
// content, createdAt and a ttl attribute for table-level expiry.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"assistant-kit/internal/conversation"
	"assistant-kit/internal/model"
)

const (
	pkPrefix = "SESSION#"
	skPrefix = "TURN#"

	// Fixed-width nanosecond layout so sort keys order lexicographically.
	skTimeLayout = "2006-01-02T15:04:05.000000000Z"

	DefaultTTL     = 24 * time.Hour
	batchWriteSize = 25

	// DynamoDB caps a single transaction at 100 actions.
	maxTransactItems = 100
)

var ErrTooManyTurns = fmt.Errorf("dynamodb conversation log: more than %d turns in one append", maxTransactItems)

// dynamodbAPI is the minimal DynamoDB interface required by the log.
// *dynamodb.Client from aws-sdk-go-v2 satisfies this interface.
type dynamodbAPI interface {
	TransactWriteItems(ctx context.Context, in *awsdynamodb.TransactWriteItemsInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.TransactWriteItemsOutput, error)
	Query(ctx context.Context, in *awsdynamodb.QueryInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error)
	BatchWriteItem(ctx context.Context, in *awsdynamodb.BatchWriteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.BatchWriteItemOutput, error)
}

type implRepository struct {
	api       dynamodbAPI
	tableName string
	ttl       time.Duration
	seq       atomic.Uint64
	now       func() time.Time
}

var _ conversation.Log = (*implRepository)(nil)

// New creates a DynamoDB-backed log.
func New(api dynamodbAPI, tableName string, ttl time.Duration) (conversation.Log, error) {
	if api == nil {
		return nil, errors.New("dynamodb conversation log: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("dynamodb conversation log: table name must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &implRepository{
		api:       api,
		tableName: tableName,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

func sessionPK(sessionID string) string {
	return pkPrefix + sessionID
}

func (r *implRepository) turnSK(ts time.Time) string {
	seq := r.seq.Add(1) % 1_000_000
	return fmt.Sprintf("%s%s#%06d", skPrefix, ts.UTC().Format(skTimeLayout), seq)
}

// Append writes all turns in one transaction, so either every turn is stored
// or none is. Turns keep their order because each takes a strictly later
// sort key.
func (r *implRepository) Append(ctx context.Context, sessionID string, turns ...model.Turn) error {
	if err := conversation.Validate(sessionID, turns); err != nil {
		return err
	}
	if len(turns) == 0 {
		return nil
	}
	if len(turns) > maxTransactItems {
		return ErrTooManyTurns
	}

	now := r.now()
	items := make([]types.TransactWriteItem, 0, len(turns))
	for _, t := range turns {
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName: aws.String(r.tableName),
			Item: map[string]types.AttributeValue{
				"PK":        &types.AttributeValueMemberS{Value: sessionPK(sessionID)},
				"SK":        &types.AttributeValueMemberS{Value: r.turnSK(now)},
				"role":      &types.AttributeValueMemberS{Value: string(t.Role)},
				"content":   &types.AttributeValueMemberS{Value: t.Content},
				"createdAt": &types.AttributeValueMemberS{Value: createdAt.UTC().Format(time.RFC3339Nano)},
				"ttl":       &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Add(r.ttl).Unix(), 10)},
			},
		}})
	}

	if _, err := r.api.TransactWriteItems(ctx, &awsdynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		return fmt.Errorf("dynamodb conversation log: append: %w", err)
	}
	return nil
}

func (r *implRepository) query(ctx context.Context, sessionID string, fn func(item map[string]types.AttributeValue) error) error {
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.api.Query(ctx, &awsdynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: sessionPK(sessionID)},
				":prefix": &types.AttributeValueMemberS{Value: skPrefix},
			},
			ScanIndexForward:  aws.Bool(true),
			ConsistentRead:    aws.Bool(true),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return err
		}
		for _, item := range out.Items {
			if err := fn(item); err != nil {
				return err
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *implRepository) ReadAll(ctx context.Context, sessionID string) ([]model.Turn, error) {
	if err := conversation.Validate(sessionID, nil); err != nil {
		return nil, err
	}

	turns := []model.Turn{}
	err := r.query(ctx, sessionID, func(item map[string]types.AttributeValue) error {
		t, err := itemToTurn(item)
		if err != nil {
			return err
		}
		turns = append(turns, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb conversation log: read: %w", err)
	}
	return turns, nil
}

func (r *implRepository) Clear(ctx context.Context, sessionID string) error {
	if err := conversation.Validate(sessionID, nil); err != nil {
		return err
	}

	var deletes []types.WriteRequest
	err := r.query(ctx, sessionID, func(item map[string]types.AttributeValue) error {
		deletes = append(deletes, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
			Key: map[string]types.AttributeValue{"PK": item["PK"], "SK": item["SK"]},
		}})
		return nil
	})
	if err != nil {
		return fmt.Errorf("dynamodb conversation log: clear: %w", err)
	}

	for start := 0; start < len(deletes); start += batchWriteSize {
		end := min(start+batchWriteSize, len(deletes))
		pending := map[string][]types.WriteRequest{r.tableName: deletes[start:end]}
		for len(pending) > 0 {
			out, err := r.api.BatchWriteItem(ctx, &awsdynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return fmt.Errorf("dynamodb conversation log: clear: %w", err)
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

func itemToTurn(item map[string]types.AttributeValue) (model.Turn, error) {
	role, err := strAttr(item, "role")
	if err != nil {
		return model.Turn{}, err
	}
	content, err := strAttr(item, "content")
	if err != nil {
		return model.Turn{}, err
	}

	t := model.Turn{Role: model.Role(role), Content: content}
	if raw, err := strAttr(item, "createdAt"); err == nil {
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, raw)
	}
	return t, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("attribute %q is not a string", key)
	}
	return s.Value, nil
}
