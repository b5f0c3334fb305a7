package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/journal-api/internal/domain"
)

// JournalRepo provides typed DynamoDB operations for the journals table.
type JournalRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewJournalRepo(client *dynamodb.Client, tableName string) *JournalRepo {
	return &JournalRepo{client: client, tableName: tableName}
}

func (r *JournalRepo) Put(ctx context.Context, j *domain.Journal) error {
	item, err := attributevalue.MarshalMap(j)
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *JournalRepo) Get(ctx context.Context, journalID string) (*domain.Journal, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("journal_id", journalID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("journal not found: %w", domain.ErrNotFound)
	}
	var j domain.Journal
	if err := attributevalue.UnmarshalMap(out.Item, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JournalRepo) Scan(ctx context.Context) ([]domain.Journal, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var journals []domain.Journal
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

func (r *JournalRepo) Update(ctx context.Context, journalID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("journal_id", journalID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(journal_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("journal not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *JournalRepo) Delete(ctx context.Context, journalID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("journal_id", journalID),
	})
	return err
}
