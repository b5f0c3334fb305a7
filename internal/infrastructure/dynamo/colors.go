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

// ColorRepo provides typed DynamoDB operations for the colors table.
type ColorRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewColorRepo(client *dynamodb.Client, tableName string) *ColorRepo {
	return &ColorRepo{client: client, tableName: tableName}
}

func (r *ColorRepo) Put(ctx context.Context, c *domain.Color) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal color: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ColorRepo) Get(ctx context.Context, colorID string) (*domain.Color, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("color_id", colorID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("color not found: %w", domain.ErrNotFound)
	}
	var c domain.Color
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ColorRepo) Scan(ctx context.Context) ([]domain.Color, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var colors []domain.Color
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &colors); err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *ColorRepo) Update(ctx context.Context, colorID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("color_id", colorID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(color_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("color not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *ColorRepo) Delete(ctx context.Context, colorID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("color_id", colorID),
	})
	return err
}
