package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sreejaboddula/kaamsetu/internal/domain"
)

// WorkerRepo provides typed DynamoDB operations for the workers table.
type WorkerRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewWorkerRepo(client *dynamodb.Client, tableName string) *WorkerRepo {
	return &WorkerRepo{client: client, tableName: tableName}
}

func (r *WorkerRepo) Put(ctx context.Context, w *domain.Worker) error {
	item, err := attributevalue.MarshalMap(w)
	if err != nil {
		return fmt.Errorf("marshal worker: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *WorkerRepo) Get(ctx context.Context, workerID string) (*domain.Worker, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("worker_id", workerID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("worker not found: %w", domain.ErrNotFound)
	}
	var w domain.Worker
	if err := attributevalue.UnmarshalMap(out.Item, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// GetByPhone looks up a worker via the `phone-index` GSI.
func (r *WorkerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Worker, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("phone-index"),
		KeyConditionExpression:    aws.String("#p = :v"),
		ExpressionAttributeNames:  map[string]string{"#p": "phone"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: phone}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("worker not found: %w", domain.ErrNotFound)
	}
	var w domain.Worker
	if err := attributevalue.UnmarshalMap(out.Items[0], &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ListApprovedByCategory returns enabled, approved workers in a category via
// the `category-index` GSI.
func (r *WorkerRepo) ListApprovedByCategory(ctx context.Context, category string) ([]domain.Worker, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String("category-index"),
		KeyConditionExpression:   aws.String("#c = :c"),
		FilterExpression:         aws.String("#s = :s AND enable = :t"),
		ExpressionAttributeNames: map[string]string{"#c": "category", "#s": fieldStatus},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: category},
			":s": &types.AttributeValueMemberS{Value: domain.WorkerStatusApproved},
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}
	var workers []domain.Worker
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *WorkerRepo) Update(ctx context.Context, workerID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("worker_id", workerID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
