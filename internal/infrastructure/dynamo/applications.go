package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sreejaboddula/kaamsetu/internal/domain"
)

// ApplicationRepo provides typed DynamoDB operations for the applications table.
type ApplicationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewApplicationRepo(client *dynamodb.Client, tableName string) *ApplicationRepo {
	return &ApplicationRepo{client: client, tableName: tableName}
}

func (r *ApplicationRepo) Put(ctx context.Context, a *domain.Application) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByWorker returns a worker's applications via the `worker-index` GSI.
func (r *ApplicationRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.Application, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("worker-index"),
		KeyConditionExpression: aws.String("worker_id = :w"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":w": &types.AttributeValueMemberS{Value: workerID},
		},
	})
	if err != nil {
		return nil, err
	}
	var apps []domain.Application
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ExistsForJob reports whether the worker already applied to the job.
func (r *ApplicationRepo) ExistsForJob(ctx context.Context, workerID, jobID string) (bool, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("worker-index"),
		KeyConditionExpression: aws.String("worker_id = :w"),
		FilterExpression:       aws.String("job_id = :j"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":w": &types.AttributeValueMemberS{Value: workerID},
			":j": &types.AttributeValueMemberS{Value: jobID},
		},
	})
	if err != nil {
		return false, err
	}
	return len(out.Items) > 0, nil
}
