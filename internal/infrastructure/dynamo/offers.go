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

// OfferRepo provides typed DynamoDB operations for the offers table.
type OfferRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOfferRepo(client *dynamodb.Client, tableName string) *OfferRepo {
	return &OfferRepo{client: client, tableName: tableName}
}

func (r *OfferRepo) Put(ctx context.Context, o *domain.Offer) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal offer: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *OfferRepo) Get(ctx context.Context, offerID string) (*domain.Offer, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("offer_id", offerID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("offer not found: %w", domain.ErrNotFound)
	}
	var o domain.Offer
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByWorker returns offers addressed to a worker via the `worker-index` GSI.
func (r *OfferRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.Offer, error) {
	return r.listByGSI(ctx, "worker-index", "worker_id", workerID)
}

// ListByVendor returns offers sent by a vendor via the `vendor-index` GSI.
func (r *OfferRepo) ListByVendor(ctx context.Context, vendorID string) ([]domain.Offer, error) {
	return r.listByGSI(ctx, "vendor-index", "vendor_id", vendorID)
}

func (r *OfferRepo) listByGSI(ctx context.Context, index, attr, value string) ([]domain.Offer, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
	})
	if err != nil {
		return nil, err
	}
	var offers []domain.Offer
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *OfferRepo) Update(ctx context.Context, offerID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("offer_id", offerID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
