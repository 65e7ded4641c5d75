package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sreejaboddula/kaamsetu/internal/domain"
)

// PhoneVerificationRepo manages OTP records keyed by phone number.
// PK: phone. Expired records are reaped by the DynamoDB TTL on expires_at.
type PhoneVerificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPhoneVerificationRepo(client *dynamodb.Client, tableName string) *PhoneVerificationRepo {
	return &PhoneVerificationRepo{client: client, tableName: tableName}
}

func (r *PhoneVerificationRepo) Put(ctx context.Context, v *domain.PhoneVerification) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal phone verification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PhoneVerificationRepo) Get(ctx context.Context, phone string) (*domain.PhoneVerification, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("phone", phone),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("phone verification not found: %w", domain.ErrNotFound)
	}
	var v domain.PhoneVerification
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PhoneVerificationRepo) Update(ctx context.Context, phone string, updates map[string]interface{}) error {
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("phone", phone),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *PhoneVerificationRepo) Delete(ctx context.Context, phone string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("phone", phone),
	})
	return err
}
