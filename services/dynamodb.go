// ABOUTME: DynamoDB-backed assessment store using aws-sdk-go
// ABOUTME: Items are flat string attributes keyed by server_name

package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/markalston/migration-assessor/models"
)

// PartitionKey is the table's hash key attribute.
const PartitionKey = "server_name"

// DynamoStore stores assessments in a DynamoDB table.
type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// NewDynamoStore creates a store for the given table
func NewDynamoStore(client dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// Table returns the configured table name
func (d *DynamoStore) Table() string {
	return d.table
}

func (d *DynamoStore) PutItem(ctx context.Context, item models.MigrationAssessment) error {
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item %q: %w", item.ServerName, err)
	}

	_, err = d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item %q into %s: %w", item.ServerName, d.table, err)
	}
	return nil
}

func (d *DynamoStore) GetItem(ctx context.Context, serverName string) (*models.MigrationAssessment, bool, error) {
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			PartitionKey: {S: aws.String(serverName)},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get item %q from %s: %w", serverName, d.table, err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}

	var item models.MigrationAssessment
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal item %q: %w", serverName, err)
	}
	return &item, true, nil
}
