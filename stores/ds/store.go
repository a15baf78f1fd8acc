package ds

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	pkgerrors "github.com/pkg/errors"

	"github.com/weegigs/wee-views-go/views"
)

var (
	_ views.ConditionalStore = (*DynamoViewStore)(nil)
	_ views.Incrementer      = (*DynamoViewStore)(nil)
)

type DynamoViewStore struct {
	db    *dynamodb.Client
	table string
}

type ViewsTableName string

func (name ViewsTableName) String() string {
	return string(name)
}

func NewViewStore(db *dynamodb.Client, table ViewsTableName) *DynamoViewStore {
	return &DynamoViewStore{db: db, table: string(table)}
}

func (ds *DynamoViewStore) Table() ViewsTableName {
	return ViewsTableName(ds.table)
}

func (ds *DynamoViewStore) Get(ctx context.Context, id string) (views.Record, error) {
	key, err := keyOf(id)
	if err != nil {
		return views.Record{}, err
	}

	out, err := ds.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ds.table),
		Key:       key,
	})
	if err != nil {
		return views.Record{}, err
	}

	if len(out.Item) == 0 {
		return views.Record{}, views.ErrNotFound
	}

	return decodeRecord(out.Item)
}

func (ds *DynamoViewStore) Put(ctx context.Context, record views.Record) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return err
	}

	_, err = ds.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ds.table),
		Item:      item,
	})

	return err
}

func (ds *DynamoViewStore) PutIf(ctx context.Context, record views.Record, expected int64) error {
	condition := expression.Name("views").Equal(expression.Value(expected))

	err := ds.conditionalPut(ctx, record, condition)
	if isConditionalCheckFailure(err) {
		return views.ErrConflict
	}

	return err
}

// Seed writes record only when no record exists for its id.
func (ds *DynamoViewStore) Seed(ctx context.Context, record views.Record) error {
	condition := expression.AttributeNotExists(expression.Name("id"))

	err := ds.conditionalPut(ctx, record, condition)
	if isConditionalCheckFailure(err) {
		return nil
	}

	return err
}

func (ds *DynamoViewStore) Add(ctx context.Context, id string, amount int64) (int64, error) {
	key, err := keyOf(id)
	if err != nil {
		return 0, err
	}

	expr, err := expression.NewBuilder().
		WithUpdate(expression.Add(expression.Name("views"), expression.Value(amount))).
		WithCondition(expression.AttributeExists(expression.Name("id"))).
		Build()
	if err != nil {
		return 0, err
	}

	out, err := ds.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(ds.table),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if isConditionalCheckFailure(err) {
		return 0, views.ErrNotFound
	}

	if err != nil {
		return 0, err
	}

	return decodeViews(id, out.Attributes)
}

// internal

type recordKey struct {
	ID string `dynamodbav:"id"`
}

func keyOf(id string) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(recordKey{ID: id})
}

func (ds *DynamoViewStore) conditionalPut(ctx context.Context, record views.Record, condition expression.ConditionBuilder) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return err
	}

	expr, err := expression.NewBuilder().WithCondition(condition).Build()
	if err != nil {
		return err
	}

	_, err = ds.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(ds.table),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	return err
}

// decodeRecord reads views from its number text so fractional values are
// truncated rather than rejected.
func decodeRecord(item map[string]types.AttributeValue) (views.Record, error) {
	var key recordKey
	if err := attributevalue.UnmarshalMap(item, &key); err != nil {
		return views.Record{}, pkgerrors.Wrap(views.ErrMalformed, err.Error())
	}

	count, err := decodeViews(key.ID, item)
	if err != nil {
		return views.Record{}, err
	}

	return views.Record{ID: key.ID, Views: count}, nil
}

func decodeViews(id string, item map[string]types.AttributeValue) (int64, error) {
	number, ok := item["views"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, pkgerrors.Wrapf(views.ErrMalformed, "record %s has no numeric views attribute", id)
	}

	return views.DecodeViews(number.Value)
}

func isConditionalCheckFailure(err error) bool {
	if err == nil {
		return false
	}

	var failed *types.ConditionalCheckFailedException
	if errors.As(err, &failed) {
		return true
	}

	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException"
}
