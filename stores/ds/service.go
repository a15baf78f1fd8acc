package ds

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/google/wire"
	"github.com/weegigs/wee-views-go/views"
)

var Live = wire.NewSet(
	DefaultAWSConfig,
	Client,
	LiveViewsTableName,
	NewViewStore,
	wire.Bind(new(views.Store), new(*DynamoViewStore)),
)

var Local = wire.NewSet(
	LocalViewStore,
	wire.Bind(new(views.Store), new(*DynamoViewStore)),
)

var Test = wire.NewSet(
	TestStore,
	wire.Bind(new(views.Store), new(*DynamoViewStore)),
)

func LiveViewsTableName() (ViewsTableName, error) {
	table := os.Getenv("DYNAMODB_VIEWS_TABLE_NAME")
	if len(table) == 0 {
		return "", errors.New("DYNAMODB_VIEWS_TABLE_NAME is not set")
	}

	return ViewsTableName(table), nil
}

func LocalViewsTableName() ViewsTableName {
	return ViewsTableName("wee-views")
}

func TestStore(ctx context.Context) (*DynamoViewStore, func(), error) {
	return DynamoTestStore(ctx)
}

func DefaultAWSConfig(ctx context.Context) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx)
}

func Client(cfg aws.Config) *dynamodb.Client {
	otelaws.AppendMiddlewares(&cfg.APIOptions)
	return dynamodb.NewFromConfig(cfg)
}
