package ds

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const localEndpoint = "http://localhost:8000"

// LocalViewStore connects to DynamoDB Local, by default on localhost:8000 or
// at DYNAMODB_ENDPOINT, and provisions the views table there.
func LocalViewStore(ctx context.Context) (*DynamoViewStore, error) {
	cfg, err := staticConfig(ctx, "us-east-1")
	if err != nil {
		return nil, err
	}

	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if len(endpoint) == 0 {
		endpoint = localEndpoint
	}

	return Provision(ctx, endpointClient(cfg, endpoint), LocalViewsTableName())
}

func staticConfig(ctx context.Context, region string) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID: "dummy", SecretAccessKey: "dummy", SessionToken: "dummy",
				Source: "Hard-coded credentials; values are irrelevant for local DynamoDB",
			},
		}))
}

func endpointClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		options.BaseEndpoint = aws.String(endpoint)
	})
}
