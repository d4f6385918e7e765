package db

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"

	"github.com/rkowalik/tabload/pkg/tabload"
)

// buildRDSAuthToken acquires an IAM authentication token for an RDS endpoint
// using the default AWS credential chain (environment variables, config
// files, IAM roles, etc.). endpoint is host:port, username is the database
// user configured for IAM authentication.
func buildRDSAuthToken(ctx context.Context, endpoint, region, username string) (string, error) {
	if region == "" {
		return "", fmt.Errorf("aws_iam auth: %w: AWS region is not set", tabload.ErrConfigInvalid)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return "", fmt.Errorf("aws_iam auth: load AWS config: %w", err)
	}

	token, err := auth.BuildAuthToken(ctx, endpoint, region, username, cfg.Credentials)
	if err != nil {
		return "", fmt.Errorf("aws_iam auth: build RDS auth token for %s: %w", endpoint, err)
	}

	return token, nil
}
