package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/pulselab/linkpulse/pkg/types"
)

// SecretsAPI is the subset of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, input *secretsmanager.GetSecretValueInput, opts ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ResolveDSN returns the database DSN, fetching it from Secrets Manager
// when dsnSecretArn is configured. A nil client means the default AWS
// config is used.
func ResolveDSN(ctx context.Context, db types.DatabaseConfig, client SecretsAPI) (string, error) {
	if db.DSNSecretARN == "" {
		return db.DSN, nil
	}

	if client == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return "", fmt.Errorf("loading AWS config: %w", err)
		}
		client = secretsmanager.NewFromConfig(awsCfg)
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(db.DSNSecretARN),
	})
	if err != nil {
		return "", fmt.Errorf("fetching DSN secret: %w", err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("DSN secret %s has no string value", db.DSNSecretARN)
	}

	// The secret is either the raw DSN or a JSON object with a "dsn" key.
	secret := *out.SecretString
	var obj map[string]string
	if err := json.Unmarshal([]byte(secret), &obj); err == nil {
		if dsn, ok := obj["dsn"]; ok && dsn != "" {
			return dsn, nil
		}
		return "", fmt.Errorf("DSN secret %s is JSON but has no dsn key", db.DSNSecretARN)
	}
	return secret, nil
}
