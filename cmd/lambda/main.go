package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"assistant-kit/config"
	"assistant-kit/internal/app"
	lambdaDelivery "assistant-kit/internal/assistant/delivery/lambda"
	"assistant-kit/pkg/paramstore"
)

func main() {
	ctx := context.Background()

	// 1. Configuration, secrets from Parameter Store
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		fmt.Println("Failed to load AWS config: ", err)
		os.Exit(1)
	}
	params, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		fmt.Println("Failed to create parameter store client: ", err)
		os.Exit(1)
	}
	if err := app.LoadSecrets(ctx, cfg, params); err != nil {
		fmt.Println("Failed to load secrets: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := app.NewLogger(cfg)

	// 3. Assistant domain. Invocations of one session may land on different
	// instances, so unknown session ids start a session.
	a, err := app.Build(ctx, cfg, logger, app.Options{AutoCreate: true})
	if err != nil {
		logger.Error(ctx, "Failed to initialize assistant: ", err)
		os.Exit(1)
	}

	// 4. Handler
	h := lambdaDelivery.New(logger, a.Assistant)
	lambda.Start(h.Handle)
}
