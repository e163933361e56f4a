package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BielosX/wombat/pokenat/src/bundle"
	"github.com/BielosX/wombat/pokenat/src/config"
	"github.com/BielosX/wombat/pokenat/src/pokeapi"
	"github.com/BielosX/wombat/pokenat/src/s3"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger

func syncLogger() {
	_ = sugar.Sync()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment(zap.AddStacktrace(zap.FatalLevel))
}

func startLambda(cfg config.Config) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AwsRegion))
	if err != nil {
		sugar.Fatalf("Failed to load SDK config: %s", err)
	}
	client := pokeapi.NewClient(sugar, pokeapi.WithBaseUrl(cfg.PokeApiBaseUrl))
	handlers := &scraper{
		builder:  bundle.NewBuilder(client, sugar),
		s3Client: s3.NewClient(awsCfg, cfg.BucketName),
		sugar:    sugar,
	}
	switch cfg.Handler {
	case "scraper":
		lambda.Start(handlers.handleScraping)
	case "scheduler":
		lambda.Start(handlers.scheduleTasks)
	default:
		sugar.Fatalf("Unknown Handler %s", cfg.Handler)
	}
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %s\n", err)
		os.Exit(2)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %s\n", err)
		os.Exit(2)
	}
	sugar = logger.Sugar()
	defer syncLogger()
	if cfg.LambdaMode() {
		startLambda(cfg)
		return
	}
	if err := runCommand(context.Background(), cfg, os.Args[1:], os.Stdout); err != nil {
		sugar.Errorf("%s", err)
		syncLogger()
		os.Exit(1)
	}
}
