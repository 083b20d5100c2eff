package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/pbnjay/grate/simple"
	_ "github.com/pbnjay/grate/xls"
	_ "github.com/pbnjay/grate/xlsx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ovdp/calc/internal/collect"
)

func getAwsConfig(ctx context.Context, profile string) (aws.Config, error) {
	if profile == "default" {
		return config.LoadDefaultConfig(ctx)
	}
	return config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
}

func storeToS3(
	ctx context.Context,
	collected *collect.CollectedRecords,
	profile string,
	s3Path *collect.S3Path,
) (string, error) {
	cfg, err := getAwsConfig(ctx, profile)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %v", err)
	}

	s3Client := s3.NewFromConfig(cfg)

	outPath, err := collect.StoreToS3(ctx, collected, s3Client, s3Path)
	if err != nil {
		return "", fmt.Errorf("failed to store data to S3: %v", err)
	}

	return outPath, nil
}

func main() {
	ctx := context.Background()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	profile := flag.String("profile", "default", "the AWS profile to use")
	source := flag.String("source", "nbu", "the data source to collect from: nbu or minfin")
	helpFlag := flag.Bool("help", false, "print this help message")
	flag.Parse()
	args := flag.Args()

	if len(args) != 1 || *helpFlag {
		fmt.Printf("Usage: %s <flags> <destination>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}

	dst := args[0]

	var collector collect.Collector
	switch *source {
	case "nbu":
		collector = collect.NewNBUCollector(log.Logger)
	case "minfin":
		collector = collect.NewMinfinUACollector(log.Logger)
	default:
		fmt.Printf("Error: unknown source %q\n", *source)
		os.Exit(1)
	}

	collected, err := collector.Collect(ctx, time.Now())
	if err != nil {
		switch err {
		case collect.ErrDataUnavailable:
			log.Error().Msg("data unavailable")
		default:
			log.Error().Err(err).Msg("failed to collect data")
		}
		os.Exit(1)
	}

	log.Info().
		Str("source", collector.Source()).
		Int("records", len(collected.Records)).
		Int("failures", len(collected.Failures)).
		Msg("collected bond directory")

	var outPath string
	if s3Path, _ := collect.ParseS3(dst); s3Path != nil {
		outPath, err = storeToS3(ctx, collected, *profile, s3Path)
	} else {
		outPath, err = collect.StoreToPath(ctx, collected, dst)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to store data")
		os.Exit(1)
	}

	log.Info().Str("path", outPath).Msg("stored bond directory")
}
