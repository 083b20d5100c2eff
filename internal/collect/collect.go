package collect

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/parquet-go/parquet-go"

	"ovdp/calc/internal/bond"
)

var (
	ErrInvalidRow      = fmt.Errorf("invalid row")
	ErrDataUnavailable = fmt.Errorf("data unavailable")
)

// CollectedRecord is one parsed directory row with any parse failure
// attached.
type CollectedRecord struct {
	Bond *bond.Bond
	Err  error
}

func (c *CollectedRecord) SetError(err error) {
	if c.Err == nil {
		c.Err = err
	}
}

// CollectedRecords is the normalized per-ISIN reference table produced
// by one collector run.
type CollectedRecords struct {
	Records  []*bond.Bond
	Failures []*CollectedRecord
	Source   string
	AsOf     time.Time
}

func (c *CollectedRecords) AddRecord(cr *CollectedRecord) {
	if cr.Err == nil {
		c.Records = append(c.Records, cr.Bond)
	} else {
		c.Failures = append(c.Failures, cr)
	}
}

func NewCollectedRecords(source string, asOf time.Time) *CollectedRecords {
	return &CollectedRecords{
		Source:   source,
		AsOf:     asOf,
		Records:  []*bond.Bond{},
		Failures: []*CollectedRecord{},
	}
}

type Collector interface {
	Collect(ctx context.Context, asOf time.Time) (*CollectedRecords, error)
	Source() string
}

func writeRecords(records []*bond.Bond, output io.Writer) error {
	writer := parquet.NewGenericWriter[*bond.Bond](output)
	defer writer.Close()

	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return nil
}

// StoreToPath writes the collected directory as a date-partitioned
// parquet file under basepath and returns the file path.
func StoreToPath(ctx context.Context, collected *CollectedRecords, basepath string) (string, error) {
	date := collected.AsOf

	path := fmt.Sprintf(
		"%s%c%04d%c%02d%c%02d",
		basepath,
		filepath.Separator,
		date.UTC().Year(),
		filepath.Separator,
		date.UTC().Month(),
		filepath.Separator,
		date.UTC().Day(),
	)

	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return "", err
	}

	outPath := fmt.Sprintf("%s%c%s.parquet", path, filepath.Separator, collected.Source)

	file, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := writeRecords(collected.Records, file); err != nil {
		return "", err
	}

	return outPath, nil
}

type S3Path struct {
	Bucket string
	Prefix string
}

func ParseS3(path string) (*S3Path, error) {
	if !strings.HasPrefix(path, "s3://") {
		return nil, fmt.Errorf("path must start with s3://")
	}

	path = strings.TrimPrefix(path, "s3://")
	parts := strings.SplitN(path, "/", 2)

	bucket := parts[0]

	var prefix string

	if len(parts) > 1 {
		prefix = parts[1]
		prefix = strings.TrimSuffix(prefix, "/")
	} else {
		prefix = ""
	}

	return &S3Path{
		Bucket: bucket,
		Prefix: prefix,
	}, nil
}

// StoreToS3 uploads the collected directory as a date-partitioned
// parquet object and returns the s3:// location.
func StoreToS3(ctx context.Context, collected *CollectedRecords, s3Client *s3.Client, dst *S3Path) (string, error) {
	tmp, err := os.CreateTemp("", "ovdp-*.parquet")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer tmp.Close()
	defer os.Remove(tmp.Name())

	if err := writeRecords(collected.Records, tmp); err != nil {
		return "", err
	}

	if _, err := tmp.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to seek to start of file: %w", err)
	}

	date := collected.AsOf

	key := fmt.Sprintf(
		"%04d/%02d/%02d/%s.parquet",
		date.UTC().Year(),
		date.UTC().Month(),
		date.UTC().Day(),
		collected.Source,
	)

	if dst.Prefix != "" {
		key = fmt.Sprintf("%s/%s", dst.Prefix, key)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(dst.Bucket),
		Key:    aws.String(key),
		Body:   tmp,
	}

	if _, err := s3Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file to s3://%s/%s: %w", dst.Bucket, key, err)
	}

	outPath := fmt.Sprintf("s3://%s/%s", dst.Bucket, key)

	return outPath, nil
}
