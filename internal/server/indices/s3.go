package indices

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	sc "github.com/dmitrijs2005/indexkeeper/internal/server/config"
)

// deleteBatchSize is the S3 DeleteObjects request limit.
const deleteBatchSize = 1000

var loadDefaultAWSConfig = config.LoadDefaultConfig

// s3Client is the subset of the S3 API the store uses. *s3.Client
// satisfies it.
type s3Client interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Store keeps each index as a key prefix inside one bucket: an index
// named "logs_0" owns every object under "logs_0/".
type S3Store struct {
	client s3Client
	bucket string
}

// NewS3Store builds a store against the object storage endpoint configured
// in cfg.
func NewS3Store(ctx context.Context, cfg *sc.Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: cfg.S3Bucket}, nil
}

// List enumerates index names under the given prefix. Indices appear as
// first-level "directories", so a delimiter listing of "logs_" yields
// the common prefixes "logs_0/", "logs_1/" and so on.
func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	var result []string
	var token *string

	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix + "_"),
			Delimiter:         aws.String("/"),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list indices %q: %w", prefix, err)
		}

		for _, cp := range out.CommonPrefixes {
			name := aws.ToString(cp.Prefix)
			result = append(result, name[:len(name)-1])
		}

		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}

	return result, nil
}

// Delete removes every object belonging to the index, in batches.
func (s *S3Store) Delete(ctx context.Context, index string) error {
	var token *string

	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(index + "/"),
			ContinuationToken: token,
		})
		if err != nil {
			return fmt.Errorf("list index objects %q: %w", index, err)
		}

		for start := 0; start < len(out.Contents); start += deleteBatchSize {
			end := min(start+deleteBatchSize, len(out.Contents))

			objects := make([]types.ObjectIdentifier, 0, end-start)
			for _, obj := range out.Contents[start:end] {
				objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
			}

			_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: aws.String(s.bucket),
				Delete: &types.Delete{
					Objects: objects,
					Quiet:   aws.Bool(true),
				},
			})
			if err != nil {
				return fmt.Errorf("delete index objects %q: %w", index, err)
			}
		}

		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}

	return nil
}
