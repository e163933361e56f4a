package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const pagePrefix = "pokemons"

// PutObjectAPI is the subset of *s3.Client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client uploads dataset pages into a single bucket.
type Client struct {
	api    PutObjectAPI
	bucket string
}

func NewClient(cfg aws.Config, bucket string) *Client {
	return NewClientWithAPI(s3.NewFromConfig(cfg), bucket)
}

func NewClientWithAPI(api PutObjectAPI, bucket string) *Client {
	return &Client{api: api, bucket: bucket}
}

// PageKey names the object holding national ids first..last with the given extension.
func PageKey(first, last int, extension string) string {
	return fmt.Sprintf("%s/%d_%d.%s", pagePrefix, first, last, extension)
}

func (c *Client) PutFile(ctx context.Context, reader io.Reader, key, contentType string) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", c.bucket, key, err)
	}
	return nil
}
