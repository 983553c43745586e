package resources

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Client is the subset of the S3 API used to fetch embedding files.
type S3Client interface {
	GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error)
}

var s3ClientFactory = func() (S3Client, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

func isS3Uri(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}

// parseS3Uri splits `s3://bucket/prefix` joined with `rsrc` into a bucket
// and an object key.
func parseS3Uri(uri string, rsrc string) (bucket string, key string,
	err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", errors.New(fmt.Sprintf("invalid S3 uri `%s`", uri))
	}
	prefix := strings.Trim(u.Path, "/")
	if prefix == "" {
		key = rsrc
	} else {
		key = prefix + "/" + rsrc
	}
	return u.Host, key, nil
}

// FetchS3
// Fetch a resource stored under an `s3://bucket/prefix` uri.
func FetchS3(uri string, rsrc string) (io.ReadCloser, error) {
	bucket, key, err := parseS3Uri(uri, rsrc)
	if err != nil {
		return nil, err
	}
	client, err := s3ClientFactory()
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// SizeS3
// Get the size of a resource stored under an `s3://bucket/prefix` uri.
func SizeS3(uri string, rsrc string) (uint, error) {
	bucket, key, err := parseS3Uri(uri, rsrc)
	if err != nil {
		return 0, err
	}
	client, err := s3ClientFactory()
	if err != nil {
		return 0, err
	}
	out, err := client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, err
	}
	return uint(aws.Int64Value(out.ContentLength)), nil
}
