package awsutil

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/lowaltitude/ladiprep/envutil"
)

// the LADI public bucket lives in us-west-2, so that is the default
// region for bucket location lookups
var defaultRegion = envutil.GetenvDefault("AWS_REGION", "us-west-2")

// Region returns the region used for bucket location lookups.
func Region() string {
	return defaultRegion
}

// IsS3URI returns true if the path is an s3 uri.
func IsS3URI(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// ValidateURI checks whether the given uri points to S3.
func ValidateURI(uri string) (*url.URL, error) {
	s3url, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	if s3url.Scheme != "s3" {
		return nil, fmt.Errorf("url is not an s3 path: %s", s3url.String())
	}
	return s3url, nil
}

// NewS3 creates an s3 client.
func NewS3(region string) (*s3.S3, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}

	return s3.New(sess, aws.NewConfig().WithRegion(region)), nil
}

// NewS3Reader returns an io.ReadCloser that will read the contents
// of the file pointed to by the uri. URI will be of the form
// s3://bucket-name/path/to/file
func NewS3Reader(uri string) (io.ReadCloser, error) {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return nil, err
	}
	return objectReader(s3url)
}

func objectReader(uri *url.URL) (io.ReadCloser, error) {
	region, err := objectRegion(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to determine region: %s", err)
	}

	client, err := NewS3(region)
	if err != nil {
		return nil, err
	}

	key := strings.TrimPrefix(uri.Path, "/")
	out, err := client.GetObject(&s3.GetObjectInput{
		Bucket: &uri.Host,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func objectRegion(uri *url.URL) (string, error) {
	client, err := NewS3(defaultRegion)
	if err != nil {
		return "", err
	}

	// Discover the region that this bucket is located in
	out, err := client.GetBucketLocation(&s3.GetBucketLocationInput{
		Bucket: &uri.Host,
	})
	if err != nil {
		return "", err
	}

	if out.LocationConstraint == nil {
		return "us-east-1", nil
	}
	return *out.LocationConstraint, nil
}

// NamedWriteCloser is a file-like object extending io.WriteCloser with a string Name() similar to os.File.Name()
type NamedWriteCloser interface {
	io.WriteCloser
	Name() string
}

type bufferedS3Writer struct {
	f     *os.File
	s3uri *url.URL
}

// Write writes to disk
func (w bufferedS3Writer) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

// Close flushes to disk, copies the written data to s3, and closes the file
func (w bufferedS3Writer) Close() error {
	defer os.Remove(w.f.Name()) // delete the buffer file from disk
	defer w.f.Close()           // after closing the buffer file handle

	w.f.Sync()
	if _, err := w.f.Seek(0, 0); err != nil {
		return err
	}

	region, err := objectRegion(w.s3uri)
	if err != nil {
		return fmt.Errorf("unable to determine region: %s", err)
	}

	client, err := NewS3(region)
	if err != nil {
		return err
	}

	key := strings.TrimPrefix(w.s3uri.Path, "/")
	_, err = client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(w.s3uri.Host),
		Key:    aws.String(key),
		Body:   w.f,
	})
	return err
}

func (w bufferedS3Writer) Name() string {
	return w.s3uri.String()
}

// NewBufferedS3Writer returns an io.WriteCloser that will write
// to disk and upload to S3 on Close
func NewBufferedS3Writer(uri string) (NamedWriteCloser, error) {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return nil, err
	}

	f, err := ioutil.TempFile("", "s3buffer")
	if err != nil {
		return nil, err
	}
	return bufferedS3Writer{f: f, s3uri: s3url}, nil
}

// NewBufferedS3WriterWithTmp returns an io.WriteCloser that will write
// to disk and upload to S3 on Close using the specified tmp dir to store
// the intermediate files.
func NewBufferedS3WriterWithTmp(tmpDir, uri string) (NamedWriteCloser, error) {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(tmpDir, os.ModePerm); err != nil {
		return nil, err
	}

	f, err := ioutil.TempFile(tmpDir, "s3buffer")
	if err != nil {
		return nil, err
	}
	return bufferedS3Writer{f: f, s3uri: s3url}, nil
}

// S3ListObjects lists the objects in an s3 bucket with a given prefix.
// NOTE: we ignore objects with size 0 since they typically correspond
// to directories and are thus not fetchable.
func S3ListObjects(region, bucket, prefix string) ([]string, error) {
	client, err := NewS3(region)
	if err != nil {
		return nil, err
	}

	params := &s3.ListObjectsInput{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}

	var keys []string
	err = client.ListObjectsPages(params, func(p *s3.ListObjectsOutput, lastPage bool) bool {
		for _, obj := range p.Contents {
			if *obj.Size == 0 {
				// skip size zero objects, these correspond to directories
				continue
			}
			keys = append(keys, *obj.Key)
		}
		return true
	})

	if err != nil {
		return nil, fmt.Errorf("error list objects in `%s` (%s): %v", bucket, region, err)
	}
	return keys, nil
}

// Exists returns whether an object exists at the provided URI
func Exists(uri string) (bool, error) {
	s3url, err := ValidateURI(uri)
	if err != nil {
		return false, err
	}

	region, err := objectRegion(s3url)
	if err != nil {
		return false, err
	}

	client, err := NewS3(region)
	if err != nil {
		return false, err
	}

	key := strings.TrimPrefix(s3url.Path, "/")
	_, err = client.HeadObject(&s3.HeadObjectInput{
		Bucket: &s3url.Host,
		Key:    &key,
	})
	return err == nil, nil
}
