package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"bidly-backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FileStore persists uploaded bytes and returns a retrievable locator. The
// concrete store is chosen once at startup and injected into the handlers that
// need it.
type FileStore interface {
	Save(ctx context.Context, folder, name string, data []byte, contentType string) (string, error)
}

// NewFileStoreFromConfig picks S3 when a bucket is configured, local disk
// otherwise.
func NewFileStoreFromConfig() FileStore {
	if config.AppConfig.S3Bucket != "" {
		store, err := NewS3FileStore(context.Background(), config.AppConfig.S3Bucket)
		if err == nil {
			log.Println("✅ S3 file storage configured")
			return store
		}
		log.Println("⚠️  S3 initialization failed, using local storage:", err)
	}
	log.Println("📁 Using local file storage")
	return &LocalFileStore{Dir: config.AppConfig.UploadDir, BaseURL: config.AppConfig.AppURL}
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

func uniqueName(name string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), unsafeNameChars.ReplaceAllString(name, "_"))
}

// LocalFileStore writes under the uploads directory served by the router.
type LocalFileStore struct {
	Dir     string
	BaseURL string
}

func (s *LocalFileStore) Save(ctx context.Context, folder, name string, data []byte, contentType string) (string, error) {
	dir := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	fileName := uniqueName(name)
	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.BaseURL, folder, fileName), nil
}

const maxDocumentBytes = 5 << 20

// FetchDocumentText retrieves a stored document by its locator and returns
// the contents for summarization.
func FetchDocumentText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("document fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// S3FileStore uploads to an S3 bucket.
type S3FileStore struct {
	Client *s3.Client
	Bucket string
}

func NewS3FileStore(ctx context.Context, bucket string) (*S3FileStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return &S3FileStore{Client: s3.NewFromConfig(cfg), Bucket: bucket}, nil
}

func (s *S3FileStore) Save(ctx context.Context, folder, name string, data []byte, contentType string) (string, error) {
	key := folder + "/" + uniqueName(name)

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.Bucket, key), nil
}
