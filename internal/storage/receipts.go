package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/config"
)

// ObjectAPI es el subconjunto del cliente S3 usado por ReceiptStore
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// ReceiptStore guarda comprobantes de cobro en un bucket S3 compatible
type ReceiptStore struct {
	client    ObjectAPI
	bucket    string
	publicURL string
	logger    *logrus.Logger
}

// NewS3Client crea el cliente S3 para el endpoint configurado (AWS, MinIO, Supabase, etc.)
func NewS3Client(ctx context.Context, cfg *config.StorageConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
	}
	if cfg.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				SigningRegion:     cfg.Region,
				HostnameImmutable: true,
			}, nil
		})
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.Endpoint != ""
	}), nil
}

// NewReceiptStore crea una nueva instancia del almacenamiento de comprobantes
func NewReceiptStore(client ObjectAPI, cfg *config.StorageConfig, logger *logrus.Logger) *ReceiptStore {
	publicURL := cfg.PublicURL
	if publicURL == "" && cfg.Endpoint != "" {
		publicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &ReceiptStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// Upload sube el comprobante de una cuenta por cobrar y retorna su URL pública
func (s *ReceiptStore) Upload(ctx context.Context, receivableID, filename string, data []byte) (string, error) {
	key := ReceiptKey(receivableID, filename)
	contentType := http.DetectContentType(data)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading receipt: %w", err)
	}

	url := s.publicURL + "/" + key

	s.logger.WithFields(logrus.Fields{
		"bucket":        s.bucket,
		"key":           key,
		"receivable_id": receivableID,
		"content_type":  contentType,
		"size":          len(data),
	}).Info("Receipt uploaded successfully")

	return url, nil
}

// Delete elimina un comprobante a partir de su URL pública
func (s *ReceiptStore) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.publicURL+"/")
	if key == url {
		return fmt.Errorf("receipt url %s does not belong to bucket %s", url, s.bucket)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error deleting receipt: %w", err)
	}
	return nil
}

// HealthCheck verifica que el bucket exista y sea accesible
func (s *ReceiptStore) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("error checking receipt storage: %w", err)
	}
	return nil
}

// ReceiptKey construye la clave del objeto; cada subida recibe un prefijo único
func ReceiptKey(receivableID, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "receipt"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return path.Join("receipts", receivableID, uuid.NewString()[:8]+"-"+base)
}
