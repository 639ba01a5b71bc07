// ABOUTME: Shared AWS SDK session construction from service configuration
// ABOUTME: Supports region, endpoint override for local emulators, and static credentials

package services

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/markalston/migration-assessor/config"
)

// NewAWSSession builds the session used by the S3 and DynamoDB clients.
// Without static credentials the SDK's default chain applies (environment,
// shared config, Lambda execution role).
func NewAWSSession(cfg *config.Config) (*session.Session, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
	}
	if cfg.AWSEndpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.AWSEndpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return sess, nil
}

// Backends bundles the configured collaborators.
type Backends struct {
	Store   Store
	Objects ObjectStore
	closers []func()
}

// Close releases background resources held by the backends
func (b *Backends) Close() {
	for _, fn := range b.closers {
		fn()
	}
}

// NewBackends wires the store and object reader selected by configuration.
func NewBackends(cfg *config.Config) (*Backends, error) {
	b := &Backends{}

	var sess *session.Session
	ensureSession := func() (*session.Session, error) {
		if sess != nil {
			return sess, nil
		}
		s, err := NewAWSSession(cfg)
		if err != nil {
			return nil, err
		}
		sess = s
		return sess, nil
	}

	var store Store
	switch cfg.StoreBackend {
	case config.BackendMemory:
		store = NewMemoryStore()
	case config.BackendDynamoDB:
		s, err := ensureSession()
		if err != nil {
			return nil, err
		}
		store = NewDynamoStore(dynamodb.New(s), cfg.TableName)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	b.Store = store
	if cfg.LookupCacheTTL > 0 {
		caching := NewCachingStore(store, cfg.LookupCacheTTL)
		b.Store = caching
		b.closers = append(b.closers, caching.Close)
	}

	switch cfg.ObjectBackend {
	case config.BackendDir:
		b.Objects = NewDirObjectStore(cfg.ObjectDir, cfg.MaxObjectBytes)
	case config.BackendS3:
		s, err := ensureSession()
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Objects = NewS3ObjectStore(s3.New(s), cfg.MaxObjectBytes)
	default:
		b.Close()
		return nil, fmt.Errorf("unknown object backend %q", cfg.ObjectBackend)
	}

	return b, nil
}
