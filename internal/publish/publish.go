// Package publish uploads analysis results to Azure Blob Storage.
package publish

//go:generate go tool mockgen -source=publish.go -destination=mock_uploader_test.go -package=publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned when the account URL or container is missing.
var ErrNotConfigured = errors.New("publish target is not configured")

// Config names the storage account and container results go to.
type Config struct {
	AccountURL string `yaml:"account_url" json:"account_url"`
	Container  string `yaml:"container" json:"container"`
}

// Enabled reports whether both fields are set.
func (c Config) Enabled() bool {
	return c.AccountURL != "" && c.Container != ""
}

type blobUploader interface {
	UploadBuffer(ctx context.Context, containerName string, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
}

// Publisher writes JSON result documents to a blob container.
type Publisher struct {
	client    blobUploader
	container string
	now       func() time.Time
	newID     func() string
}

// New creates a Publisher for cfg. A nil cred uses DefaultAzureCredential.
func New(cfg Config, cred azcore.TokenCredential) (*Publisher, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	if cred == nil {
		c, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("creating Azure credential: %w", err)
		}
		cred = c
	}

	client, err := azblob.NewClient(cfg.AccountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client for %s: %w", cfg.AccountURL, err)
	}
	return newPublisher(client, cfg.Container), nil
}

func newPublisher(client blobUploader, container string) *Publisher {
	return &Publisher{
		client:    client,
		container: container,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// BlobName returns <kind>/<yyyy-mm-dd>/<id>.json with the date in UTC.
func BlobName(kind string, t time.Time, id string) string {
	return path.Join(kind, t.UTC().Format(time.DateOnly), id+".json")
}

// Publish uploads doc as indented JSON under kind and returns the blob name.
func (p *Publisher) Publish(ctx context.Context, kind string, doc any) (string, error) {
	kind = strings.Trim(kind, "/")
	if kind == "" {
		return "", errors.New("publish: kind is required")
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s result: %w", kind, err)
	}

	name := BlobName(kind, p.now(), p.newID())
	_, err = p.client.UploadBuffer(ctx, p.container, name, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr("application/json")},
		Metadata:    map[string]*string{"kind": to.Ptr(kind)},
	})
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			return "", fmt.Errorf("uploading %s to %s: %s (HTTP %d): %w", name, p.container, respErr.ErrorCode, respErr.StatusCode, err)
		}
		return "", fmt.Errorf("uploading %s to %s: %w", name, p.container, err)
	}
	return name, nil
}
