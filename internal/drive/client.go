package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/frontdesk/internal/google"
)

// googleDocMimeType converts an uploaded file into a native Google Doc.
const googleDocMimeType = "application/vnd.google-apps.document"

// FileInfo represents metadata about a file created in Google Drive
type FileInfo struct {
	// ID is the unique identifier for the file
	ID string `json:"id"`

	// Name is the name of the file
	Name string `json:"name"`

	// MimeType is the MIME type of the file
	MimeType string `json:"mimeType"`

	// CreatedTime is when the file was created
	CreatedTime time.Time `json:"createdTime"`

	// WebViewLink is a link for opening the file in the Docs editor
	WebViewLink string `json:"webViewLink,omitempty"`
}

// UploadOptions control document creation.
type UploadOptions struct {
	// ParentFolder is the Drive folder ID to create the document in.
	// Empty means the account's root folder.
	ParentFolder string

	// SourceMimeType describes the uploaded content (default text/plain).
	SourceMimeType string
}

// Client wraps the Google Drive service
type Client struct {
	service       *gdrive.Service
	account       string
	tokenProvider google.TokenProvider
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// NewClientForAccountWithProvider creates a new Drive client with OAuth2
// authentication for a specific account, using the provided token provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf := google.GetOAuthConfig()
	client := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	service, err := gdrive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		service:       service,
		account:       account,
		tokenProvider: tokenProvider,
	}, nil
}

// NewClientForAccount creates a new Drive client for a specific account
// using the default file-based token provider.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// NewClient creates a new Drive client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// UploadDocument creates a hosted Google Doc from the given content and
// returns its metadata, including the web view link used as the delivery
// reference.
func (c *Client) UploadDocument(ctx context.Context, name string, content io.Reader, options *UploadOptions) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("document name is required")
	}
	if content == nil {
		return nil, fmt.Errorf("document content is required")
	}

	sourceMime := "text/plain"
	file := &gdrive.File{
		Name:     name,
		MimeType: googleDocMimeType,
	}

	if options != nil {
		if options.ParentFolder != "" {
			file.Parents = []string{options.ParentFolder}
		}
		if options.SourceMimeType != "" {
			sourceMime = options.SourceMimeType
		}
	}

	created, err := c.service.Files.Create(file).
		Context(ctx).
		Media(content, googleapi.ContentType(sourceMime)).
		Fields("id, name, mimeType, createdTime, webViewLink").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return convertToFileInfo(created), nil
}

// convertToFileInfo converts a Drive API file into a FileInfo.
func convertToFileInfo(file *gdrive.File) *FileInfo {
	info := &FileInfo{
		ID:          file.Id,
		Name:        file.Name,
		MimeType:    file.MimeType,
		WebViewLink: file.WebViewLink,
	}

	if file.CreatedTime != "" {
		if t, err := time.Parse(time.RFC3339, file.CreatedTime); err == nil {
			info.CreatedTime = t
		}
	}

	return info
}

// SafeDocumentName builds a Drive-friendly document name from a topic.
func SafeDocumentName(topic string) string {
	name := strings.TrimSpace(topic)
	if name == "" {
		name = "Generated collateral"
	}
	// Drive allows most characters; just keep names bounded.
	if len(name) > 120 {
		name = name[:120]
	}
	return name
}
