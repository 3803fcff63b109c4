package drive

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gdrive "google.golang.org/api/drive/v3"
)

func TestConvertToFileInfo(t *testing.T) {
	info := convertToFileInfo(&gdrive.File{
		Id:          "doc123",
		Name:        "Spring promo",
		MimeType:    googleDocMimeType,
		CreatedTime: "2024-03-01T10:00:00Z",
		WebViewLink: "https://docs.google.com/document/d/doc123/edit",
	})

	assert.Equal(t, "doc123", info.ID)
	assert.Equal(t, "Spring promo", info.Name)
	assert.Equal(t, googleDocMimeType, info.MimeType)
	assert.Equal(t, "https://docs.google.com/document/d/doc123/edit", info.WebViewLink)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), info.CreatedTime)
}

func TestConvertToFileInfoBadTimestamp(t *testing.T) {
	info := convertToFileInfo(&gdrive.File{Id: "x", CreatedTime: "garbage"})
	assert.True(t, info.CreatedTime.IsZero())
}

func TestSafeDocumentName(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{
			name:  "plain topic",
			topic: "Spring promo flyer",
			want:  "Spring promo flyer",
		},
		{
			name:  "whitespace trimmed",
			topic: "  launch notes  ",
			want:  "launch notes",
		},
		{
			name:  "empty topic gets default",
			topic: "   ",
			want:  "Generated collateral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeDocumentName(tt.topic))
		})
	}

	long := strings.Repeat("x", 300)
	assert.Len(t, SafeDocumentName(long), 120)
}
