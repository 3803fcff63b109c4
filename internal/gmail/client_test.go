package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, raw string) string {
	t.Helper()
	data, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	return string(data)
}

func TestBuildRawMessage(t *testing.T) {
	raw, err := buildRawMessage(&EmailMessage{
		To:      []string{"lead@example.com"},
		Cc:      []string{"sales@example.com"},
		Subject: "Your collateral",
		Body:    "Here is the document you asked for.",
	})
	require.NoError(t, err)

	decoded := decodeRaw(t, raw)
	assert.Contains(t, decoded, "To: lead@example.com\r\n")
	assert.Contains(t, decoded, "Cc: sales@example.com\r\n")
	assert.Contains(t, decoded, "Subject: Your collateral\r\n")
	assert.Contains(t, decoded, "Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	assert.True(t, strings.HasSuffix(decoded, "Here is the document you asked for."))
}

func TestBuildRawMessageHTML(t *testing.T) {
	raw, err := buildRawMessage(&EmailMessage{
		To:      []string{"lead@example.com"},
		Subject: "Your collateral",
		Body:    "<p>hello</p>",
		IsHTML:  true,
	})
	require.NoError(t, err)

	decoded := decodeRaw(t, raw)
	assert.Contains(t, decoded, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
}

func TestBuildRawMessageValidation(t *testing.T) {
	tests := []struct {
		name string
		msg  *EmailMessage
	}{
		{
			name: "nil message",
			msg:  nil,
		},
		{
			name: "no recipients",
			msg:  &EmailMessage{Subject: "s", Body: "b"},
		},
		{
			name: "no subject",
			msg:  &EmailMessage{To: []string{"a@example.com"}, Body: "b"},
		},
		{
			name: "no body",
			msg:  &EmailMessage{To: []string{"a@example.com"}, Subject: "s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildRawMessage(tt.msg)
			assert.Error(t, err)
		})
	}
}

func TestEncodeRFC2047(t *testing.T) {
	assert.Equal(t, "Plain subject", encodeRFC2047("Plain subject"))

	encoded := encodeRFC2047("Grüße aus dem Büro")
	assert.True(t, strings.HasPrefix(encoded, "=?UTF-8?"), "non-ASCII subject should be Q-encoded, got %q", encoded)
}
