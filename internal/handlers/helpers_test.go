// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// createRequest はテスト用のHTTPリクエストを組み立てます。
// tenantIDがnilの場合はX-Tenant-IDヘッダーを付けません（未認証のテスト用）。
func createRequest(t *testing.T, method, url string, body interface{}, tenantID *uuid.UUID) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			// 不正なJSONを送るテスト用に文字列はそのまま使う
			bodyReader = strings.NewReader(raw)
		} else {
			b, err := json.Marshal(body)
			require.NoError(t, err, "Failed to marshal request body")
			bodyReader = bytes.NewBuffer(b)
		}
	}

	req, err := http.NewRequest(method, url, bodyReader)
	require.NoError(t, err, "Failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenantID != nil {
		req.Header.Set("X-Tenant-ID", tenantID.String())
	}
	return req
}
