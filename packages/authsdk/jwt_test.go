package authsdk

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	user := UserContext{UserID: 42, Username: "student_1", Email: "s@example.com", Role: "user"}

	token, err := GenerateToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user, *parsed)
}

func TestParseToken_Errors(t *testing.T) {
	valid, err := GenerateToken(UserContext{UserID: 1}, testSecret, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(UserContext{UserID: 1}, testSecret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{"空令牌", "", testSecret, ErrNoToken},
		{"格式错误", "not-a-jwt", testSecret, ErrInvalidToken},
		{"密钥错误", valid, "other-secret", ErrInvalidToken},
		{"令牌过期", expired, testSecret, ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(r *http.Request)
		want    string
		wantErr error
	}{
		{
			name:  "cookie 优先",
			setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "from-cookie"}); r.Header.Set("Authorization", "Bearer from-header") },
			want:  "from-cookie",
		},
		{
			name:  "Bearer header",
			setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer from-header") },
			want:  "from-header",
		},
		{
			name:    "header 格式错误",
			setup:   func(r *http.Request) { r.Header.Set("Authorization", "Token abc") },
			wantErr: ErrInvalidToken,
		},
		{
			name: "查询参数",
			setup: func(r *http.Request) {
				q := r.URL.Query()
				q.Set("token", "from-query")
				r.URL.RawQuery = q.Encode()
			},
			want: "from-query",
		},
		{
			name:    "没有令牌",
			setup:   func(r *http.Request) {},
			wantErr: ErrNoToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/ws", nil)
			tt.setup(r)
			got, err := ExtractToken(r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
