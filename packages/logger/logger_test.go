package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs(t *testing.T) {
	tests := []struct {
		name string
		in   []interface{}
		want []interface{}
	}{
		{
			name: "普通字段保持不变",
			in:   []interface{}{"user_id", uint(7), "path", "/api/v1/courses"},
			want: []interface{}{"user_id", uint(7), "path", "/api/v1/courses"},
		},
		{
			name: "敏感字段被替换",
			in:   []interface{}{"password", "hunter2", "access_token", "abc", "Email", "a@b.c"},
			want: []interface{}{"password", "[REDACTED]", "access_token", "[REDACTED]", "Email", "[REDACTED]"},
		},
		{
			name: "值形似 JWT 时被替换",
			in:   []interface{}{"value", "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VyX2lkIjoxfQ.signature"},
			want: []interface{}{"value", "[REDACTED]"},
		},
		{
			name: "奇数个参数保留最后一个键",
			in:   []interface{}{"a", 1, "dangling"},
			want: []interface{}{"a", 1, "dangling"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeKVs(tt.in))
		})
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.With("request_id", "x").Info("ignored", "k", "v")
	log.Sync()
}
