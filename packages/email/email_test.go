package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage(&Message{
		From:    "Course Platform <noreply@example.com>",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "hello",
		Body:    "body",
	}))

	assert.True(t, strings.HasPrefix(raw, "From: Course Platform <noreply@example.com>\r\nTo: a@example.com, b@example.com\r\n"))
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nbody"))
	assert.NotContains(t, raw, "Cc:")
}

func TestSend_Disabled(t *testing.T) {
	client := NewClient(&Config{})
	assert.False(t, client.Enabled())
	assert.Error(t, client.Send(&Message{To: []string{"a@example.com"}, Subject: "s"}))
}

func TestPurchaseReceiptTemplate(t *testing.T) {
	body, err := (&Template{tmpl: purchaseReceiptTmpl}).Render(PurchaseReceiptData{
		Username:    "student",
		CourseTitle: "Go <并发>",
		Amount:      "199.00",
		Currency:    "RUB",
		OrderID:     12,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "199.00 RUB")
	assert.Contains(t, body, "订单号：12")
	// html/template 会转义课程标题
	assert.Contains(t, body, "Go &lt;并发&gt;")
	assert.NotContains(t, body, "开始学习")
}

func TestNewTemplate_InvalidSyntax(t *testing.T) {
	_, err := NewTemplate("{{.Broken")
	assert.Error(t, err)
}
