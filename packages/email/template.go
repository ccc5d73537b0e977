package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template 邮件模板
type Template struct {
	tmpl *template.Template
}

// NewTemplate 从 HTML 字符串创建模板
func NewTemplate(htmlContent string) (*Template, error) {
	tmpl, err := template.New("email").Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("解析邮件模板失败: %w", err)
	}
	return &Template{tmpl: tmpl}, nil
}

// Render 渲染模板
func (t *Template) Render(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染邮件模板失败: %w", err)
	}
	return buf.String(), nil
}

// SendWithTemplate 使用模板发送邮件
func (c *Client) SendWithTemplate(to string, subject string, tmpl *Template, data interface{}) error {
	body, err := tmpl.Render(data)
	if err != nil {
		return err
	}
	return c.SendHTML(to, subject, body)
}

var (
	purchaseReceiptTmpl = template.Must(template.New("receipt").Parse(PurchaseReceiptTemplate))
	welcomeTmpl         = template.Must(template.New("welcome").Parse(WelcomeTemplate))
)

// PurchaseReceiptTemplate 购买成功邮件模板
const PurchaseReceiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .amount { font-size: 28px; font-weight: bold; color: #4CAF50; text-align: center; padding: 16px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>购买成功</h1>
        </div>
        <div class="content">
            <p>{{.Username}}，您好：</p>
            <p>您已成功购买课程《{{.CourseTitle}}》。</p>
            <div class="amount">{{.Amount}} {{.Currency}}</div>
            <p>订单号：{{.OrderID}}</p>
            {{if .CourseURL}}<p><a href="{{.CourseURL}}">开始学习</a></p>{{end}}
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复。</p>
        </div>
    </div>
</body>
</html>
`

// PurchaseReceiptData 购买成功模板数据
type PurchaseReceiptData struct {
	Username    string
	CourseTitle string
	Amount      string // 两位小数
	Currency    string
	OrderID     uint
	CourseURL   string // 可选
}

// SendPurchaseReceipt 发送购买成功邮件
func (c *Client) SendPurchaseReceipt(to string, data PurchaseReceiptData) error {
	return c.SendWithTemplate(to, "【Course Platform】购买成功", &Template{tmpl: purchaseReceiptTmpl}, data)
}

// WelcomeTemplate 欢迎邮件模板
const WelcomeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2196F3; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>欢迎加入 {{.AppName}}</h1>
        </div>
        <div class="content">
            <p>Hi {{.Username}}，</p>
            <p>欢迎注册 {{.AppName}}！您的账号已成功创建。</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复。</p>
        </div>
    </div>
</body>
</html>
`

// WelcomeData 欢迎邮件模板数据
type WelcomeData struct {
	AppName  string
	Username string
}

// SendWelcome 发送注册欢迎邮件
func (c *Client) SendWelcome(to string, data WelcomeData) error {
	return c.SendWithTemplate(to, "欢迎加入 "+data.AppName, &Template{tmpl: welcomeTmpl}, data)
}
