package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 收据商品描述的最大长度
const receiptDescriptionRunes = 128

var ErrGatewayNotConfigured = errors.New("支付网关未配置 shop_id 或 secret_key")

// Gateway 支付网关
type Gateway interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error)
	// GetPayment 查询网关侧的支付单，用于核对回调
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}

// GatewayConfig 支付网关连接参数
type GatewayConfig struct {
	BaseURL   string
	ShopID    string
	SecretKey string
	Timeout   time.Duration
}

// PaymentRequest 创建支付
type PaymentRequest struct {
	Amount        decimal.Decimal
	Currency      string
	Description   string
	OrderID       uint // 本地购买记录 ID
	CustomerEmail string
	ReturnURL     string
}

// Payment 网关返回的支付单
type Payment struct {
	ID              string
	Status          string
	ConfirmationURL string
}

// WebhookEvent 网关回调中我们关心的字段
type WebhookEvent struct {
	Event     string
	PaymentID string
	Status    string
}

type amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type receiptItem struct {
	Description    string `json:"description"`
	Quantity       string `json:"quantity"`
	Amount         amount `json:"amount"`
	VatCode        int    `json:"vat_code"`
	PaymentMode    string `json:"payment_mode"`
	PaymentSubject string `json:"payment_subject"`
}

type receipt struct {
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
	Items []receiptItem `json:"items"`
}

type paymentBody struct {
	Amount       amount            `json:"amount"`
	Confirmation confirmation      `json:"confirmation"`
	Capture      bool              `json:"capture"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata"`
	Receipt      receipt           `json:"receipt"`
}

type paymentResult struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	Confirmation confirmation `json:"confirmation"`
}

type gatewayError struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// GatewayClient 基于 resty 的支付网关客户端
type GatewayClient struct {
	client     *resty.Client
	configured bool
}

func NewGatewayClient(cfg GatewayConfig) *GatewayClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.ShopID, cfg.SecretKey).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &GatewayClient{
		client:     client,
		configured: cfg.ShopID != "" && cfg.SecretKey != "",
	}
}

func buildPaymentBody(req PaymentRequest) paymentBody {
	value := amount{Value: req.Amount.StringFixed(2), Currency: req.Currency}

	itemDescription := req.Description
	if runes := []rune(itemDescription); len(runes) > receiptDescriptionRunes {
		itemDescription = string(runes[:receiptDescriptionRunes])
	}

	body := paymentBody{
		Amount:       value,
		Confirmation: confirmation{Type: "redirect", ReturnURL: req.ReturnURL},
		Capture:      true,
		Description:  req.Description,
		Metadata:     map[string]string{"order_id": strconv.FormatUint(uint64(req.OrderID), 10)},
	}
	body.Receipt.Customer.Email = req.CustomerEmail
	body.Receipt.Items = []receiptItem{{
		Description:    itemDescription,
		Quantity:       "1.00",
		Amount:         value,
		VatCode:        1,
		PaymentMode:    "full_prepayment",
		PaymentSubject: "commodity",
	}}
	return body
}

// CreatePayment 创建一次性支付，每次调用使用新的幂等键
func (g *GatewayClient) CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	if !g.configured {
		return nil, ErrGatewayNotConfigured
	}

	var result paymentResult
	var apiErr gatewayError
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Idempotence-Key", uuid.NewString()).
		SetBody(buildPaymentBody(req)).
		SetResult(&result).
		SetError(&apiErr).
		Post("/payments")
	if err != nil {
		return nil, fmt.Errorf("请求支付网关失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("支付网关返回 %d: %s %s", resp.StatusCode(), apiErr.Code, apiErr.Description)
	}
	if result.ID == "" || result.Confirmation.ConfirmationURL == "" {
		return nil, fmt.Errorf("支付网关响应缺少 id 或 confirmation_url")
	}

	return &Payment{
		ID:              result.ID,
		Status:          result.Status,
		ConfirmationURL: result.Confirmation.ConfirmationURL,
	}, nil
}

// GetPayment 回调不带签名，状态以网关查询结果为准
func (g *GatewayClient) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if !g.configured {
		return nil, ErrGatewayNotConfigured
	}

	var result paymentResult
	var apiErr gatewayError
	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParam("payment_id", paymentID).
		SetResult(&result).
		SetError(&apiErr).
		Get("/payments/{payment_id}")
	if err != nil {
		return nil, fmt.Errorf("查询支付单失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("支付网关返回 %d: %s %s", resp.StatusCode(), apiErr.Code, apiErr.Description)
	}
	if result.ID != paymentID || result.Status == "" {
		return nil, fmt.Errorf("支付网关响应与支付单 %s 不匹配", paymentID)
	}

	return &Payment{
		ID:              result.ID,
		Status:          result.Status,
		ConfirmationURL: result.Confirmation.ConfirmationURL,
	}, nil
}

// ParseWebhook 解析网关回调，object.id 与 object.status 必须存在
func ParseWebhook(raw []byte) (*WebhookEvent, error) {
	var payload struct {
		Type   string `json:"type"`
		Event  string `json:"event"`
		Object *struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"object"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("回调数据不是合法的 JSON: %w", err)
	}
	if payload.Object == nil {
		return nil, errors.New("回调缺少 object 字段")
	}
	if payload.Object.ID == "" || payload.Object.Status == "" {
		return nil, errors.New("回调缺少 object.id 或 object.status")
	}
	return &WebhookEvent{
		Event:     payload.Event,
		PaymentID: payload.Object.ID,
		Status:    payload.Object.Status,
	}, nil
}
