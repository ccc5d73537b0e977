// config/config.go - 配置管理
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"terminal-terrace/course-platform/packages/email"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server       ServerConfig       `koanf:"server"`
	Database     DatabaseConfig     `koanf:"database"`
	Redis        RedisConfig        `koanf:"redis"`
	Log          LogConfig          `koanf:"log"`
	JWT          JWTConfig          `koanf:"jwt"`
	CORS         CORSConfig         `koanf:"cors"`
	RateLimit    RateLimitConfig    `koanf:"rate_limit"`
	Payment      PaymentConfig      `koanf:"payment"`
	Notification NotificationConfig `koanf:"notification"`
	Email        email.Config       `koanf:"email"`
	Swagger      SwaggerConfig      `koanf:"swagger"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, console
}

type JWTConfig struct {
	Secret     string `koanf:"secret"`
	ExpireTime int    `koanf:"expire_time"` // 小时
}

type CORSConfig struct {
	Origins []string `koanf:"origins"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// PaymentConfig 支付网关配置
type PaymentConfig struct {
	BaseURL   string        `koanf:"base_url"`
	ShopID    string        `koanf:"shop_id"`
	SecretKey string        `koanf:"secret_key"`
	ReturnURL string        `koanf:"return_url"` // 支付完成后跳转地址，会附加 ?payment_id=<订单号>
	Currency  string        `koanf:"currency"`
	Timeout   time.Duration `koanf:"timeout"` // 秒
}

// NotificationConfig 通知配置
type NotificationConfig struct {
	KeyPrefix    string `koanf:"key_prefix"`
	MaxItems     int    `koanf:"max_items"`
	TTLHours     int    `koanf:"ttl_hours"`
	Relay        bool   `koanf:"relay"` // 多实例部署时通过 Redis 频道转发实时消息
	RelayChannel string `koanf:"relay_channel"`
}

// SwaggerConfig 接口文档
type SwaggerConfig struct {
	Enabled  bool   `koanf:"enabled"`  // 提供 /swagger 页面
	Generate bool   `koanf:"generate"` // 启动时执行 swag init
	DocPath  string `koanf:"doc_path"` // swag init 生成的 swagger.json
}

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(); envErr != nil {
			log.Printf("警告: 无法加载 .env 文件: %v", envErr)
		}

		k = koanf.New(".")

		if err = k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			err = fmt.Errorf("加载配置文件失败: %w", err)
			return
		}

		// 加载环境变量（会覆盖配置文件），例如 PAYMENT_SHOP_ID -> payment.shop_id
		if envErr := k.Load(env.Provider("", ".", envKey), nil); envErr != nil {
			log.Printf("加载环境变量失败: %v", envErr)
		}

		Conf = &AppConfig{}
		if err = k.Unmarshal("", Conf); err != nil {
			err = fmt.Errorf("解析配置失败: %w", err)
			return
		}

		applyDefaults(Conf)
	})

	return err
}

// MustLoad 加载配置，失败则退出
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
}

// envKey 把第一个下划线视为层级分隔符，保留字段名中的下划线
func envKey(s string) string {
	s = strings.ToLower(s)
	section, rest, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + rest
}

// applyDefaults 补全默认值并转换时间单位
func applyDefaults(c *AppConfig) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	c.Server.ReadTimeout = c.Server.ReadTimeout * time.Second
	c.Server.WriteTimeout = c.Server.WriteTimeout * time.Second

	if c.JWT.ExpireTime == 0 {
		c.JWT.ExpireTime = 24
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 20
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 40
	}

	if c.Payment.Currency == "" {
		c.Payment.Currency = "RUB"
	}
	if c.Payment.Timeout == 0 {
		c.Payment.Timeout = 10
	}
	c.Payment.Timeout = c.Payment.Timeout * time.Second

	if c.Notification.KeyPrefix == "" {
		c.Notification.KeyPrefix = "notifications"
	}
	if c.Notification.MaxItems == 0 {
		c.Notification.MaxItems = 20
	}
	if c.Notification.TTLHours == 0 {
		c.Notification.TTLHours = 24 * 30
	}
	if c.Notification.RelayChannel == "" {
		c.Notification.RelayChannel = "notifications:relay"
	}

	if c.Swagger.DocPath == "" {
		c.Swagger.DocPath = "docs/swagger.json"
	}
}

// TokenTTL 访问令牌有效期
func (c *AppConfig) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpireTime) * time.Hour
}

// NotificationTTL 通知列表过期时间
func (c *AppConfig) NotificationTTL() time.Duration {
	return time.Duration(c.Notification.TTLHours) * time.Hour
}
