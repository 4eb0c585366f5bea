package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置，全部来自环境变量（可选 .env 文件）
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Translate TranslateConfig
	Gemini    GeminiConfig
	SMTP      SMTPConfig
	Admin     AdminConfig
}

type ServerConfig struct {
	Port string
	Mode string // debug | release
}

type DatabaseConfig struct {
	DSN string
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
}

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
	CDNDomain string
	BasePath  string
}

type TranslateConfig struct {
	// 主通道：DeepLX 兼容接口（JSON）
	PrimaryEndpoint string
	// 备用通道：Apps Script 兼容接口（表单）
	SecondaryEndpoint string
	// 相邻请求之间的间隔，免费通道容易被限流
	RequestInterval time.Duration
}

type GeminiConfig struct {
	APIKey       string
	DefaultModel string
	// 启动时是否探测可用模型列表
	DiscoverModel bool
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// AdminConfig 管理员策略，唯一的配置入口
// 注册时提交的 signup code 与此匹配才授予 admin 角色
type AdminConfig struct {
	SignupCode string
}

// Load 读取配置，环境变量优先
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env 不存在时忽略
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("JWT_ACCESS_TTL", "2h")
	v.SetDefault("JWT_REFRESH_TTL", "168h")
	v.SetDefault("JWT_ISSUER", "liveops")
	v.SetDefault("STORAGE_PROVIDER", "s3")
	v.SetDefault("STORAGE_BASE_PATH", "product-images")
	v.SetDefault("TRANSLATE_REQUEST_INTERVAL", "100ms")
	v.SetDefault("GEMINI_DEFAULT_MODEL", "gemini-1.5-flash")
	v.SetDefault("GEMINI_DISCOVER_MODEL", true)
	v.SetDefault("SMTP_PORT", 465)

	return &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
			Mode: v.GetString("SERVER_MODE"),
		},
		Database: DatabaseConfig{
			DSN: v.GetString("DATABASE_DSN"),
		},
		JWT: JWTConfig{
			SecretKey:       v.GetString("JWT_SECRET"),
			AccessTokenTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTokenTTL: v.GetDuration("JWT_REFRESH_TTL"),
			Issuer:          v.GetString("JWT_ISSUER"),
		},
		Storage: StorageConfig{
			Provider:  v.GetString("STORAGE_PROVIDER"),
			Bucket:    v.GetString("AWS_BUCKET"),
			Region:    v.GetString("AWS_REGION"),
			AccessKey: v.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			CDNDomain: v.GetString("AWS_CDN_DOMAIN"),
			BasePath:  v.GetString("STORAGE_BASE_PATH"),
		},
		Translate: TranslateConfig{
			PrimaryEndpoint:   v.GetString("TRANSLATE_PRIMARY_ENDPOINT"),
			SecondaryEndpoint: v.GetString("TRANSLATE_SECONDARY_ENDPOINT"),
			RequestInterval:   v.GetDuration("TRANSLATE_REQUEST_INTERVAL"),
		},
		Gemini: GeminiConfig{
			APIKey:        v.GetString("GEMINI_API_KEY"),
			DefaultModel:  v.GetString("GEMINI_DEFAULT_MODEL"),
			DiscoverModel: v.GetBool("GEMINI_DISCOVER_MODEL"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Admin: AdminConfig{
			SignupCode: v.GetString("ADMIN_SIGNUP_CODE"),
		},
	}
}
