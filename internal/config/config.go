package config

import (
	"os"
	"strconv"
)

// Config kesif-backend（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	SMTP     SMTPConfig
	Upload   UploadConfig
	Follower FollowerConfig
}

// DatabaseConfig PostgreSQL 连接配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// SMTPConfig 邮件发送配置（OTP 与合作提案通知）
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	NotifyTo string // 合作提案通知收件箱
}

// UploadConfig 图片上传配置
// CloudinaryURL 为空时退回本地磁盘存储（dev 模式）
type UploadConfig struct {
	CloudinaryURL string
	LocalDir      string
	PublicPrefix  string
}

// FollowerConfig 粉丝数查询服务配置
// 两个 BaseURL 默认指向 Instagram，测试时可注入 httptest 地址
type FollowerConfig struct {
	APIBaseURL  string
	PageBaseURL string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "kesif")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	// SMTP 配置（凭证为空时 mailer 进入 dev 模式，不真正发信）
	cfg.SMTP.Host = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTP.Port = getEnv("SMTP_PORT", "587")
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", "")
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", "")
	cfg.SMTP.From = getEnv("SMTP_FROM", "noreply@kesifcollective.com")
	cfg.SMTP.FromName = getEnv("SMTP_FROM_NAME", "Kesif Collective")
	cfg.SMTP.NotifyTo = getEnv("SMTP_NOTIFY_TO", cfg.SMTP.From)

	// 上传配置
	cfg.Upload.CloudinaryURL = getEnv("CLOUDINARY_URL", "")
	cfg.Upload.LocalDir = getEnv("UPLOAD_DIR", "public/uploads")
	cfg.Upload.PublicPrefix = getEnv("UPLOAD_PUBLIC_PREFIX", "/uploads")

	// 粉丝数查询配置
	cfg.Follower.APIBaseURL = getEnv("FOLLOWER_API_BASE_URL", "https://www.instagram.com")
	cfg.Follower.PageBaseURL = getEnv("FOLLOWER_PAGE_BASE_URL", "https://www.instagram.com")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
