package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret  string        // JWT署名シークレット
	JWTExpires time.Duration // セッショントークンの寿命（default 7日）

	GoEnv string // dev/production
	FEURL string // フロントURL（CORSとcookie属性で使う）

	MailHost     string // SMTPホスト。空ならメール送信は無効
	MailPort     string
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string

	NotifyTimeout time.Duration // 通知メール1通あたりのタイムアウト

	SeedFile string // メニューseed用JSONのパス
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTExpires: 7 * 24 * time.Hour,

		GoEnv: getenv("GO_ENV", "development"),
		FEURL: getenv("FE_URL", "http://localhost:5173"),

		MailHost:     os.Getenv("MAIL_HOST"),
		MailPort:     getenv("MAIL_PORT", "587"),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     getenv("MAIL_FROM", "noreply@quickbite.com"),
		MailFromName: getenv("MAIL_FROM_NAME", "QuickBite"),

		NotifyTimeout: 10 * time.Second,

		SeedFile: getenv("SEED_FILE", "food.json"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	// トークン寿命（時間単位。JWT_EXPIRES_HOURS=168 で7日）
	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h <= 0 {
			return Config{}, fmt.Errorf("JWT_EXPIRES_HOURS must be a positive number")
		}
		cfg.JWTExpires = time.Duration(h) * time.Hour
	}

	if v := os.Getenv("NOTIFY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("NOTIFY_TIMEOUT must be a positive duration: %w", err)
		}
		cfg.NotifyTimeout = d
	}

	return cfg, nil
}

// IsProduction はcookieのSecure/SameSite属性の切り替えに使う
func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
