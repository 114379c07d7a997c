package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Line     LineConfig     `yaml:"line"`
	Store    StoreConfig    `yaml:"store"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Timezone string         `yaml:"timezone"`
}

// ServerConfig は HTTP サーバーに関する設定です。
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LineConfig は LINE Messaging API のチャネル設定です。
type LineConfig struct {
	ChannelSecret      string `yaml:"channel_secret"`
	ChannelAccessToken string `yaml:"channel_access_token"`
	// AdminUserID が空の場合、休暇申請の管理者通知と承認コマンドは
	// 無効になります。
	AdminUserID string `yaml:"admin_user_id"`
}

// ストアバックエンドの種別。
const (
	StoreBackendSheets   = "sheets"
	StoreBackendPostgres = "postgres"
)

// StoreConfig は行ストアのバックエンド選択です。
type StoreConfig struct {
	Backend string `yaml:"backend"`
}

// SheetsConfig は Google スプレッドシート接続の設定です。認証情報は
// ファイルパスか base64 エンコード済み JSON のどちらかで渡します
// （base64 は Render などファイルを置けない環境向け）。
type SheetsConfig struct {
	SpreadsheetID     string `yaml:"spreadsheet_id"`
	CredentialsFile   string `yaml:"credentials_file"`
	CredentialsBase64 string `yaml:"credentials_base64"`
}

// Credentials はサービスアカウントの認証情報 JSON を返します。
func (s SheetsConfig) Credentials() ([]byte, error) {
	if s.CredentialsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(s.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("config: decode sheets credentials: %w", err)
		}
		return decoded, nil
	}

	b, err := os.ReadFile(s.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("config: read sheets credentials: %w", err)
	}
	return b, nil
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。sheets バック
// エンドのときは無視されます。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// LogConfig はログ出力の設定です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書き
// します。優先順位は 環境変数 > 設定ファイル > 既定値 です。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv は機微情報とデプロイ先が注入する値を環境変数から取り込み
// ます。
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("LINE_CHANNEL_SECRET"); v != "" {
		c.Line.ChannelSecret = v
	}
	if v := os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"); v != "" {
		c.Line.ChannelAccessToken = v
	}
	if v := os.Getenv("ADMIN_USER_ID"); v != "" {
		c.Line.AdminUserID = v
	}
	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		c.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("GOOGLE_CREDENTIALS"); v != "" {
		c.Sheets.CredentialsBase64 = v
	}
}

func (c *Config) validateAndNormalize() error {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}

	if c.Line.ChannelSecret == "" {
		return fmt.Errorf("config: line.channel_secret must be set")
	}
	if c.Line.ChannelAccessToken == "" {
		return fmt.Errorf("config: line.channel_access_token must be set")
	}

	if c.Store.Backend == "" {
		c.Store.Backend = StoreBackendSheets
	}
	switch c.Store.Backend {
	case StoreBackendSheets:
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("config: sheets.spreadsheet_id must be set")
		}
		if c.Sheets.CredentialsFile == "" && c.Sheets.CredentialsBase64 == "" {
			return fmt.Errorf("config: sheets credentials must be set")
		}
	case StoreBackendPostgres:
		if err := c.Database.validateAndNormalize(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("config: unsupported store.backend %q", c.Store.Backend)
	}

	if c.Timezone == "" {
		c.Timezone = "Asia/Tokyo"
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: timezone: %w", err)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// Location は設定されたタイムゾーンを返します。validateAndNormalize を
// 通過した設定では失敗しません。
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DSN は pgx 用の接続文字列を返します。
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}
