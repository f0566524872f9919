// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/note-graph-service/pkg/util"
	"github.com/haierkeys/note-graph-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	User     UserConfig     `yaml:"user"`
	Security SecurityConfig `yaml:"security"`
	Tracer   TracerConfig   `yaml:"tracer"`
	Task     TaskConfig     `yaml:"task"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到控制台
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出；为 false 时错误响应携带内部详情
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式 debug / release
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 监听地址
	HttpPort string `yaml:"http-port" default:":5000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics / pprof），为空不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:"127.0.0.1:5001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"note-graph-auth-token"`
	// TokenExpiry 访问令牌有效期，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"1d"`
	// RefreshTokenExpiry 刷新令牌有效期
	RefreshTokenExpiry string `yaml:"refresh-token-expiry" default:"7d"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite / mysql / postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机 host[:port]
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// SSLMode postgres sslmode
	SSLMode string `yaml:"ssl-mode" default:"disable"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix" default:"ng_"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// UserConfig 用户配置
type UserConfig struct {
	// RegisterIsEnable 注册是否启用
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// CorsAllowOrigins 允许跨域的来源，空表示任意来源
	CorsAllowOrigins []string `yaml:"cors-allow-origins"`

	// Auth 接口限流：每个客户端每秒补充的令牌数与桶容量
	AuthRateLimit int `yaml:"auth-rate-limit" default:"10"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
	// Jaeger 上报配置
	Jaeger JaegerConfig `yaml:"jaeger"`
}

// JaegerConfig Jaeger 配置，启用后请求与 SQL 会生成 span
type JaegerConfig struct {
	Enabled       bool   `yaml:"enabled" default:"false"`
	AgentHostPort string `yaml:"agent-host-port" default:"127.0.0.1:6831"`
	ServiceName   string `yaml:"service-name" default:"note-graph-service"`
}

// TaskConfig 定时任务配置
type TaskConfig struct {
	// KeepAliveInterval 数据库保活间隔，0 表示关闭
	KeepAliveInterval string `yaml:"keep-alive-interval" default:"10m"`
	// SelfURL 自身对外地址，设置后定时请求以防休眠
	SelfURL string `yaml:"self-url"`
	// SelfPingInterval 自 ping 间隔
	SelfPingInterval string `yaml:"self-ping-interval" default:"5m"`
}

// LoadEnvFile 加载 .env 文件，文件不存在时忽略
// Variables already set in the process environment are not overridden.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(godotenv.Load(path), "load env file failed")
}

// NewDefaultConfig 返回全部取默认值的配置
func NewDefaultConfig() (*AppConfig, error) {
	c := new(AppConfig)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}
	return c, nil
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	// 设置默认值
	c, err := NewDefaultConfig()
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// defaults are applied once, before YAML; explicit false values must survive

	c.ApplyEnv(os.LookupEnv)

	if err := c.Validate(); err != nil {
		return nil, realpath, err
	}

	return c, realpath, nil
}

// ApplyEnv 用环境变量覆盖配置
// PORT, JWT_SECRET, DB_TYPE, DB_HOST, DB_USER, DB_PASSWORD, DB_NAME, SELF_URL
func (c *AppConfig) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		c.Server.HttpPort = v
	}
	set("JWT_SECRET", &c.Security.AuthTokenKey)
	set("DB_TYPE", &c.Database.Type)
	set("DB_HOST", &c.Database.Host)
	set("DB_USER", &c.Database.UserName)
	set("DB_PASSWORD", &c.Database.Password)
	set("DB_NAME", &c.Database.Name)
	set("SELF_URL", &c.Task.SelfURL)
}

// Validate 校验配置
func (c *AppConfig) Validate() error {
	switch c.Database.Type {
	case "sqlite", "mysql", "postgres":
	default:
		return errors.Errorf("unsupported database type %q", c.Database.Type)
	}
	if c.Security.AuthTokenKey == "" {
		return errors.New("security.auth-token-key must not be empty")
	}
	for name, v := range map[string]string{
		"security.token-expiry":         c.Security.TokenExpiry,
		"security.refresh-token-expiry": c.Security.RefreshTokenExpiry,
	} {
		if _, err := util.ParseDuration(v); err != nil {
			return errors.Wrapf(err, "invalid %s", name)
		}
	}
	return nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	cfg.WriteTimeout = util.ParseDurationOr(c.App.WriteQueueTimeout, cfg.WriteTimeout)
	cfg.IdleTimeout = util.ParseDurationOr(c.App.WriteQueueIdleTime, cfg.IdleTimeout)

	return cfg
}

// GetTokenExpiry 获取访问令牌有效期
func (c *AppConfig) GetTokenExpiry() time.Duration {
	return util.ParseDurationOr(c.Security.TokenExpiry, 24*time.Hour)
}

// GetRefreshTokenExpiry 获取刷新令牌有效期
func (c *AppConfig) GetRefreshTokenExpiry() time.Duration {
	return util.ParseDurationOr(c.Security.RefreshTokenExpiry, 7*24*time.Hour)
}

// GetContextTimeout 请求上下文超时
func (c *AppConfig) GetContextTimeout() time.Duration {
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}

// IsDebug 是否 debug 模式
func (c *AppConfig) IsDebug() bool {
	return c.Server.RunMode == "debug"
}

// GetKeepAliveInterval 数据库保活间隔，"0" 表示关闭，无法解析时使用 10 分钟
func (c *AppConfig) GetKeepAliveInterval() time.Duration {
	return taskInterval(c.Task.KeepAliveInterval, 10*time.Minute)
}

// GetSelfPingInterval 自 ping 间隔，SelfURL 为空时返回 0
func (c *AppConfig) GetSelfPingInterval() time.Duration {
	if strings.TrimSpace(c.Task.SelfURL) == "" {
		return 0
	}
	return taskInterval(c.Task.SelfPingInterval, 5*time.Minute)
}

func taskInterval(s string, fallback time.Duration) time.Duration {
	d, err := util.ParseDuration(s)
	if err != nil {
		return fallback
	}
	if d < 0 {
		return 0
	}
	return d
}
