package config

import (
	"fmt"

	"github.com/spf13/viper"
)

var GlobalConfig *Config

// Config 全局配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Retention RetentionConfig `mapstructure:"retention"`
	Seed      SeedConfig      `mapstructure:"seed"`
	DB        interface{}     // 数据库连接,运行时注入
}

// ServerConfig 服务配置
type ServerConfig struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	LogLevel        string `mapstructure:"log_level"`         // SQL日志级别: silent/error/warn/info
	AutoMigrate     bool   `mapstructure:"auto_migrate"`      // 启动时自动建表
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWT   JWTConfig   `mapstructure:"jwt"`
	LDAP  LDAPConfig  `mapstructure:"ldap"`
	Local LocalConfig `mapstructure:"local"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	AccessTokenExpire  int    `mapstructure:"access_token_expire"`  // 秒
	RefreshTokenExpire int    `mapstructure:"refresh_token_expire"` // 秒
}

// LDAPConfig LDAP配置
type LDAPConfig struct {
	Enabled      bool           `mapstructure:"enabled"`
	Host         string         `mapstructure:"host"`
	Port         int            `mapstructure:"port"`
	UseSSL       bool           `mapstructure:"use_ssl"`
	BindDN       string         `mapstructure:"bind_dn"`
	BindPassword string         `mapstructure:"bind_password"`
	BaseDN       string         `mapstructure:"base_dn"`
	UserFilter   string         `mapstructure:"user_filter"`
	Attributes   LDAPAttributes `mapstructure:"attributes"`
}

// LDAPAttributes LDAP属性映射
type LDAPAttributes struct {
	Email       string `mapstructure:"email"`
	DisplayName string `mapstructure:"display_name"`
}

// LocalConfig 本地用户配置
type LocalConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, console
	Output     string `mapstructure:"output"` // stdout, file
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// RetentionConfig 软删除数据保留配置
type RetentionConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"` // 清理任务执行时间
	Days    int    `mapstructure:"days"` // 软删除记录保留天数
}

// SeedConfig 初始化数据配置
type SeedConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	DemoData      bool   `mapstructure:"demo_data"` // 写入演示数据(客户/联系人/项目等)
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// 读取环境变量
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 设置全局配置
	GlobalConfig = config

	return config, nil
}

// GetDSN 获取数据库DSN
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}
