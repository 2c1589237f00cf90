package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Postgres   DBConfig
	Redis      RedisConfig
	S3         S3Config
	Logger     Logger
	Worker     WorkerConfig
	Monitoring MonitoringConfig
	Downloader DownloaderConfig
	YouTube    YouTubeConfig
	Security   SecurityConfig
}

type ServerConfig struct {
	AppVersion        string
	Port              string
	Mode              string
	JwtSecretKey      string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	CtxDefaultTimeout time.Duration
	AllowOrigins      []string
}

// WorkerConfig gates new downloads on host load.
type WorkerConfig struct {
	MaxCPUUsage    float64
	CPUWaitSeconds int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	UseTLS        bool
}

type S3Config struct {
	Enabled              bool
	Endpoint             string
	Region               string
	AccessKey            string
	SecretKey            string
	ArchiveBucket        string
	PresignExpireMinutes int
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

type MonitoringConfig struct {
	SweepInterval     time.Duration
	AutoStart         bool
	HardStop          bool
	RecentVideosLimit int
	LockTTL           time.Duration
}

type DownloaderConfig struct {
	DownloadsDir     string
	Format           string
	ProgressInterval time.Duration
	MaxRetries       int
}

type YouTubeConfig struct {
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
}

type SecurityConfig struct {
	EncryptionKey string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.mode", "Development")
	v.SetDefault("server.readTimeout", 10*time.Second)
	v.SetDefault("server.writeTimeout", 10*time.Second)
	v.SetDefault("server.ctxDefaultTimeout", 5*time.Second)
	v.SetDefault("server.allowOrigins", []string{"http://localhost:3000"})
	v.SetDefault("postgres.pgDriver", "pgx")
	v.SetDefault("postgres.sslMode", "disable")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.level", "info")
	v.SetDefault("worker.maxCPUUsage", 85.0)
	v.SetDefault("worker.cpuWaitSeconds", 5)
	v.SetDefault("monitoring.sweepInterval", 5*time.Minute)
	v.SetDefault("monitoring.recentVideosLimit", 10)
	v.SetDefault("monitoring.lockTTL", 4*time.Minute)
	v.SetDefault("downloader.downloadsDir", "downloads")
	v.SetDefault("downloader.format", "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best")
	v.SetDefault("downloader.progressInterval", 500*time.Millisecond)
	v.SetDefault("downloader.maxRetries", 1)
	v.SetDefault("youtube.requestsPerSecond", 1.0)
	v.SetDefault("youtube.burst", 2)
	v.SetDefault("youtube.maxRetries", 3)
	v.SetDefault("youtube.initialBackoff", time.Second)
	v.SetDefault("youtube.maxBackoff", 30*time.Second)
	v.SetDefault("s3.presignExpireMinutes", 60)
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Monitoring.SweepInterval <= 0 {
		return nil, errors.New("monitoring.sweepInterval must be positive")
	}
	if c.Security.EncryptionKey == "" {
		return nil, errors.New("security.encryptionKey is required")
	}
	return &c, nil
}
