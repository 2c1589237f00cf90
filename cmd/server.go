package main

import (
	"context"
	"log"
	"os"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/server"
	"github.com/amankumarsingh77/channel-monitor/pkg/db/aws"
	"github.com/amankumarsingh77/channel-monitor/pkg/db/postgres"
	"github.com/amankumarsingh77/channel-monitor/pkg/db/redis"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func main() {
	log.Println("Starting server")
	configFile := "config.yml"
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		configFile = path
	}
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %v", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %v", err)
	}
	appLogger.Info("redis connected")
	defer redisClient.Close()

	var (
		s3Client      *s3.Client
		presignClient *s3.PresignClient
	)
	if cfg.S3.Enabled {
		s3Client, presignClient, err = aws.NewAWSClient(context.Background(), cfg.S3)
		if err != nil {
			appLogger.Fatalf("could not create s3 client: %v", err)
		}
		appLogger.Infof("s3 archival enabled, bucket: %s", cfg.S3.ArchiveBucket)
	}

	s := server.NewServer(cfg, psqlDB, redisClient, s3Client, presignClient, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Errorf("server stopped with error: %v", err)
	}
}
