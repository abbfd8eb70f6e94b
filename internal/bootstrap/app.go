package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"rag-assistant/internal/ai"
	"rag-assistant/internal/config"
	"rag-assistant/internal/model"
	mysqlClient "rag-assistant/internal/platform/mysql"
	"rag-assistant/internal/platform/pinecone"
	rabbitmqClient "rag-assistant/internal/platform/rabbitmq"
	redisClient "rag-assistant/internal/platform/redis"
	"rag-assistant/internal/repository"
	"rag-assistant/internal/worker"
)

type App struct {
	Config      *config.Config
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	AuditWorker *worker.IngestAuditWorker
	AI          *ai.Client
	Pinecone    *pinecone.Client

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.Document{}, &model.IngestionRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	auditRepo := repository.NewIngestionRecordRepository(mysqlDB)
	auditWorker := worker.NewIngestAuditWorker(mqConn, auditRepo, cfg.RabbitMQ.IngestAuditQueue)
	if err := auditWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start ingest audit worker failed: %w", err)
	}

	aiClient := ai.NewClient(ai.Config{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.LLM.APIKey,
		ChatModel:      cfg.LLM.ChatModel,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
	})
	pineconeClient := pinecone.New(pinecone.Config{
		Host:      cfg.Pinecone.Host,
		APIKey:    cfg.Pinecone.APIKey,
		Namespace: cfg.Pinecone.Namespace,
	})

	return &App{
		Config:      cfg,
		MySQL:       mysqlDB,
		Redis:       redisCli,
		MQConn:      mqConn,
		AuditWorker: auditWorker,
		AI:          aiClient,
		Pinecone:    pineconeClient,
		StartedAt:   time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.AuditWorker != nil {
		a.AuditWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
