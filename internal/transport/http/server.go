package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "rag-assistant/internal/app"
	"rag-assistant/internal/bootstrap"
	"rag-assistant/internal/cache"
	"rag-assistant/internal/chunker"
	"rag-assistant/internal/platform/rabbitmq"
	"rag-assistant/internal/repository"
	"rag-assistant/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	docRepo := repository.NewDocumentRepository(app.MySQL)
	auditRepo := repository.NewIngestionRecordRepository(app.MySQL)
	publisher := rabbitmq.NewIngestEventPublisher(app.MQConn, app.Config.RabbitMQ.IngestAuditQueue)
	answerCache := cache.NewAnswerCache(app.Redis, time.Duration(app.Config.RAG.AnswerCacheTTLSeconds)*time.Second)

	docService := appsvc.NewDocumentService(
		app.AI,
		app.Pinecone,
		docRepo,
		auditRepo,
		publisher,
		appsvc.IngestOptions{
			Chunker: chunker.Options{
				ChunkSize:    app.Config.Ingest.ChunkSize,
				OverlapSize:  app.Config.Ingest.OverlapSize,
				MinChunkSize: app.Config.Ingest.MinChunkSize,
			},
			BatchSize: app.Config.Ingest.BatchSize,
		},
	)
	ragService := appsvc.NewRAGService(
		app.AI,
		app.Pinecone,
		app.AI,
		answerCache,
		app.Config.RAG.TopK,
		app.Config.RAG.MaxAnswerTokens,
	)

	docHandler := handler.NewDocumentHandler(docService, app.Config.Ingest.UploadDir, app.Config.Ingest.MaxUploadBytes)
	askHandler := handler.NewAskHandler(ragService)

	v1 := router.Group("/api/v1")
	docGroup := v1.Group("/documents")
	docGroup.POST("", docHandler.Create)
	docGroup.POST("/upload", docHandler.Upload)
	docGroup.GET("", docHandler.List)
	docGroup.GET("/:id", docHandler.Get)
	docGroup.GET("/:id/ingestions", docHandler.IngestionHistory)

	v1.POST("/ask", askHandler.Ask)
	v1.POST("/simple-ask", askHandler.SimpleAsk)

	return router
}
