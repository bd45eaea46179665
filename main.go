package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/docuverify/ocr-property-verification/client"
	"github.com/docuverify/ocr-property-verification/config"
	"github.com/docuverify/ocr-property-verification/handler"
	"github.com/docuverify/ocr-property-verification/logger"
	"github.com/docuverify/ocr-property-verification/repository"
	"github.com/docuverify/ocr-property-verification/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	// Tesseract v5 resolves its data path from the environment.
	os.Setenv("TESSDATA_PREFIX", cfg.OCR.TessdataPrefix)

	db, err := repository.Connect(cfg.Database.Postgres.GetDSN(),
		cfg.Database.Postgres.MaxConnections, cfg.Database.Postgres.MaxIdle)
	if err != nil {
		log.Error("failed to connect to postgres", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	rdb, err := repository.ConnectRedis(ctx, cfg.Database.Redis.Address,
		cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err != nil {
		log.Error("failed to connect to redis", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer rdb.Close()

	tesseractClient := client.NewTesseractClient(cfg.OCR.TessdataPrefix, cfg.OCR.Language)
	pdfProcessor := service.NewPDFProcessor()

	documentService := service.NewDocumentService(tesseractClient, pdfProcessor, log)

	repo := repository.NewPostgresRepository(db)
	cachedRefs := repository.NewCachedReferenceLookup(repo, rdb,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)

	verificationService := service.NewVerificationService(documentService, cachedRefs, repo, log)
	verificationHandler := handler.NewVerificationHandler(verificationService, log)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.Server.MaxUploadSizeBytes

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "OCR Property Verification",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		verification := api.Group("/verification")
		{
			verification.POST("/verify", verificationHandler.Verify)
		}
	}

	log.Info("starting OCR property verification service", map[string]interface{}{
		"port": cfg.Server.Port,
	})
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Error("server exited", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
