// @title Site Diary API
// @version 1.0
// @description Construction site diaries, photos and the contractor directory with business-card scanning.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sitediary/internal/config"
	"sitediary/internal/domain"
	"sitediary/internal/enrich/gemini"
	"sitediary/internal/handler"
	"sitediary/internal/logger"
	"sitediary/internal/ocr"
	"sitediary/internal/ocr/tesseract"
	"sitediary/internal/ocr/vision"
	"sitediary/internal/parser"
	_ "sitediary/internal/parser/claude"
	_ "sitediary/internal/parser/gemini"
	_ "sitediary/internal/parser/openai"
	"sitediary/internal/port"
	"sitediary/internal/repository/postgres"
	"sitediary/internal/router"
	"sitediary/internal/service"
	s3storage "sitediary/internal/storage/s3"
)

const (
	parserCallTimeout = 45 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	siteRepo := postgres.NewSiteRepo(db)
	diaryRepo := postgres.NewDiaryRepo(db)
	photoRepo := postgres.NewDiaryPhotoRepo(db)
	partnerRepo := postgres.NewPartnerRepo(db)
	usageRepo := postgres.NewUsageRepo(db)

	// Initialize storage
	photoStore, err := s3storage.NewPhotoStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	usageSvc := service.NewUsageService(usageRepo, cfg.Usage.MonthlyLimit)

	recognizer, err := buildRecognizer(ctx, &cfg.OCR, usageSvc)
	if err != nil {
		return err
	}
	contactParser := buildContactParser(&cfg.Parser, usageSvc)

	var enricher port.PartnerEnricher
	if cfg.Enrich.APIKey != "" {
		e, err := gemini.New(ctx, &cfg.Enrich)
		if err != nil {
			return fmt.Errorf("failed to initialize enricher: %w", err)
		}
		defer func() { _ = e.Close() }()
		enricher = e
	} else {
		zl.Warn("main: enrichment disabled, no gemini api key")
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	siteSvc := service.NewSiteService(siteRepo)
	diarySvc := service.NewDiaryService(diaryRepo, photoRepo, siteRepo, photoStore, &cfg.S3)
	partnerSvc := service.NewPartnerService(partnerRepo)
	scanSvc := service.NewScanService(recognizer, contactParser, &cfg.OCR)
	enrichSvc := service.NewEnrichService(enricher, usageSvc)

	r := router.Setup(cfg, zl, authSvc, router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc, userSvc, cfg.JWT),
		User:    handler.NewUserHandler(userSvc),
		Site:    handler.NewSiteHandler(siteSvc),
		Diary:   handler.NewDiaryHandler(diarySvc),
		Partner: handler.NewPartnerHandler(partnerSvc),
		Scan:    handler.NewScanHandler(scanSvc, enrichSvc, cfg.OCR.MaxImageSizeMB*1024*1024),
		Usage:   handler.NewUsageHandler(usageSvc),
		Health:  handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("main: server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	zl.Info("main: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// buildRecognizer assembles the OCR chain: Vision first, then Tesseract when
// compiled in. Every recognizer is metered.
func buildRecognizer(ctx context.Context, cfg *config.OCRConfig, meter port.UsageMeter) (port.TextRecognizer, error) {
	var recognizers []port.TextRecognizer
	var names []string

	if cfg.VisionAPIKey != "" {
		v, err := vision.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vision: %w", err)
		}
		recognizers = append(recognizers, ocr.NewMetered(v, domain.ProviderVision, meter))
		names = append(names, domain.ProviderVision)
	}

	if tesseract.Available {
		t, err := tesseract.New(cfg)
		if err != nil {
			zap.L().Warn("main: tesseract unavailable", zap.Error(err))
		} else {
			recognizers = append(recognizers, ocr.NewMetered(t, domain.ProviderTesseract, meter))
			names = append(names, domain.ProviderTesseract)
		}
	}

	if len(recognizers) == 0 {
		zap.L().Warn("main: no OCR provider configured; card scans will fail")
		return nil, nil
	}
	zap.L().Info("main: OCR chain ready", zap.Strings("providers", names))
	return ocr.NewChain(recognizers, names), nil
}

// buildContactParser assembles the parser chain from the configured AI
// providers, each metered, with the local extractor last when enabled.
func buildContactParser(cfg *config.ParserConfig, meter port.UsageMeter) port.ContactParser {
	var parsers []port.ContactParser
	var names []string

	for _, pc := range cfg.Chain() {
		p, err := parser.NewParser(pc)
		if err != nil {
			zap.L().Warn("main: parser provider skipped", zap.String("provider", pc.Provider), zap.Error(err))
			continue
		}
		parsers = append(parsers, parser.NewMeteredParser(p, pc.Provider, meter))
		names = append(names, pc.Provider)
	}

	if cfg.LocalFallback || len(parsers) == 0 {
		parsers = append(parsers, parser.NewLocalParser())
		names = append(names, domain.ProviderLocal)
	}

	zap.L().Info("main: parser chain ready", zap.Strings("providers", names))
	return parser.NewFallbackParser(parsers, names, parser.WithCallTimeout(parserCallTimeout))
}
