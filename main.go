package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"highway_inspector/capture"
	"highway_inspector/config"
	"highway_inspector/controllers"
	"highway_inspector/data"
	"highway_inspector/location"
	"highway_inspector/logger"
	"highway_inspector/services"
	"highway_inspector/watermark"

	"github.com/apex/log"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("inspector stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	store, err := data.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	compositor, err := watermark.New(watermark.Config{
		Quality:  cfg.Watermark.Quality,
		Location: cfg.Watermark.Location(),
	})
	if err != nil {
		return err
	}

	var locator location.Locator = location.Unavailable{}
	if cfg.Location.Fixed {
		locator = location.Static{Latitude: cfg.Location.Latitude, Longitude: cfg.Location.Longitude}
	}

	// a nil interface, not a typed nil, when no camera is configured
	var camera capture.Controller
	if cfg.Capture.DeviceDir != "" {
		camera = capture.NewDirSource(cfg.Capture.DeviceDir)
	}

	svc := services.NewPhotoService(services.Options{
		Store:         store,
		Compositor:    compositor,
		Locator:       locator,
		LocateTimeout: cfg.Location.Timeout,
		Camera:        camera,
		Facing:        capture.Facing(cfg.Capture.Facing),
		BackupDir:     cfg.Backup.Dir,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      controllers.NewRouter(svc, cfg.Server.MaxUploadMB<<20),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("starting inspector server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
