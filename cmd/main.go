package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"time"

	"restoration-lab/config"
	"restoration-lab/internal/container"
	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// CLI работает с исходным размером изображения
	appContainer := container.New(storage.NewMemoryUserRepository(), 0, uint64(time.Now().UnixNano()))

	report, err := appContainer.RestorationService.RunFile(ctx, cfg.ImagePath)
	if errors.Is(err, entity.ErrImageNotFound) {
		log.Fatalf("Image not found. Please place the image at %q or set IMAGE_PATH", cfg.ImagePath)
	}
	if err != nil {
		log.Fatalf("Restoration failed: %v", err)
	}

	if err := appContainer.Renderer.Save(report.Panels, cfg.OutputPath); err != nil {
		log.Fatalf("Failed to save figure: %v", err)
	}

	for _, p := range report.Panels[1:] {
		q := report.Quality[p.Title]
		log.Printf("%-26s MSE=%8.2f PSNR=%6.2f dB", p.Title, q.MSE, q.PSNR)
	}
	log.Printf("Figure saved to %s", cfg.OutputPath)
}
