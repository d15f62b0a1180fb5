package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("IMAGE_PATH", "")
	t.Setenv("OUTPUT_PATH", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("MAX_SIDE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Sample_image.jpg", cfg.ImagePath)
	require.Equal(t, "restoration.png", cfg.OutputPath)
	require.Empty(t, cfg.TelegramToken)
	require.Equal(t, 1024, cfg.MaxSide)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("IMAGE_PATH", "in.png")
	t.Setenv("OUTPUT_PATH", "out/grid.png")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("MAX_SIDE", "512")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "in.png", cfg.ImagePath)
	require.Equal(t, "out/grid.png", cfg.OutputPath)
	require.Equal(t, "token", cfg.TelegramToken)
	require.Equal(t, 512, cfg.MaxSide)
}

func TestLoad_InvalidMaxSide(t *testing.T) {
	t.Setenv("MAX_SIDE", "big")
	_, err := Load()
	require.Error(t, err)
}
