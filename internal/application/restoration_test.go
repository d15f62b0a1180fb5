package app

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/infrastructure/figure"
	"restoration-lab/internal/infrastructure/noise"
	"restoration-lab/internal/infrastructure/restore"
	"restoration-lab/internal/infrastructure/vision"
)

// countingFilter считает вызовы, чтобы проверить порядок этапов.
type countingFilter struct {
	inner *vision.Filters
	calls int
}

func (f *countingFilter) Mean(img *image.Gray, k int) (*image.Gray, error) {
	f.calls++
	return f.inner.Mean(img, k)
}

func (f *countingFilter) Median(img *image.Gray, k int) (*image.Gray, error) {
	f.calls++
	return f.inner.Median(img, k)
}

func newTestService(filters *countingFilter) *RestorationService {
	renderer := figure.NewGridRenderer()
	renderer.Width, renderer.Height = 4*vg.Inch, 2*vg.Inch
	renderer.DPI = 30

	r := restore.NewRestorer()
	return NewRestorationService(
		vision.NewLoader(0),
		noise.NewGenerator(7),
		filters,
		r,
		r,
		renderer,
	)
}

func smooth(w, h int) *image.Gray {
	img := entity.NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = uint8(60 + x*2 + y)
		}
	}
	return img
}

func TestRestorationService_Run(t *testing.T) {
	filters := &countingFilter{inner: vision.NewFilters()}
	svc := newTestService(filters)
	src := smooth(48, 32)

	report, err := svc.Run(context.Background(), src)
	require.NoError(t, err)
	require.NotEmpty(t, report.ID)
	require.Equal(t, 6, filters.calls)

	want := []string{
		"Original",
		"Gaussian Noise", "Mean Filter (Gaussian)", "Median Filter (Gaussian)", "Inverse Filter (Gaussian)",
		"Salt & Pepper Noise", "Mean Filter (S&P)", "Median Filter (S&P)",
	}
	if diff := cmp.Diff(want, report.Titles()); diff != "" {
		t.Fatalf("panel titles mismatch (-want +got):\n%s", diff)
	}

	for _, p := range report.Panels {
		require.NotNil(t, p.Image, p.Title)
		require.Equal(t, src.Bounds(), p.Image.Bounds(), p.Title)
	}
	require.NotNil(t, report.SaltPepper.Inverse)
	require.NotNil(t, report.Speckle.Median)
	require.Len(t, report.Quality, 12)
}

func TestRestorationService_MedianBeatsSaltAndPepper(t *testing.T) {
	svc := newTestService(&countingFilter{inner: vision.NewFilters()})

	report, err := svc.Run(context.Background(), smooth(64, 64))
	require.NoError(t, err)

	noisy := report.Quality[entity.TitleSaltPepperNoise]
	median := report.Quality[entity.TitleSaltPepperMedian]
	require.Greater(t, median.PSNR, noisy.PSNR)
	require.Less(t, median.MSE, noisy.MSE)
}

func TestRestorationService_DoesNotMutateInput(t *testing.T) {
	svc := newTestService(&countingFilter{inner: vision.NewFilters()})
	src := smooth(16, 16)
	orig := entity.CloneRaster(src)

	_, err := svc.Run(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, orig.Pix, src.Pix)
}

func TestRestorationService_MissingFileStopsBeforeFiltering(t *testing.T) {
	filters := &countingFilter{inner: vision.NewFilters()}
	svc := newTestService(filters)

	_, err := svc.RunFile(context.Background(), filepath.Join(t.TempDir(), "Sample_image.jpg"))
	require.ErrorIs(t, err, entity.ErrImageNotFound)
	require.Zero(t, filters.calls)
}

func TestRestorationService_RunBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, smooth(20, 10)))

	svc := newTestService(&countingFilter{inner: vision.NewFilters()})
	report, err := svc.RunBytes(context.Background(), buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 20, 10), report.Original.Bounds())

	_, err = svc.RunBytes(context.Background(), []byte("junk"))
	require.ErrorIs(t, err, entity.ErrImageDecode)
}

func TestRestorationService_Cancelled(t *testing.T) {
	filters := &countingFilter{inner: vision.NewFilters()}
	svc := newTestService(filters)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, smooth(8, 8))
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, filters.calls)
}

func TestRestorationService_EmptyImage(t *testing.T) {
	svc := newTestService(&countingFilter{inner: vision.NewFilters()})
	_, err := svc.Run(context.Background(), entity.NewRaster(0, 0))
	require.Error(t, err)
}

func TestRestorationService_RenderReport(t *testing.T) {
	svc := newTestService(&countingFilter{inner: vision.NewFilters()})
	report, err := svc.Run(context.Background(), smooth(24, 16))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.RenderReport(report, &buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 120, img.Bounds().Dx())
	require.Equal(t, 60, img.Bounds().Dy())
}
