package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"restoration-lab/internal/domain/entity"
)

func flat(w, h int, v uint8) *image.Gray {
	img := entity.NewRaster(w, h)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestFilters_PreserveShape(t *testing.T) {
	f := NewFilters()
	src := flat(17, 11, 90)
	src.Pix[5] = 3

	mean, err := f.Mean(src, 3)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), mean.Bounds())

	median, err := f.Median(src, 5)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), median.Bounds())
}

func TestFilters_FlatImageUnchanged(t *testing.T) {
	f := NewFilters()
	src := flat(9, 9, 77)

	mean, err := f.Mean(src, 3)
	require.NoError(t, err)
	require.Equal(t, src.Pix, mean.Pix)

	median, err := f.Median(src, 3)
	require.NoError(t, err)
	require.Equal(t, src.Pix, median.Pix)
}

func TestMedian_RemovesImpulses(t *testing.T) {
	f := NewFilters()
	src := flat(10, 10, 100)
	src.SetGray(2, 2, colorGray(255))
	src.SetGray(7, 5, colorGray(0))
	src.SetGray(0, 9, colorGray(255))

	out, err := f.Median(src, 3)
	require.NoError(t, err)
	for _, v := range out.Pix {
		require.Equal(t, uint8(100), v)
	}
}

func TestMean_AveragesWindow(t *testing.T) {
	f := NewFilters()
	src := flat(5, 5, 0)
	src.SetGray(2, 2, colorGray(90))

	out, err := f.Mean(src, 3)
	require.NoError(t, err)
	require.Equal(t, uint8(10), out.GrayAt(2, 2).Y)
	require.Equal(t, uint8(10), out.GrayAt(1, 1).Y)
	require.Equal(t, uint8(0), out.GrayAt(0, 0).Y)
}

func TestMean_ReflectsBorder(t *testing.T) {
	f := NewFilters()
	src := flat(3, 1, 0)
	src.SetGray(1, 0, colorGray(30))

	// строка 0 30 0; для x=0 окно отражается в 30 0 30
	out, err := f.Mean(src, 3)
	require.NoError(t, err)
	require.Equal(t, uint8(20), out.GrayAt(0, 0).Y)
	require.Equal(t, uint8(10), out.GrayAt(1, 0).Y)
}

func TestFilters_KernelValidation(t *testing.T) {
	f := NewFilters()
	src := flat(4, 4, 1)

	for _, k := range []int{0, -3, 2, 4} {
		_, err := f.Mean(src, k)
		require.ErrorIs(t, err, entity.ErrKernelSize)

		_, err = f.Median(src, k)
		require.ErrorIs(t, err, entity.ErrKernelSize)
	}
}
