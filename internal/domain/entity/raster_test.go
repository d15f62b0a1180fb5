package entity

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampByte(t *testing.T) {
	require.Equal(t, uint8(0), ClampByte(-12.5))
	require.Equal(t, uint8(255), ClampByte(300))
	require.Equal(t, uint8(127), ClampByte(127.9))
	require.Equal(t, uint8(0), ClampByte(math.NaN()))
	require.Equal(t, uint8(255), ClampByte(math.Inf(1)))
}

func TestCloneRaster_SubImage(t *testing.T) {
	src := NewRaster(4, 4)
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
	}
	sub := src.SubImage(image.Rect(1, 1, 3, 4)).(*image.Gray)

	dst := CloneRaster(sub)
	require.Equal(t, image.Rect(0, 0, 2, 3), dst.Bounds())
	require.Equal(t, []uint8{5, 6, 9, 10, 13, 14}, dst.Pix)

	dst.Pix[0] = 200
	require.Equal(t, uint8(5), src.Pix[5])
}

func TestSameShape(t *testing.T) {
	require.True(t, SameShape(NewRaster(3, 2), NewRaster(3, 2)))
	require.False(t, SameShape(NewRaster(3, 2), NewRaster(2, 3)))
}

func TestReportTitles(t *testing.T) {
	r := &Report{Panels: []Panel{{Title: TitleOriginal}, {Title: TitleGaussianNoise}}}
	require.Equal(t, []string{TitleOriginal, TitleGaussianNoise}, r.Titles())
}
