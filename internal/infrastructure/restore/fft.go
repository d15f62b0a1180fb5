package restore

import "gonum.org/v1/gonum/dsp/fourier"

// spectrum — комплексная матрица w x h в построчном порядке.
type spectrum struct {
	w, h int
	data []complex128
}

func newSpectrum(w, h int) *spectrum {
	return &spectrum{w: w, h: h, data: make([]complex128, w*h)}
}

// forward выполняет прямое двумерное БПФ на месте.
func (s *spectrum) forward() {
	s.transform(false)
}

// inverse выполняет обратное двумерное БПФ на месте с нормировкой 1/(w*h).
func (s *spectrum) inverse() {
	s.transform(true)
	scale := complex(1/float64(s.w*s.h), 0)
	for i := range s.data {
		s.data[i] *= scale
	}
}

// transform применяет одномерное БПФ сначала к строкам, затем к столбцам.
// Преобразования gonum не нормированы.
func (s *spectrum) transform(inverse bool) {
	rows := fourier.NewCmplxFFT(s.w)
	for y := 0; y < s.h; y++ {
		line := s.data[y*s.w : (y+1)*s.w]
		if inverse {
			rows.Sequence(line, line)
		} else {
			rows.Coefficients(line, line)
		}
	}

	cols := fourier.NewCmplxFFT(s.h)
	column := make([]complex128, s.h)
	for x := 0; x < s.w; x++ {
		for y := 0; y < s.h; y++ {
			column[y] = s.data[y*s.w+x]
		}
		if inverse {
			cols.Sequence(column, column)
		} else {
			cols.Coefficients(column, column)
		}
		for y := 0; y < s.h; y++ {
			s.data[y*s.w+x] = column[y]
		}
	}
}
