// Package smooth filters sequences of fixed-dimension samples.
//
// Each sample is a row of floats; all rows of one sequence must have the same
// length. Functions never modify their input.
package smooth

// Smooth runs MovingAverage followed by Subsample.
func Smooth(rows [][]float64, window, factor int) [][]float64 {
	return Subsample(MovingAverage(rows, window), factor)
}

// MovingAverage averages each row with its neighbours over window rows. The
// sequence is padded with copies of its first and last rows so endpoints do
// not pull towards zero. The result has the same length as rows.
func MovingAverage(rows [][]float64, window int) [][]float64 {
	if window <= 1 || len(rows) == 0 {
		return rows
	}
	dim := len(rows[0])
	before := window / 2
	n := len(rows)

	// csum[k] holds the sum of padded rows 0..k inclusive.
	csum := make([][]float64, n+window)
	acc := make([]float64, dim)
	for k := range csum {
		row := rows[clamp(k-before, n)]
		for d := range acc {
			acc[d] += row[d]
		}
		csum[k] = append([]float64(nil), acc...)
	}

	out := make([][]float64, n)
	w := float64(window)
	for i := range out {
		v := make([]float64, dim)
		for d := range v {
			v[d] = (csum[i+window][d] - csum[i][d]) / w
		}
		out[i] = v
	}
	return out
}

// Subsample replaces each block of factor rows by its mean. A short final
// block is filled up with copies of the last row.
func Subsample(rows [][]float64, factor int) [][]float64 {
	if factor <= 1 || len(rows) == 0 {
		return rows
	}
	dim := len(rows[0])
	n := len(rows)
	blocks := (n + factor - 1) / factor

	out := make([][]float64, blocks)
	f := float64(factor)
	for b := range out {
		v := make([]float64, dim)
		for j := b * factor; j < (b+1)*factor; j++ {
			row := rows[clamp(j, n)]
			for d := range v {
				v[d] += row[d]
			}
		}
		for d := range v {
			v[d] /= f
		}
		out[b] = v
	}
	return out
}

// clamp maps a padded index onto rows [0, n).
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
