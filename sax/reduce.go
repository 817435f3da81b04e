package sax

import "math"

// meanStd returns the mean and population standard deviation of values.
// The deviation pass runs over the already-computed mean rather than the
// sum-of-squares shortcut, which keeps large offsets from cancelling.
func meanStd(values []float64) (mean, std float64) {
	n := float64(len(values))

	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	mean = sum / n

	var sqDev float64
	for i := 0; i < len(values); i++ {
		d := values[i] - mean
		sqDev += d * d
	}

	return mean, math.Sqrt(sqDev / n)
}

// reduceInto z-normalizes values against their own mean and deviation,
// averages them into len(dst) equal segments, and writes the symbol of each
// segment mean into dst. It is the single reduction routine behind both
// Window slides and NewWordFromValues.
//
// Normalization is recomputed from scratch on every call: a window that
// slides by one sample gets fresh statistics, so the same raw segment can
// legitimately change symbol as its context shifts. When the deviation falls
// below StatEps the window is flat and every segment maps to the middle
// region, whatever the raw offsets are.
func reduceInto(values []float64, dst []Symbol, c int) {
	mean, std := meanStd(values)

	if std < StatEps {
		mid := symbolFor(0, c)
		for k := 0; k < len(dst); k++ {
			dst[k] = mid
		}

		return
	}

	seg := len(values) / len(dst)
	segLen := float64(seg)
	for k := 0; k < len(dst); k++ {
		var sum float64
		base := k * seg
		for i := 0; i < seg; i++ {
			sum += values[base+i]
		}
		dst[k] = symbolFor((sum/segLen-mean)/std, c)
	}
}
