package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// spectralEpsilon keeps log() finite on exact-zero magnitude bins
const spectralEpsilon = 1e-10

// SignalMetrics summarizes loudness, noisiness and spectral shape of a waveform
type SignalMetrics struct {
	DurationSeconds  float64 `json:"duration_seconds"`
	RMSEnergy        float64 `json:"rms_energy"`
	ZeroCrossingRate float64 `json:"zero_crossing_rate"`
	SpectralFlatness float64 `json:"spectral_flatness"`
}

// Extract computes SignalMetrics over the whole waveform as a single block.
// It fails only with ErrInvalidInput.
func Extract(w Waveform) (SignalMetrics, error) {
	if err := w.Validate(); err != nil {
		return SignalMetrics{}, err
	}

	return SignalMetrics{
		DurationSeconds:  w.Duration(),
		RMSEnergy:        rmsEnergy(w.Samples),
		ZeroCrossingRate: zeroCrossingRate(w.Samples),
		SpectralFlatness: spectralFlatness(w.Samples),
	}, nil
}

func rmsEnergy(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// zeroCrossingRate sums |sign(x[i]) - sign(x[i-1])| and divides by 2N.
// A full flip contributes 2, a step through zero contributes 1 on each side.
// The divisor is 2N rather than 2(N-1); the classifier thresholds are
// calibrated against this form so it is kept as is.
func zeroCrossingRate(samples []float64) float64 {
	var sum float64
	prev := sign(samples[0])
	for _, s := range samples[1:] {
		cur := sign(s)
		sum += math.Abs(cur - prev)
		prev = cur
	}
	return sum / (2 * float64(len(samples)))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// spectralFlatness is the Wiener entropy of the one-sided magnitude spectrum:
// geometric mean over arithmetic mean, ~0 for tonal signals and ~1 for noise.
func spectralFlatness(samples []float64) float64 {
	magnitudes := magnitudeSpectrum(samples)

	var logSum, sum float64
	for _, m := range magnitudes {
		logSum += math.Log(m + spectralEpsilon)
		sum += m
	}
	n := float64(len(magnitudes))
	geometricMean := math.Exp(logSum / n)
	arithmeticMean := sum / n

	return geometricMean / (arithmeticMean + spectralEpsilon)
}

// magnitudeSpectrum returns |X[k]| for the N/2+1 non-negative frequency bins
// of the exact N-point DFT.
func magnitudeSpectrum(samples []float64) []float64 {
	if len(samples) == 1 {
		return []float64{math.Abs(samples[0])}
	}

	var coeffs []complex128
	if largestPrimeFactor(len(samples)) <= maxDirectFactor {
		coeffs = fourier.NewFFT(len(samples)).Coefficients(nil, samples)
	} else {
		coeffs = bluestein(samples)[:len(samples)/2+1]
	}

	magnitudes := make([]float64, len(coeffs))
	for i, c := range coeffs {
		magnitudes[i] = cmplx.Abs(c)
	}
	return magnitudes
}

// maxDirectFactor is the largest prime factor handed to the mixed-radix FFT.
// Its cost grows with each factor, so lengths with larger primes go through
// bluestein instead.
const maxDirectFactor = 7

func largestPrimeFactor(n int) int {
	largest := 1
	for p := 2; p*p <= n; p++ {
		for n%p == 0 {
			largest = p
			n /= p
		}
	}
	if n > 1 {
		largest = n
	}
	return largest
}

// bluestein computes the full N-point DFT of x for any N as a circular
// convolution of power-of-two length M >= 2N-1 (chirp-z transform).
func bluestein(x []float64) []complex128 {
	n := len(x)
	m := 1
	for m < 2*n-1 {
		m <<= 1
	}

	// chirp[k] = exp(-i*pi*k^2/n); k^2 is reduced mod 2n to keep the angle small
	chirp := make([]complex128, n)
	for k := range chirp {
		kk := (int64(k) * int64(k)) % int64(2*n)
		chirp[k] = cmplx.Rect(1, -math.Pi*float64(kk)/float64(n))
	}

	a := make([]complex128, m)
	b := make([]complex128, m)
	for k := 0; k < n; k++ {
		a[k] = complex(x[k], 0) * chirp[k]
	}
	b[0] = cmplx.Conj(chirp[0])
	for k := 1; k < n; k++ {
		c := cmplx.Conj(chirp[k])
		b[k] = c
		b[m-k] = c
	}

	fft := fourier.NewCmplxFFT(m)
	fa := fft.Coefficients(nil, a)
	fb := fft.Coefficients(nil, b)
	for i := range fa {
		fa[i] *= fb[i]
	}
	// Sequence is unnormalised
	conv := fft.Sequence(nil, fa)

	scale := complex(1/float64(m), 0)
	out := make([]complex128, n)
	for k := range out {
		out[k] = conv[k] * scale * chirp[k]
	}
	return out
}
