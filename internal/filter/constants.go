package filter

// Gaussian kernel design constants.
const (
	// Kernels up to this size with a non-positive sigma use the fixed
	// binomial tables instead of sampling exp().
	maxFixedKernelSize = 7

	// Sigma derived from kernel size when none is given:
	// sigma = ((size-1)*0.5 - 1)*0.3 + 0.8
	autoSigmaScale  = 0.3
	autoSigmaOffset = 0.8

	// Kernel size derived from sigma for float images: round(sigma*4*2+1)|1.
	sigmaRadiusFactor = 4

	// Kernels are symmetric around their centre tap.
	halfDivisor = 2
)

// fixedGaussianKernels are the binomial kernels used for small sizes.
var fixedGaussianKernels = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// Canny constants.
const (
	// cannyShift is the fixed-point shift used for the sector test.
	cannyShift = 15

	// cannyTan22 is tan(22.5°) in cannyShift fixed point, rounded.
	cannyTan22 = 13573

	// Map states during non-maximum suppression and hysteresis.
	cannyCandidate = 0
	cannyNotEdge   = 1
	cannyEdge      = 2
)
