package satradio

// Pre-emphasis FIR tap tables, ported verbatim from the broadcast
// reference implementation's filter.c so ADR/FM sub-carriers stay
// bit-compatible with existing receivers tuned to those curves.
// Each table is 65 double-precision taps for a unity-delay FIR
// (interp=decim=1) run through PolyphaseFIR.

var preemphFlatTaps = []float64{
	0.000000, -0.000793, 0.000318, -0.001297, 0.000756, -0.002084, 0.001341,
	-0.003091, 0.001926, -0.004059, 0.002173, -0.004543, 0.001586, -0.003982,
	-0.000386, -0.001819, -0.004219, 0.002351, -0.010158, 0.008641, -0.018108,
	0.016785, -0.027575, 0.026122, -0.037697, 0.035663, -0.047356, 0.044249,
	-0.055360, 0.050742, -0.060650, 0.054238, 0.937500, 0.054238, -0.060650,
	0.050742, -0.055360, 0.044249, -0.047356, 0.035663, -0.037697, 0.026122,
	-0.027575, 0.016785, -0.018108, 0.008641, -0.010158, 0.002351, -0.004219,
	-0.001819, -0.000386, -0.003982, 0.001586, -0.004543, 0.002173, -0.004059,
	0.001926, -0.003091, 0.001341, -0.002084, 0.000756, -0.001297, 0.000318,
	-0.000793, -0.000000,
}

var preemph50usTaps = []float64{
	0.001234, -0.002637, 0.002903, -0.004810, 0.005412, -0.008091, 0.008855,
	-0.012171, 0.012482, -0.015806, 0.014595, -0.016860, 0.012742, -0.012646,
	0.004202, -0.000532, -0.013336, 0.021334, -0.041037, 0.053332, -0.078322,
	0.093873, -0.122521, 0.139174, -0.168825, 0.183024, -0.210266, 0.214647,
	-0.236618, 0.196560, -0.226183, -0.606600, 2.497308, -0.606600, -0.226183,
	0.196560, -0.236618, 0.214647, -0.210266, 0.183024, -0.168825, 0.139174,
	-0.122521, 0.093873, -0.078322, 0.053332, -0.041037, 0.021334, -0.013336,
	-0.000532, 0.004202, -0.012646, 0.012742, -0.016860, 0.014595, -0.015806,
	0.012482, -0.012171, 0.008855, -0.008091, 0.005412, -0.004810, 0.002903,
	-0.002637, 0.001234,
}

var preemph75usTaps = []float64{
	0.001981, -0.003755, 0.004472, -0.006942, 0.008239, -0.011739, 0.013420,
	-0.017690, 0.018901, -0.022955, 0.022160, -0.024370, 0.019556, -0.017960,
	0.007049, 0.000170, -0.018791, 0.032752, -0.059706, 0.080325, -0.114856,
	0.140480, -0.180353, 0.207455, -0.249292, 0.271550, -0.312119, 0.315065,
	-0.356561, 0.275266, -0.363286, -0.992136, 3.546394, -0.992136, -0.363286,
	0.275266, -0.356561, 0.315065, -0.312119, 0.271550, -0.249292, 0.207455,
	-0.180353, 0.140480, -0.114856, 0.080325, -0.059706, 0.032752, -0.018791,
	0.000170, 0.007049, -0.017960, 0.019556, -0.024370, 0.022160, -0.022955,
	0.018901, -0.017690, 0.013420, -0.011739, 0.008239, -0.006942, 0.004472,
	-0.003755, 0.001981,
}

var preemphJ17Taps = []float64{
	-0.000119, -0.000175, -0.000162, -0.000232, -0.000223, -0.000310, -0.000309,
	-0.000420, -0.000430, -0.000576, -0.000605, -0.000801, -0.000864, -0.001135,
	-0.001253, -0.001644, -0.001860, -0.002446, -0.002844, -0.003776, -0.004531,
	-0.006130, -0.007663, -0.010705, -0.014141, -0.020784, -0.029556, -0.046668,
	-0.072530, -0.124846, -0.211267, -0.400931, 2.279077, -0.400931, -0.211267,
	-0.124846, -0.072530, -0.046668, -0.029556, -0.020784, -0.014141, -0.010705,
	-0.007663, -0.006130, -0.004531, -0.003776, -0.002844, -0.002446, -0.001860,
	-0.001644, -0.001253, -0.001135, -0.000864, -0.000801, -0.000605, -0.000576,
	-0.000430, -0.000420, -0.000309, -0.000310, -0.000223, -0.000232, -0.000162,
	-0.000175, -0.000119,
}
