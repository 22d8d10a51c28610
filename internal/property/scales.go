package property

// raw residue scales, normalized into [0,1] by the registry

// Kyte & Doolittle 1982
var kyteDoolittle = map[byte]float64{
	'A': 1.8, 'R': -4.5, 'N': -3.5, 'D': -3.5, 'C': 2.5,
	'Q': -3.5, 'E': -3.5, 'G': -0.4, 'H': -3.2, 'I': 4.5,
	'L': 3.8, 'K': -3.9, 'M': 1.9, 'F': 2.8, 'P': -1.6,
	'S': -0.8, 'T': -0.7, 'W': -0.9, 'Y': -1.3, 'V': 4.2,
}

// Hopp & Woods 1981
var hoppWoods = map[byte]float64{
	'A': -0.5, 'R': 3.0, 'N': 0.2, 'D': 3.0, 'C': -1.0,
	'Q': 0.2, 'E': 3.0, 'G': 0.0, 'H': -0.5, 'I': -1.8,
	'L': -1.8, 'K': 3.0, 'M': -1.3, 'F': -2.5, 'P': 0.0,
	'S': 0.3, 'T': -0.4, 'W': -3.4, 'Y': -2.3, 'V': -1.5,
}

// Grantham 1974
var granthamPolarity = map[byte]float64{
	'A': 8.1, 'R': 10.5, 'N': 11.6, 'D': 13.0, 'C': 5.5,
	'Q': 10.5, 'E': 12.3, 'G': 9.0, 'H': 10.4, 'I': 5.2,
	'L': 4.9, 'K': 11.3, 'M': 5.7, 'F': 5.2, 'P': 8.0,
	'S': 9.2, 'T': 8.6, 'W': 5.4, 'Y': 6.2, 'V': 5.9,
}

// Zimmerman et al. 1968
var zimmermanBulkiness = map[byte]float64{
	'A': 11.50, 'R': 14.28, 'N': 12.82, 'D': 11.68, 'C': 13.46,
	'Q': 14.45, 'E': 13.57, 'G': 3.40, 'H': 13.69, 'I': 21.40,
	'L': 21.40, 'K': 15.71, 'M': 16.25, 'F': 19.80, 'P': 17.43,
	'S': 9.47, 'T': 15.77, 'W': 21.67, 'Y': 18.03, 'V': 21.57,
}

var isoelectricPoint = map[byte]float64{
	'A': 6.00, 'R': 10.76, 'N': 5.41, 'D': 2.77, 'C': 5.07,
	'Q': 5.65, 'E': 3.22, 'G': 5.97, 'H': 7.59, 'I': 6.02,
	'L': 5.98, 'K': 9.74, 'M': 5.74, 'F': 5.48, 'P': 6.30,
	'S': 5.68, 'T': 5.60, 'W': 5.89, 'Y': 5.66, 'V': 5.96,
}

// free amino acid, Da
var molecularWeight = map[byte]float64{
	'A': 89.09, 'R': 174.20, 'N': 132.12, 'D': 133.10, 'C': 121.16,
	'Q': 146.15, 'E': 147.13, 'G': 75.07, 'H': 155.16, 'I': 131.17,
	'L': 131.17, 'K': 146.19, 'M': 149.21, 'F': 165.19, 'P': 115.13,
	'S': 105.09, 'T': 119.12, 'W': 204.23, 'Y': 181.19, 'V': 117.15,
}

// minMax rescales the canonical residues of a raw scale into [0,1].
func minMax(raw map[byte]float64) map[byte]float64 {
	lo, hi := raw[Canonical[0]], raw[Canonical[0]]
	for i := 1; i < len(Canonical); i++ {
		v := raw[Canonical[i]]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make(map[byte]float64, len(Canonical))
	for i := 0; i < len(Canonical); i++ {
		r := Canonical[i]
		if hi == lo {
			out[r] = 0
			continue
		}
		out[r] = (raw[r] - lo) / (hi - lo)
	}
	return out
}
