package multistep

// constantCoefficients returns the classic Adams–Bashforth weights for
// uniform steps at the given order, newest sample first. Irregular
// stencils derive their weights from the actual sample times instead;
// this table anchors the uniform limit (the Lagrange derivation must
// reproduce it) and the stability bound.
func constantCoefficients(order int) []float64 {
	switch order {
	case 1:
		return []float64{1}
	case 2:
		return []float64{3 / 2.0, -1 / 2.0}
	case 3:
		return []float64{23 / 12.0, -16 / 12.0, 5 / 12.0}
	case 4:
		return []float64{55 / 24.0, -59 / 24.0, 37 / 24.0, -9 / 24.0}
	case 5:
		return []float64{
			1901 / 720.0, -2774 / 720.0, 2616 / 720.0, -1274 / 720.0, 251 / 720.0,
		}
	case 6:
		return []float64{
			4277 / 1440.0, -7923 / 1440.0, 9982 / 1440.0, -7298 / 1440.0,
			2877 / 1440.0, -475 / 1440.0,
		}
	case 7:
		return []float64{
			198721 / 60480.0, -447288 / 60480.0, 705549 / 60480.0,
			-688256 / 60480.0, 407139 / 60480.0, -134472 / 60480.0,
			19087 / 60480.0,
		}
	case 8:
		return []float64{
			434241 / 120960.0, -1152169 / 120960.0, 2183877 / 120960.0,
			-2664477 / 120960.0, 2102243 / 120960.0, -1041723 / 120960.0,
			295767 / 120960.0, -36799 / 120960.0,
		}
	default:
		panic(ErrBadOrder)
	}
}
