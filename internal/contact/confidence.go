package contact

// DefaultConfidence is the weight given to any field whose pattern matched.
// It signals "a pattern matched", not a calibrated probability.
const DefaultConfidence = 0.9

// Score maps field presence to a confidence weight.
func Score(present bool) float64 {
	if present {
		return DefaultConfidence
	}
	return 0
}

// Level buckets a confidence into the coarse traffic light used by clients.
func Level(confidence float64) string {
	pct := int(confidence*100 + 0.5)
	switch {
	case pct > 90:
		return "high"
	case pct > 70:
		return "medium"
	default:
		return "low"
	}
}
