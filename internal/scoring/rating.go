package scoring

// vocabularies maps each dimension to its six rating labels, best first.
// Bucket boundaries are shared (RatingThresholds); only the words differ.
var vocabularies = map[string][]string{
	DimensionTransit:    {"Excellent", "Very Good", "Good", "Fair", "Poor", "Very Poor"},
	DimensionEducation:  {"Excellent", "Very Good", "Good", "Average", "Limited", "Poor"},
	DimensionShopping:   {"Excellent", "Very Convenient", "Convenient", "Adequate", "Limited", "Inconvenient"},
	DimensionHealthcare: {"Excellent", "Very Good", "Good", "Adequate", "Limited", "Poor"},
	DimensionRecreation: {"Abundant", "Excellent", "Good", "Adequate", "Limited", "Very Limited"},
	DimensionOverall:    {"Excellent", "Very Good", "Good", "Fair", "Below Average", "Poor"},
}

// Rate maps a 0-100 score to the dimension's qualitative label. Total
// function: any score below the last threshold gets the lowest label,
// and unknown dimensions use the overall vocabulary.
func (c *Config) Rate(score float64, dimension string) string {
	vocab, ok := vocabularies[dimension]
	if !ok {
		vocab = vocabularies[DimensionOverall]
	}
	for i, threshold := range c.RatingThresholds {
		if score >= threshold && i < len(vocab) {
			return vocab[i]
		}
	}
	return vocab[len(vocab)-1]
}
