package core

type QualityLabel string

const (
	LabelLow    QualityLabel = "Low"
	LabelMedium QualityLabel = "Medium"
	LabelHigh   QualityLabel = "High"
)

// LabelForQuality buckets a quality score: <=5 Low, <=7 Medium, otherwise High.
// It is only applied to training targets; served labels come from the
// classifier.
func LabelForQuality(quality float64) QualityLabel {
	switch {
	case quality <= 5:
		return LabelLow
	case quality <= 7:
		return LabelMedium
	default:
		return LabelHigh
	}
}
