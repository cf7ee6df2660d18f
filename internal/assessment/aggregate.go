package assessment

import "github.com/spacesedan/echomind/internal/models"

// Aggregate reduces per-sentence results to the dominant label and the mean
// confidence percentage, rounded to two decimals. The dominant label is the
// most frequent one; ties go to whichever comes first in models.Labels
// (POSITIVE, then NEGATIVE, then NEUTRAL). With no results it reports
// NEUTRAL, 0 and ok=false.
func Aggregate(results []models.SentenceResult) (label models.Label, confidence float64, ok bool) {
	if len(results) == 0 {
		return models.LabelNeutral, 0, false
	}

	counts := make(map[models.Label]int, len(models.Labels))
	var sum float64
	for _, r := range results {
		counts[r.Label]++
		sum += r.Percent()
	}

	label = models.Labels[0]
	for _, l := range models.Labels[1:] {
		if counts[l] > counts[label] {
			label = l
		}
	}

	return label, models.RoundTo(sum/float64(len(results)), 2), true
}
