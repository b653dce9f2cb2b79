package catalog

import "lothub/pkg/models"

// Summarize reduces one supplier's reviews to displayable aggregates: count,
// full-precision average (rounding is the renderer's job), per-star counts,
// and per-aspect means over the reviews that scored the aspect. Pure and
// order-independent; assumes ratings were validated at creation.
func Summarize(reviews []models.Review) models.ReviewSummary {
	summary := models.ReviewSummary{
		Count:        len(reviews),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	var total int
	var acc, lgs, val, com aspectSum
	for _, rv := range reviews {
		total += rv.Rating
		summary.Distribution[rv.Rating]++
		acc.add(rv.Accuracy)
		lgs.add(rv.Logistics)
		val.add(rv.Value)
		com.add(rv.Communication)
	}

	if summary.Count > 0 {
		avg := float64(total) / float64(summary.Count)
		summary.Average = &avg
	}
	summary.Aspects = models.AspectAverages{
		Accuracy:      acc.mean(),
		Logistics:     lgs.mean(),
		Value:         val.mean(),
		Communication: com.mean(),
	}
	return summary
}

type aspectSum struct {
	total int
	n     int
}

func (a *aspectSum) add(v *int) {
	if v == nil {
		return
	}
	a.total += *v
	a.n++
}

func (a *aspectSum) mean() *float64 {
	if a.n == 0 {
		return nil
	}
	m := float64(a.total) / float64(a.n)
	return &m
}
