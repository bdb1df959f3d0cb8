package exercises

import "sort"

type scoredExercise struct {
	exercise Exercise
	score    int
}

// Rank runs the search pipeline over the candidates, in this order: visibility,
// facet filters, relevance scoring (only with a non-empty query), pagination.
// Without a query the filtered candidates keep their incoming order. With a query,
// exercises scoring 0 are dropped and the rest are sorted by descending score;
// equal scores keep their incoming order.
func Rank(candidates []Exercise, params SearchParams) SearchResult {
	limit, offset := normalizePage(params.Limit, params.Offset)

	matched := make([]Exercise, 0, len(candidates))
	for _, e := range candidates {
		if !e.VisibleTo(params.UserID) || !params.Filters.Match(e) {
			continue
		}
		matched = append(matched, e)
	}

	if q := NormalizeQuery(params.Query); q != "" {
		scored := make([]scoredExercise, 0, len(matched))
		for _, e := range matched {
			if s := Score(e, q); s > 0 {
				scored = append(scored, scoredExercise{exercise: e, score: s})
			}
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].score > scored[j].score
		})

		matched = matched[:0]
		for _, se := range scored {
			matched = append(matched, se.exercise)
		}
	}

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	page := append([]Exercise{}, matched[offset:end]...)

	return SearchResult{
		Exercises: page,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		HasMore:   offset < total && limit < total-offset,
	}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
