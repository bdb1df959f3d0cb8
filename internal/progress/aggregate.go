package progress

import (
	"sort"
	"strings"
)

// CountSessionsPerDay counts sessions by the calendar day of their start time, in
// the start time's own location. Days without sessions are absent. Sorted by day.
func CountSessionsPerDay(sessions []Session) []DayCount {
	counts := map[string]int{}
	for _, s := range sessions {
		counts[s.StartTime.Format(dayLayout)]++
	}

	out := make([]DayCount, 0, len(counts))
	for day, count := range counts {
		out = append(out, DayCount{Day: day, Value: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day < out[j].Day
	})
	return out
}

// SumVolumePerDay sums weight x reps over every set of every session per day.
// Hard and warm-up sets count the same. Sorted by day.
func SumVolumePerDay(sessions []Session) []DayVolume {
	perDay := map[string][]float64{}
	for _, s := range sessions {
		day := s.StartTime.Format(dayLayout)
		if _, ok := perDay[day]; !ok {
			perDay[day] = []float64{}
		}
		for _, e := range s.Entries {
			for _, set := range e.Sets {
				perDay[day] = append(perDay[day], set.Weight*float64(set.Reps))
			}
		}
	}

	out := make([]DayVolume, 0, len(perDay))
	for day, volumes := range perDay {
		// fixed summation order, so float rounding does not depend on scan order
		sort.Float64s(volumes)
		total := 0.0
		for _, v := range volumes {
			total += v
		}
		out = append(out, DayVolume{Day: day, Volume: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day < out[j].Day
	})
	return out
}

// CountSetsPerMuscle adds the number of sets of each entry to every primary muscle
// of the entry's exercise. Secondary muscles are not counted.
// Sorted by count descending, then by muscle name.
func CountSetsPerMuscle(sessions []Session) []MuscleCount {
	counts := map[string]int{}
	for _, s := range sessions {
		for _, e := range s.Entries {
			for _, muscle := range e.PrimaryMuscles {
				if strings.TrimSpace(muscle) == "" {
					continue
				}
				counts[muscle] += len(e.Sets)
			}
		}
	}

	out := make([]MuscleCount, 0, len(counts))
	for muscle, count := range counts {
		out = append(out, MuscleCount{Muscle: muscle, Value: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Muscle < out[j].Muscle
	})
	return out
}

// FindPersonalBests finds the heaviest single set of each requested exercise, with
// the start time of the session it was lifted in. On equal weights the first set
// in scan order wins. Exercises without any logged set get no record.
// Sorted by weight descending; equal weights keep the requested order.
func FindPersonalBests(sessions []Session, exerciseIDs []string) []PersonalBest {
	wanted := make(map[string]bool, len(exerciseIDs))
	for _, id := range exerciseIDs {
		wanted[id] = true
	}

	best := map[string]PersonalBest{}
	for _, s := range sessions {
		for _, e := range s.Entries {
			if !wanted[e.ExerciseID] {
				continue
			}
			for _, set := range e.Sets {
				pb, ok := best[e.ExerciseID]
				if ok && set.Weight <= pb.Weight {
					continue
				}
				best[e.ExerciseID] = PersonalBest{
					ExerciseID: e.ExerciseID,
					Exercise:   e.ExerciseName,
					Weight:     set.Weight,
					Date:       s.StartTime,
				}
			}
		}
	}

	out := make([]PersonalBest, 0, len(best))
	seen := map[string]bool{}
	for _, id := range exerciseIDs {
		if pb, ok := best[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, pb)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	return out
}

// normalizeExerciseIDs trims and de-duplicates ids, keeping the first occurrence order.
func normalizeExerciseIDs(ids []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
