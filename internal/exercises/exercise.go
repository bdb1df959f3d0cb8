package exercises

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrNotOwner         = errors.New("exercise not owned by user")
	ErrInvalidExercise  = errors.New("invalid exercise")
	ErrExerciseInUse    = errors.New("exercise is referenced by logged entries or routines")
)

type Exercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Equipment        string   `json:"equipment"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	Instructions     string   `json:"instructions,omitempty"`
	IsCustom         bool     `json:"isCustom"`
	CreatedBy        string   `json:"createdBy,omitempty"`
}

// VisibleTo reports whether the user can see the exercise: global exercises
// are visible to everyone, custom ones only to their owner.
func (e Exercise) VisibleTo(userID string) bool {
	if !e.IsCustom {
		return true
	}
	return userID != "" && e.CreatedBy == userID
}

func (e Exercise) OwnedBy(userID string) bool {
	return e.IsCustom && userID != "" && e.CreatedBy == userID
}

// Normalized returns a copy with trimmed labels and without blank muscle entries.
func (e Exercise) Normalized() Exercise {
	e.ID = strings.TrimSpace(e.ID)
	e.Name = strings.TrimSpace(e.Name)
	e.Category = strings.TrimSpace(e.Category)
	e.Equipment = strings.TrimSpace(e.Equipment)
	e.Instructions = strings.TrimSpace(e.Instructions)
	e.PrimaryMuscles = nonBlank(e.PrimaryMuscles)
	e.SecondaryMuscles = nonBlank(e.SecondaryMuscles)
	return e
}

// Validate checks the fields every exercise must carry. Call on a normalized exercise.
func (e Exercise) Validate() error {
	switch {
	case e.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidExercise)
	case e.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidExercise)
	case e.Equipment == "":
		return fmt.Errorf("%w: equipment is required", ErrInvalidExercise)
	case len(e.PrimaryMuscles) == 0:
		return fmt.Errorf("%w: at least one primary muscle is required", ErrInvalidExercise)
	}
	return nil
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Filters narrow the candidate set before scoring. Zero values mean no constraint.
type Filters struct {
	Muscles   []string
	Category  string
	Equipment string
}

// Match applies the facet filters to the exercise. Category and equipment must
// match exactly (ignoring case); muscles match when any of the given values is
// contained in any primary or secondary muscle entry.
func (f Filters) Match(e Exercise) bool {
	if category := strings.TrimSpace(f.Category); category != "" && !strings.EqualFold(e.Category, category) {
		return false
	}
	if equipment := strings.TrimSpace(f.Equipment); equipment != "" && !strings.EqualFold(e.Equipment, equipment) {
		return false
	}

	muscles := lowerNonBlank(f.Muscles)
	if len(muscles) == 0 {
		return true
	}
	for _, m := range muscles {
		if anyContains(e.PrimaryMuscles, m) || anyContains(e.SecondaryMuscles, m) {
			return true
		}
	}
	return false
}

func lowerNonBlank(values []string) []string {
	out := nonBlank(values)
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}

type SearchParams struct {
	Query   string
	Filters Filters
	UserID  string
	Limit   int
	Offset  int
}

type SearchResult struct {
	Exercises []Exercise `json:"exercises"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	HasMore   bool       `json:"hasMore"`
}
