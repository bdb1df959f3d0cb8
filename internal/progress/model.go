package progress

import (
	"errors"
	"time"
)

const dayLayout = "2006-01-02"

var ErrNoExerciseIDs = errors.New("no exercise ids given")

type Set struct {
	ID        string
	Position  int
	Weight    float64
	Reps      int
	IsHardSet bool
}

// Entry is one exercise within a session, with the exercise name and primary
// muscles joined in.
type Entry struct {
	ID             string
	ExerciseID     string
	ExerciseName   string
	PrimaryMuscles []string
	Position       int
	Sets           []Set
}

type Session struct {
	ID        string
	UserID    string
	Name      string
	StartTime time.Time
	EndTime   *time.Time
	Entries   []Entry
}

type DayCount struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}

type DayVolume struct {
	Day    string  `json:"day"`
	Volume float64 `json:"volume"`
}

type MuscleCount struct {
	Muscle string `json:"muscle"`
	Value  int    `json:"value"`
}

type PersonalBest struct {
	ExerciseID string    `json:"exerciseId"`
	Exercise   string    `json:"exercise"`
	Weight     float64   `json:"weight"`
	Date       time.Time `json:"date"`
}
