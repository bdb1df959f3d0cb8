package weightlog

import (
	"errors"
	"time"
)

var (
	ErrInvalidWeight = errors.New("weight must be positive")
	ErrNoWeightLogs  = errors.New("no weight logs")
)

type WeightLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Weight     float64   `json:"weight"`
	RecordedAt time.Time `json:"recordedAt"`
}
