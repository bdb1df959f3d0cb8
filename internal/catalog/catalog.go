// Package catalog loads the global exercise library from YAML and seeds it into the store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/2beens/liftlog/internal/exercises"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type File struct {
	Exercises []Entry `yaml:"exercises"`
}

type Entry struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Category         string   `yaml:"category"`
	Equipment        string   `yaml:"equipment"`
	PrimaryMuscles   []string `yaml:"primary_muscles"`
	SecondaryMuscles []string `yaml:"secondary_muscles"`
	Instructions     string   `yaml:"instructions"`
}

func (e Entry) toExercise() exercises.Exercise {
	return exercises.Exercise{
		ID:               e.ID,
		Name:             e.Name,
		Category:         e.Category,
		Equipment:        e.Equipment,
		PrimaryMuscles:   e.PrimaryMuscles,
		SecondaryMuscles: e.SecondaryMuscles,
		Instructions:     e.Instructions,
	}.Normalized()
}

// Parse reads a YAML catalog and validates every entry. All problems found are
// reported together.
func Parse(r io.Reader) ([]exercises.Exercise, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidCatalog, err)
	}
	if len(f.Exercises) == 0 {
		return nil, fmt.Errorf("%w: no exercises", ErrInvalidCatalog)
	}

	var (
		validationErr error
		seen          = map[string]int{}
		list          = make([]exercises.Exercise, 0, len(f.Exercises))
	)
	for i, entry := range f.Exercises {
		e := entry.toExercise()
		if e.ID == "" {
			validationErr = multierr.Append(validationErr, fmt.Errorf("exercise #%d [%s]: id not set", i+1, e.Name))
		} else if first, ok := seen[e.ID]; ok {
			validationErr = multierr.Append(validationErr, fmt.Errorf("exercise #%d: duplicate id [%s], first used by #%d", i+1, e.ID, first))
		} else {
			seen[e.ID] = i + 1
		}
		if err := e.Validate(); err != nil {
			validationErr = multierr.Append(validationErr, fmt.Errorf("exercise #%d [%s]: %w", i+1, e.ID, err))
		}
		list = append(list, e)
	}
	if validationErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, validationErr)
	}

	return list, nil
}

func Load(path string) ([]exercises.Exercise, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

type upserter interface {
	UpsertGlobal(ctx context.Context, list []exercises.Exercise) (int, error)
}

// Seed upserts the catalog as global exercises. Existing custom exercises with the
// same id are left untouched.
func Seed(ctx context.Context, repo upserter, list []exercises.Exercise) (int, error) {
	count, err := repo.UpsertGlobal(ctx, list)
	if err != nil {
		return 0, fmt.Errorf("upsert catalog: %w", err)
	}
	log.Infof("catalog seeded with %d exercises", count)
	return count, nil
}
