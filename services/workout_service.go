package services

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed workouts.yaml
var defaultWorkoutCatalog []byte

const (
	PlanTraining = "training"
	PlanRest     = "rest"
)

type Exercise struct {
	ID         int    `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	PR         string `yaml:"pr" json:"pr"`
	Sets       int    `yaml:"sets" json:"sets"`
	Reps       int    `yaml:"reps" json:"reps"`
	MainMuscle string `yaml:"mainMuscle" json:"mainMuscle"`
	Icon       string `yaml:"icon" json:"icon"`
}

type WorkoutCatalog struct {
	Program     string     `yaml:"program"`
	CycleLength int        `yaml:"cycleLength"`
	Exercises   []Exercise `yaml:"exercises"`
}

// ParseWorkoutCatalog decodes and checks a YAML training plan.
func ParseWorkoutCatalog(data []byte) (*WorkoutCatalog, error) {
	var c WorkoutCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse workout catalog: %w", err)
	}
	if c.CycleLength <= 0 {
		return nil, fmt.Errorf("workout catalog: cycleLength must be positive, got %d", c.CycleLength)
	}
	if len(c.Exercises) == 0 {
		return nil, errors.New("workout catalog: no exercises")
	}
	return &c, nil
}

type Schedule struct {
	Date        time.Time
	Program     string
	CycleDay    int
	CycleLength int
	Progress    int
	Plan        string
	Items       []Exercise
}

type WorkoutService struct {
	catalog *WorkoutCatalog
	start   time.Time
	loc     *time.Location
}

// NewWorkoutService serves the embedded plan with its cycle anchored at
// start. A nil catalog selects the embedded one.
func NewWorkoutService(catalog *WorkoutCatalog, start time.Time, loc *time.Location) (*WorkoutService, error) {
	if loc == nil {
		loc = time.Local
	}
	if catalog == nil {
		c, err := ParseWorkoutCatalog(defaultWorkoutCatalog)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	start, _ = DayWindow(start, loc)
	return &WorkoutService{catalog: catalog, start: start, loc: loc}, nil
}

// calendarDays counts whole calendar days from a to b, ignoring DST shifts.
func calendarDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func (s *WorkoutService) Schedule(day time.Time) Schedule {
	day, _ = DayWindow(day, s.loc)
	n := s.catalog.CycleLength
	offset := calendarDays(s.start, day) % n
	if offset < 0 {
		offset += n
	}
	cycleDay := offset + 1

	sch := Schedule{
		Date:        day,
		Program:     s.catalog.Program,
		CycleDay:    cycleDay,
		CycleLength: n,
		Progress:    int(math.Round(float64(cycleDay) / float64(n) * 100)),
		Plan:        PlanRest,
		Items:       []Exercise{},
	}
	if cycleDay%2 == 1 {
		sch.Plan = PlanTraining
		sch.Items = append(sch.Items, s.catalog.Exercises...)
	}
	return sch
}
