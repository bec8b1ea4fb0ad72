package traits

import (
	"log/slog"

	"github.com/hoofbeat/lineage/config"
)

// Task identifies one eligible caregiving task type.
type Task string

const (
	TaskGrooming        Task = "grooming"
	TaskGroundwork      Task = "groundwork"
	TaskDesensitization Task = "desensitization"
	TaskTurnout         Task = "turnout"
	TaskHandFeeding     Task = "hand_feeding"
	TaskLeadTraining    Task = "lead_training"
)

// influenceProfile lists the traits a task type pushes toward and away from.
type influenceProfile struct {
	Encouraged  []Trait
	Discouraged []Trait
}

// taskInfluence statically associates each task type with its encouraged and
// discouraged traits.
var taskInfluence = map[Task]influenceProfile{
	TaskGrooming: {
		Encouraged:  []Trait{PeopleOriented},
		Discouraged: []Trait{Spooky},
	},
	TaskGroundwork: {
		Encouraged:  []Trait{QuickLearner, SteadyNerves},
		Discouraged: []Trait{Stubborn},
	},
	TaskDesensitization: {
		Encouraged:  []Trait{Brave},
		Discouraged: []Trait{Spooky, Bolter},
	},
	TaskTurnout: {
		Encouraged:  []Trait{SureFooted},
		Discouraged: []Trait{BarnSour, Cribbing},
	},
	TaskHandFeeding: {
		Encouraged:  []Trait{PeopleOriented, EasyKeeper},
		Discouraged: []Trait{HardKeeper},
	},
	TaskLeadTraining: {
		Encouraged:  []Trait{QuickLearner},
		Discouraged: []Trait{Bolter, Stubborn},
	},
}

// KnownTask reports whether the task type participates in trait influence.
func KnownTask(t Task) bool {
	_, ok := taskInfluence[t]
	return ok
}

// Counters accumulates signed influence per trait for one animal. Positive
// values push toward fixing the trait as positive, negative values toward
// negative.
type Counters map[Trait]int

// Clone deep-copies the counters.
func (c Counters) Clone() Counters {
	out := make(Counters, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// FixedTrait is one trait made permanent by an accumulation step.
type FixedTrait struct {
	Trait      Trait
	Category   Category
	Epigenetic bool
}

// TaskResult is the full outcome of one accumulation step.
type TaskResult struct {
	Counters Counters
	Set      Set
	Fixed    []FixedTrait
}

// ApplyTask runs one caregiving interaction through the influence
// accumulator. It is a pure transition over (age, task, counters, set): the
// inputs are not mutated, and no I/O happens here. Callers persist the
// returned state and must serialize concurrent tasks for the same animal
// themselves.
//
// Every encouraged trait's counter rises by one and every discouraged
// trait's falls by one. A counter reaching the permanence threshold fixes
// the trait into the matching visible set (positive for increments, negative
// for decrements), clears the counter, and removes the trait from hidden if
// it was waiting there. Traits fixed before the developmental cutoff carry
// the epigenetic marker. Already-visible traits are skipped entirely so a
// permanent trait can never duplicate.
func ApplyTask(ageDays int, task Task, counters Counters, set Set, tun config.TuningConfig) TaskResult {
	result := TaskResult{
		Counters: counters.Clone(),
		Set:      set.Clone(),
	}

	profile, ok := taskInfluence[task]
	if !ok {
		slog.Warn("task_type_uninfluential", "task", task)
		return result
	}

	for _, t := range profile.Encouraged {
		result = step(result, t, +1, ageDays, tun)
	}
	for _, t := range profile.Discouraged {
		result = step(result, t, -1, ageDays, tun)
	}
	return result
}

// step applies one signed unit of influence to a single trait.
func step(result TaskResult, t Trait, delta, ageDays int, tun config.TuningConfig) TaskResult {
	if result.Set.Visible(t) {
		// Already permanent; drop any stale counter and move on.
		delete(result.Counters, t)
		return result
	}

	c := result.Counters[t] + delta

	threshold := tun.PermanenceThreshold
	if threshold <= 0 || (c < threshold && c > -threshold) {
		result.Counters[t] = clampCounter(c, threshold)
		return result
	}

	// Threshold reached: the trait fixes permanently.
	cat := Positive
	if c < 0 {
		cat = Negative
	}
	epigenetic := ageDays < tun.EpigeneticCutoffDays

	result.Set = result.Set.Add(t, cat, epigenetic)
	delete(result.Counters, t)
	result.Fixed = append(result.Fixed, FixedTrait{Trait: t, Category: cat, Epigenetic: epigenetic})
	return result
}

// clampCounter keeps a counter within the threshold ceiling. The accumulator
// never needs magnitudes beyond the fixing point.
func clampCounter(c, threshold int) int {
	if threshold <= 0 {
		return c
	}
	if c > threshold {
		return threshold
	}
	if c < -threshold {
		return -threshold
	}
	return c
}
