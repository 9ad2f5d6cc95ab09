package game

import (
	"math"
	"math/rand"

	"bone-rush/internal/config"
)

var defaultDogNames = [2]string{"dog1", "dog2"}

// State is the authoritative simulation for one match. It is not
// goroutine-safe; the owning room serializes all access.
type State struct {
	cfg config.Config
	rng *rand.Rand

	Dogs          [2]*Dog
	Items         []*Item
	Scores        [2]int
	TimeRemaining float64
	GameOver      bool
	Winner        *int

	ticksSinceSpawn int
}

// NewState builds a match with both dogs at their spawn corners and an
// initial batch of items. Missing avatar selections fall back to the
// per-slot default.
func NewState(cfg config.Config, selections map[int]string, seed int64) *State {
	s := &State{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(seed)),
		TimeRemaining: cfg.MatchDuration.Seconds(),
	}
	for i := 0; i < 2; i++ {
		name := selections[i]
		if name == "" {
			name = defaultDogNames[i]
		}
		s.Dogs[i] = &Dog{
			PlayerID: i,
			X:        cfg.PlayerSpawns[i].X,
			Y:        cfg.PlayerSpawns[i].Y,
			Color:    cfg.PlayerColors[i],
			DogName:  name,
		}
	}
	for i := 0; i < cfg.MaxItems; i++ {
		s.spawnItem()
	}
	return s
}

// Tick advances the simulation by one fixed interval. Dogs never move
// on their own; only the timer, collisions and item spawning run here.
func (s *State) Tick() {
	if s.GameOver {
		return
	}

	s.TimeRemaining -= s.cfg.TickInterval.Seconds()
	if s.TimeRemaining <= 0 {
		s.TimeRemaining = 0
		s.GameOver = true
		s.Winner = s.computeWinner()
		return
	}

	s.resolveCollisions()

	s.ticksSinceSpawn++
	elapsed := float64(s.ticksSinceSpawn) * s.cfg.TickInterval.Seconds()
	if elapsed >= s.cfg.ItemSpawnInterval.Seconds() && len(s.Items) < s.cfg.MaxItems {
		s.spawnItem()
		s.ticksSinceSpawn = 0
	}
}

// ApplyInput moves the slot's dog one cell and immediately re-resolves
// collisions, so walking onto an item credits it without waiting for
// the next tick.
func (s *State) ApplyInput(slot int, dir Direction) {
	if s.GameOver || slot < 0 || slot >= len(s.Dogs) {
		return
	}
	s.Dogs[slot].Move(dir, s.cfg.GridWidth, s.cfg.GridHeight)
	s.resolveCollisions()
}

func (s *State) resolveCollisions() {
	for _, dog := range s.Dogs {
		for i := len(s.Items) - 1; i >= 0; i-- {
			item := s.Items[i]
			if dog.X == item.X && dog.Y == item.Y {
				s.Scores[dog.PlayerID] += item.Value
				s.Items = append(s.Items[:i], s.Items[i+1:]...)
				s.spawnItem()
			}
		}
	}
}

// spawnItem places one item on a uniformly random free cell, giving up
// after 100 rejected samples. Exceeding the item cap is a silent no-op.
func (s *State) spawnItem() {
	if len(s.Items) >= s.cfg.MaxItems {
		return
	}

	const maxAttempts = 100
	var x, y int
	for attempts := 0; ; attempts++ {
		if attempts >= maxAttempts {
			return
		}
		x = s.rng.Intn(s.cfg.GridWidth)
		y = s.rng.Intn(s.cfg.GridHeight)
		if !s.occupied(x, y) {
			break
		}
	}

	typ, value := ItemBone, s.cfg.BonePoints
	if s.rng.Float64() >= s.cfg.BoneSpawnRate {
		typ, value = ItemPoop, s.cfg.PoopPoints
	}
	s.Items = append(s.Items, &Item{X: x, Y: y, Type: typ, Value: value})
}

func (s *State) occupied(x, y int) bool {
	for _, dog := range s.Dogs {
		if dog.X == x && dog.Y == y {
			return true
		}
	}
	for _, item := range s.Items {
		if item.X == x && item.Y == y {
			return true
		}
	}
	return false
}

func (s *State) computeWinner() *int {
	var w int
	switch {
	case s.Scores[0] > s.Scores[1]:
		w = 0
	case s.Scores[1] > s.Scores[0]:
		w = 1
	default:
		return nil // tie
	}
	return &w
}

// Snapshot copies the current state into its wire form.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Dogs:          make([]Dog, 0, len(s.Dogs)),
		Items:         make([]Item, 0, len(s.Items)),
		Scores:        s.Scores,
		TimeRemaining: int(math.Max(0, math.Round(s.TimeRemaining))),
		GameOver:      s.GameOver,
		Winner:        s.Winner,
	}
	for _, dog := range s.Dogs {
		snap.Dogs = append(snap.Dogs, *dog)
	}
	for _, item := range s.Items {
		snap.Items = append(snap.Items, *item)
	}
	return snap
}
