package config

import (
	"os"
	"strconv"
	"time"
)

// Spawn is a fixed starting cell for a player slot.
type Spawn struct {
	X int
	Y int
}

type Config struct {
	HTTPAddr  string
	StaticDir string

	GridWidth  int
	GridHeight int

	MatchDuration time.Duration
	TickInterval  time.Duration

	BonePoints int
	PoopPoints int

	MaxItems          int
	ItemSpawnInterval time.Duration
	BoneSpawnRate     float64

	PlayerSpawns [2]Spawn
	PlayerColors [2]string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":3000"),
		StaticDir: getenv("STATIC_DIR", ""),

		GridWidth:  getenvInt("GRID_WIDTH", 10),
		GridHeight: getenvInt("GRID_HEIGHT", 10),

		MatchDuration: time.Duration(getenvInt("GAME_DURATION", 120)) * time.Second,
		TickInterval:  time.Duration(getenvInt("TICK_RATE", 50)) * time.Millisecond,

		BonePoints: getenvInt("BONE_POINTS", 10),
		PoopPoints: getenvInt("POOP_POINTS", -5),

		MaxItems:          getenvInt("MAX_ITEMS", 5),
		ItemSpawnInterval: time.Duration(getenvInt("ITEM_SPAWN_INTERVAL", 2500)) * time.Millisecond,
		BoneSpawnRate:     getenvFloat("BONE_SPAWN_RATE", 0.7),

		PlayerSpawns: [2]Spawn{{X: 1, Y: 1}, {X: 8, Y: 8}},
		PlayerColors: [2]string{"#FFB6D9", "#C9A9E9"},
	}
}
