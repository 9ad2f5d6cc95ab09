package main

import (
	"log"

	httpapi "bone-rush/internal/api/http"
	"bone-rush/internal/api/ws"
	"bone-rush/internal/config"
	"bone-rush/internal/room"
	"bone-rush/internal/store"
)

func main() {
	cfg := config.Load()
	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg)
	hub := ws.NewHub(rm)
	r := httpapi.SetupRouter(rm, hub, cfg)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
