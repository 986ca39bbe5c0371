package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/stemsi/rollcall/internal/config"
	"github.com/stemsi/rollcall/internal/logger"
	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/service"
)

var names = []string{
	"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
	"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
	"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
	"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
	"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Umi Kalsum", "Vina Panduwinata",
	"Wahyu Hidayat", "Xena Maharani", "Yudi Pratama", "Zaki Anwar", "Alifia Zahra",
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	var (
		path  string
		count int
		force bool
	)
	flag.StringVar(&path, "path", cfg.RosterPath, "Where to write the roster")
	flag.IntVar(&count, "n", len(names), "Number of entries")
	flag.BoolVar(&force, "force", false, "Overwrite an existing roster file")
	flag.Parse()

	if _, err := os.Stat(path); err == nil && !force {
		log.Fatal().Str("path", path).Msg("Roster already exists, pass -force to overwrite")
	}

	data, err := seedRoster(count)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build roster")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write roster")
	}

	fmt.Printf("Seed completed! Wrote %d entries to %s\n", count, path)
}

// seedRoster builds a roster JSON document with n entries. Names repeat
// once the list runs out; the roster accepts duplicates.
func seedRoster(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("entry count must not be negative, got %d", n)
	}

	entries := make([]model.RosterEntry, n)
	for i := range entries {
		entries[i] = model.RosterEntry{
			Name:         names[i%len(names)],
			RollNo:       fmt.Sprintf("%d", i+1),
			EnrollmentNo: fmt.Sprintf("ENR%05d", i+1),
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, err
	}

	// The file must load exactly as the server will load it.
	if _, err := service.ParseRoster(data); err != nil {
		return nil, err
	}
	return data, nil
}
