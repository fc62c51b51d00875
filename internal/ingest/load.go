package ingest

import (
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/cubelog/internal/model"
)

// Load reads a practice log and normalizes it.
func Load(path string) ([]model.Solve, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	solves, dropped := Normalize(rows)
	if dropped > 0 {
		log.Info().Str("path", path).Int("dropped", dropped).Msg("dropped rows without a usable time")
	}
	log.Debug().Str("path", path).Int("solves", len(solves)).Msg("normalized log")
	return solves, nil
}
