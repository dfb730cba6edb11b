package engine

import (
	"io"
	"testing"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

// scriptedRand replays fixed values, cycling when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedRand) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedRand) IntN(n int) int {
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

// quietLogs discards log output for the test and restores defaults after.
func quietLogs(t *testing.T) {
	t.Helper()
	logger.Reset()
	logger.SetOutput(io.Discard)
	t.Cleanup(logger.Reset)
}

func opts(values ...string) []domain.Option {
	out := make([]domain.Option, len(values))
	for i, v := range values {
		out[i] = domain.Option{Label: v, Value: v}
	}
	return out
}
