package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/platforming/shared/geom"
)

func TestQueryByOverlap(t *testing.T) {
	s := New(10, 5)
	death := s.Add("death", geom.NewRect(0, 4, 10, 1), 0)
	cp := s.Add("checkpoint", geom.NewRect(3, 1, 1, 2), 7)

	hits := s.Query(geom.NewRect(3.2, 2, 0.5, 0.5))
	require.Len(t, hits, 1)
	assert.Same(t, cp, hits[0])
	assert.Equal(t, 7, hits[0].ID)

	// Same cells, no overlap.
	assert.Empty(t, s.Query(geom.NewRect(4, 1.5, 0.5, 0.5)))

	hits = s.Query(geom.NewRect(2.5, 2.5, 2, 2))
	assert.Equal(t, []*Zone{death, cp}, hits)
}

func TestQueryFiltersKinds(t *testing.T) {
	s := New(4, 4)
	s.Add("death", geom.NewRect(0, 0, 4, 4), 0)
	finish := s.Add("finish", geom.NewRect(1, 1, 1, 1), 0)

	probe := geom.NewRect(1.25, 1.25, 0.5, 0.5)
	assert.Len(t, s.Query(probe), 2)
	assert.Equal(t, []*Zone{finish}, s.Query(probe, "finish"))
	assert.Empty(t, s.Query(probe, "checkpoint"))
}

func TestZonesOutsideSpace(t *testing.T) {
	s := New(6, 3)
	pit := s.Add("death", geom.NewRect(-2, 5, 10, 2), 0)

	assert.Empty(t, s.Query(geom.NewRect(1, 1, 1, 1)))
	assert.Equal(t, []*Zone{pit}, s.Query(geom.NewRect(1, 5.5, 1, 1)))
}

func TestRemove(t *testing.T) {
	s := New(3, 3)
	a := s.Add("checkpoint", geom.NewRect(0, 0, 1, 1), 1)
	b := s.Add("checkpoint", geom.NewRect(0, 0, 1, 1), 2)

	s.Remove(a)
	assert.Equal(t, []*Zone{b}, s.Zones())
	assert.Equal(t, []*Zone{b}, s.Query(geom.NewRect(0.2, 0.2, 0.5, 0.5)))
}
