package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPorts_Validate(t *testing.T) {
	t.Run("nil project session returns error", func(t *testing.T) {
		ports := &Ports{Review: &mockReviewer{}, Sweep: &mockSweepPipeline{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingProjectSession)
	})

	t.Run("nil reviewer returns error", func(t *testing.T) {
		ports := &Ports{Project: &mockProjectSession{}, Sweep: &mockSweepPipeline{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingReviewer)
	})

	t.Run("nil sweep pipeline returns error", func(t *testing.T) {
		ports := &Ports{Project: &mockProjectSession{}, Review: &mockReviewer{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSweepPipeline)
	})

	t.Run("scan runner is optional", func(t *testing.T) {
		ports := &Ports{
			Project: &mockProjectSession{},
			Review:  &mockReviewer{},
			Sweep:   &mockSweepPipeline{},
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestNewPorts(t *testing.T) {
	project := &mockProjectSession{}
	review := &mockReviewer{}
	sweep := &mockSweepPipeline{}
	scan := &mockScanRunner{}

	ports := NewPorts(project, review, sweep, scan)

	assert.Equal(t, project, ports.Project)
	assert.Equal(t, review, ports.Review)
	assert.Equal(t, sweep, ports.Sweep)
	assert.Equal(t, scan, ports.Scan)
}
