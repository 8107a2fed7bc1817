package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ShimmerConfig holds configuration for the selected-row shimmer
type ShimmerConfig struct {
	Enabled    bool          // off when TUDU_REDUCE_MOTION is set
	Interval   time.Duration // time between frames
	WidthRatio float64       // highlight width relative to the text
	Frames     int           // frames per sweep, pause included
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:    os.Getenv("TUDU_REDUCE_MOTION") == "",
		Interval:   100 * time.Millisecond,
		WidthRatio: 0.25,
		Frames:     24,
	}
}

// Shimmer sweeps a highlight across the selected task name
type Shimmer struct {
	config ShimmerConfig
	frame  int
}

// shimmerTickMsg advances the shimmer by one frame
type shimmerTickMsg struct{}

// NewShimmer creates a shimmer
func NewShimmer(config ShimmerConfig) *Shimmer {
	return &Shimmer{config: config}
}

// Tick schedules the next frame, or nothing when animations are off
func (s *Shimmer) Tick() tea.Cmd {
	if !s.config.Enabled {
		return nil
	}
	return tea.Tick(s.config.Interval, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// Advance moves to the next frame
func (s *Shimmer) Advance() {
	s.frame = (s.frame + 1) % s.config.Frames
}

// Reset restarts the sweep (call when the selection changes)
func (s *Shimmer) Reset() {
	s.frame = 0
}

// Render draws text with the highlight at the current frame
func (s *Shimmer) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	if !s.config.Enabled {
		return accent.Render(text)
	}

	// the sweep covers the text plus a margin on both sides; the last
	// quarter of the frames is the pause between sweeps
	sweepFrames := s.config.Frames * 3 / 4
	margin := float64(len(runes)) * s.config.WidthRatio
	center := -margin + float64(s.frame)*(float64(len(runes))+2*margin)/float64(sweepFrames)
	sigma := math.Max(1, margin/2)

	var b strings.Builder
	for i, r := range runes {
		weight := 0.0
		if s.frame < sweepFrames {
			dx := float64(i) - center
			weight = math.Exp(-(dx * dx) / (2 * sigma * sigma))
		}
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(blend(weight)).Render(string(r)))
	}
	return b.String()
}

// blend mixes the secondary text colour towards a light violet by weight
func blend(weight float64) lipgloss.Color {
	base := [3]float64{177, 184, 199}      // ColorSecondaryText
	highlight := [3]float64{234, 230, 255} // #EAE6FF
	var out [3]int
	for i := range out {
		out[i] = int(base[i]*(1-weight) + highlight[i]*weight)
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", out[0], out[1], out[2]))
}
