package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"car-persona-ai-bot/internal/persona"
)

func samplePersona() persona.Persona {
	return persona.Persona{
		Verdict: persona.Verdict{
			CarReview:       "A spaceship with cupholders.",
			OwnerWealthHint: "Solar panels paid for themselves.",
		},
		Lifestyle: persona.Lifestyle{
			Playlist:      "Synthwave",
			WeekendHaunts: "Charging stations",
			InstagramFeed: "Autopilot timelapses",
		},
		Vibe: persona.Vibe{
			FashionStyle: "Tech vest",
			CarScent:     "New electronics",
			GoToCoffee:   "Oat milk flat white",
		},
		MemeIndex: persona.MemeIndex{ShowOff: 4, Reckless: 2, Jealousy: 5, Success: 4, Family: 3},
	}
}

func TestFormatAnalysis(t *testing.T) {
	p := samplePersona()
	a := persona.Analysis{
		IsCar: true,
		Candidates: []persona.CarCandidate{
			{Model: "Tesla Model X", Confidence: 85, PriceRange: "$80k-$110k", ReleasePeriod: "2015-present", Features: "Falcon doors"},
			{Model: "Tesla Model Y", Confidence: 40},
		},
		Verdict:   &p.Verdict,
		Lifestyle: &p.Lifestyle,
		Vibe:      &p.Vibe,
		MemeIndex: &p.MemeIndex,
	}

	out := formatAnalysis(a)

	assert.Contains(t, out, "Tesla Model X (85% sure)")
	assert.Contains(t, out, "Could also be: Tesla Model Y (40%)")
	assert.Contains(t, out, "$80k-$110k")
	assert.Contains(t, out, "Falcon doors")
	assert.Contains(t, out, "A spaceship with cupholders.")
	assert.Contains(t, out, "Oat milk flat white")
	assert.Contains(t, out, "■■■■□")
	assert.Contains(t, out, "■■□□□")
	assert.Contains(t, out, "■■■■■")
}

func TestFormatPersona(t *testing.T) {
	out := formatPersona("Honda Civic", samplePersona())

	assert.True(t, strings.HasPrefix(out, "🎲 Another take on the Honda Civic owner:"))
	assert.Contains(t, out, "Synthwave")
	assert.Contains(t, out, "Meme index")
}

func TestScoreBarClamps(t *testing.T) {
	assert.Equal(t, "■□□□□", scoreBar(0))
	assert.Equal(t, "■□□□□", scoreBar(1))
	assert.Equal(t, "■■■□□", scoreBar(3))
	assert.Equal(t, "■■■■■", scoreBar(5))
	assert.Equal(t, "■■■■■", scoreBar(9))
}
