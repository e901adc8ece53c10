package handlers

import (
	"fmt"
	"strings"

	"car-persona-ai-bot/internal/persona"
)

// formatAnalysis renders a full analysis as a Telegram text message.
func formatAnalysis(a persona.Analysis) string {
	var b strings.Builder

	for i, c := range a.Candidates {
		if i == 0 {
			fmt.Fprintf(&b, "🚗 %s (%d%% sure)\n", c.Model, c.Confidence)
		} else {
			fmt.Fprintf(&b, "🚙 Could also be: %s (%d%%)\n", c.Model, c.Confidence)
		}
		if c.PriceRange != "" {
			fmt.Fprintf(&b, "💰 %s", c.PriceRange)
			if c.ReleasePeriod != "" {
				fmt.Fprintf(&b, " | 📅 %s", c.ReleasePeriod)
			}
			b.WriteString("\n")
		} else if c.ReleasePeriod != "" {
			fmt.Fprintf(&b, "📅 %s\n", c.ReleasePeriod)
		}
		if i == 0 && c.Features != "" {
			fmt.Fprintf(&b, "✨ %s\n", c.Features)
		}
	}

	if a.Verdict != nil && a.Lifestyle != nil && a.Vibe != nil && a.MemeIndex != nil {
		b.WriteString("\n")
		writePersonaBody(&b, persona.Persona{
			Verdict:   *a.Verdict,
			Lifestyle: *a.Lifestyle,
			Vibe:      *a.Vibe,
			MemeIndex: *a.MemeIndex,
		})
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatPersona renders a persona alone, for /again re-spins.
func formatPersona(carModel string, p persona.Persona) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎲 Another take on the %s owner:\n\n", carModel)
	writePersonaBody(&b, p)
	return strings.TrimRight(b.String(), "\n")
}

func writePersonaBody(b *strings.Builder, p persona.Persona) {
	b.WriteString("🎭 Verdict\n")
	fmt.Fprintf(b, "• %s\n", p.Verdict.CarReview)
	fmt.Fprintf(b, "• %s\n\n", p.Verdict.OwnerWealthHint)

	b.WriteString("🎵 Lifestyle\n")
	fmt.Fprintf(b, "• Playlist: %s\n", p.Lifestyle.Playlist)
	fmt.Fprintf(b, "• Weekends: %s\n", p.Lifestyle.WeekendHaunts)
	fmt.Fprintf(b, "• Instagram: %s\n\n", p.Lifestyle.InstagramFeed)

	b.WriteString("🕶 Vibe\n")
	fmt.Fprintf(b, "• Fashion: %s\n", p.Vibe.FashionStyle)
	fmt.Fprintf(b, "• Car scent: %s\n", p.Vibe.CarScent)
	fmt.Fprintf(b, "• Coffee: %s\n\n", p.Vibe.GoToCoffee)

	b.WriteString("📊 Meme index\n")
	fmt.Fprintf(b, "Show-off  %s\n", scoreBar(p.MemeIndex.ShowOff))
	fmt.Fprintf(b, "Reckless  %s\n", scoreBar(p.MemeIndex.Reckless))
	fmt.Fprintf(b, "Jealousy  %s\n", scoreBar(p.MemeIndex.Jealousy))
	fmt.Fprintf(b, "Success   %s\n", scoreBar(p.MemeIndex.Success))
	fmt.Fprintf(b, "Family    %s\n", scoreBar(p.MemeIndex.Family))
}

// scoreBar renders a 1-5 score as filled and empty blocks, clamping values
// the model got wrong.
func scoreBar(score int) string {
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return strings.Repeat("■", score) + strings.Repeat("□", 5-score)
}
