package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/persona"
	"github.com/spendy-app/spendy/internal/session"
)

// FrozenAnalysis rebuilds an Analysis from a snapshot's stored aggregate.
// History views bypass the live engine: the snapshot already carries its
// own frozen persona and totals. Only a snapshot saved without an
// aggregate falls back to recomputing from its records.
func FrozenAnalysis(snap model.Snapshot) model.Analysis {
	if snap.Analysis == nil {
		return session.Compute(snap.Records)
	}

	analysis := model.Analysis{Persona: snap.Persona}
	for _, c := range append(model.Categories(), model.CategoryUnknown) {
		if amount, ok := snap.Analysis[c]; ok {
			analysis.Totals = append(analysis.Totals, model.CategoryTotal{Category: c, Amount: amount})
			analysis.Total += amount
		}
	}
	return analysis
}

// RenderAnalysis renders an analysis result as a styled block: the persona
// headline, per-category totals with share bars, and the persona's saving
// tips.
func RenderAnalysis(analysis model.Analysis) string {
	if analysis.Empty() {
		return InfoStyle.Render("표시할 데이터가 없습니다.")
	}

	profile := persona.Lookup(analysis.Persona)
	personaStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(profile.Color))

	var b strings.Builder
	b.WriteString(personaStyle.Render(fmt.Sprintf("당신의 소비 페르소나: %s", profile.Name)))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(profile.Comment))
	b.WriteString("\n\n")

	for _, t := range analysis.Totals {
		share := 0.0
		if analysis.Total > 0 {
			share = t.Amount / analysis.Total
		}
		bar := strings.Repeat("█", int(share*20+0.5))
		b.WriteString(fmt.Sprintf("%-8s %12.0f원  %s %.0f%%\n",
			t.Category, t.Amount, InfoStyle.Render(bar), share*100))
	}

	b.WriteString(fmt.Sprintf("\n%s %.0f원\n", BoldStyle.Render("총 지출"), analysis.Total))

	if len(profile.Tips) > 0 {
		b.WriteString("\n")
		b.WriteString(BoldStyle.Render("절약 팁"))
		b.WriteString("\n")
		for _, tip := range profile.Tips {
			b.WriteString(SubtleStyle.Render("• " + tip))
			b.WriteString("\n")
		}
	}

	return b.String()
}
