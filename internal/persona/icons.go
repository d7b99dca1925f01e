package persona

import (
	"context"
	"log/slog"

	"github.com/spendy-app/spendy/internal/service"
)

// Icon is the fetch result for one label. Failed is set when generation
// for that label gave up; the other labels are unaffected.
type Icon struct {
	Label  string
	Ref    string
	Failed bool
}

// FetchIcons generates an icon per distinct label using each label's
// profile prompt and color. A failure for one label marks that entry as
// failed and moves on; a partial icon set is always usable.
func FetchIcons(ctx context.Context, generator service.IconGenerator, labels []string) []Icon {
	seen := make(map[string]bool, len(labels))
	icons := make([]Icon, 0, len(labels))

	for _, label := range labels {
		if seen[label] {
			continue
		}
		seen[label] = true

		profile := Lookup(label)
		ref, err := generator.GenerateIcon(ctx, profile.IconPrompt, profile.Color)
		if err != nil {
			slog.Warn("icon generation failed for label, skipping", "label", label, "error", err)
			icons = append(icons, Icon{Label: label, Failed: true})
			continue
		}
		icons = append(icons, Icon{Label: label, Ref: ref})
	}

	return icons
}
