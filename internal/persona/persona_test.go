package persona

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendy-app/spendy/internal/gemini"
	"github.com/spendy-app/spendy/internal/model"
)

func TestLookup(t *testing.T) {
	t.Run("every category has a profile", func(t *testing.T) {
		for _, c := range append(model.Categories(), model.CategoryUnknown) {
			profile := Lookup(c.String())
			assert.NotEmpty(t, profile.Name, "category %s", c)
			assert.NotEmpty(t, profile.IconPrompt, "category %s", c)
			assert.NotEmpty(t, profile.Color, "category %s", c)
			assert.NotEmpty(t, profile.Tips, "category %s", c)
		}
	})

	t.Run("rusher sentinel has its own profile", func(t *testing.T) {
		profile := Lookup(model.PersonaRusher)
		assert.Equal(t, "생각없는 직진가", profile.Name)
	})

	t.Run("unrecognized label falls back to unknown", func(t *testing.T) {
		fallback := Lookup("정체불명의 페르소나")
		assert.Equal(t, Lookup(model.CategoryUnknown.String()), fallback)
	})
}

func TestFetchIcons(t *testing.T) {
	ctx := context.Background()

	t.Run("one icon per distinct label", func(t *testing.T) {
		generator := &gemini.MockIconGenerator{
			GenerateFunc: func(_ context.Context, prompt, _ string) (string, error) {
				return "data:image/png;base64,icon-" + prompt, nil
			},
		}

		icons := FetchIcons(ctx, generator, []string{"식비", "쇼핑", "식비"})
		require.Len(t, icons, 2)
		assert.Equal(t, "식비", icons[0].Label)
		assert.Equal(t, "쇼핑", icons[1].Label)
		assert.Equal(t, 2, generator.Calls)
	})

	t.Run("one failure does not block the others", func(t *testing.T) {
		generator := &gemini.MockIconGenerator{
			GenerateFunc: func(_ context.Context, prompt, _ string) (string, error) {
				if prompt == Lookup("쇼핑").IconPrompt {
					return "", errors.New("generation failed")
				}
				return "data:image/png;base64,ok", nil
			},
		}

		icons := FetchIcons(ctx, generator, []string{"식비", "쇼핑", "주거"})
		require.Len(t, icons, 3)
		assert.False(t, icons[0].Failed)
		assert.True(t, icons[1].Failed)
		assert.Empty(t, icons[1].Ref)
		assert.False(t, icons[2].Failed)
		assert.NotEmpty(t, icons[2].Ref)
	})

	t.Run("no labels yields no icons", func(t *testing.T) {
		icons := FetchIcons(ctx, &gemini.MockIconGenerator{}, nil)
		assert.Empty(t, icons)
	})
}
