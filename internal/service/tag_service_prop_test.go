package service

import (
	"context"
	"strings"
	"testing"

	"github.com/haierkeys/note-tag-service/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propParams() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 30
	return params
}

func TestTagServiceProp_CreateAlwaysRetrievable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	properties := gopter.NewProperties(propParams())

	properties.Property("created tag is retrievable with trimmed name and default color", prop.ForAll(
		func(name string) bool {
			tag, err := env.tags.Create(ctx, "  "+name+" ", "")
			if err != nil {
				return false
			}
			got, err := env.tags.Get(ctx, tag.ID)
			if err != nil {
				return false
			}
			return got.Name == strings.TrimSpace(name) &&
				got.Color == string(domain.ColorGray) &&
				got.NoteCount == 0
		},
		gen.AlphaString().SuchThat(func(s string) bool {
			return strings.TrimSpace(s) != ""
		}),
	))

	properties.TestingRun(t)
}

func TestTagServiceProp_AssociateIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "prop", "")
	if err != nil {
		t.Fatal(err)
	}
	noteID := env.note(t, "prop note")

	properties := gopter.NewProperties(propParams())

	properties.Property("repeated associate never inflates the count", prop.ForAll(
		func(times int) bool {
			for i := 0; i < times; i++ {
				if err := env.tags.Associate(ctx, tag.ID, noteID); err != nil {
					return false
				}
			}
			count, err := env.tags.NoteCount(ctx, tag.ID)
			return err == nil && count == 1
		},
		gen.IntRange(1, 10),
	))

	properties.Property("disassociate after any associate sequence yields zero", prop.ForAll(
		func(times int) bool {
			for i := 0; i < times; i++ {
				if err := env.tags.Associate(ctx, tag.ID, noteID); err != nil {
					return false
				}
			}
			if err := env.tags.Disassociate(ctx, tag.ID, noteID); err != nil {
				return false
			}
			count, err := env.tags.NoteCount(ctx, tag.ID)
			return err == nil && count == 0
		},
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

func TestTagServiceProp_PaletteColors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	palette := domain.Palette()
	colorNames := make([]interface{}, 0, len(palette))
	for _, c := range palette {
		colorNames = append(colorNames, string(c))
	}

	properties := gopter.NewProperties(propParams())

	properties.Property("every palette color is accepted as-is", prop.ForAll(
		func(color string) bool {
			tag, err := env.tags.Create(ctx, "colored", color)
			return err == nil && tag.Color == color
		},
		gen.OneConstOf(colorNames...),
	))

	properties.Property("colors outside the palette are rejected", prop.ForAll(
		func(color string) bool {
			_, err := env.tags.Create(ctx, "colored", color)
			return err != nil
		},
		gen.AlphaString().SuchThat(func(s string) bool {
			return s != "" && !domain.IsValidColorString(s)
		}),
	))

	properties.TestingRun(t)
}
