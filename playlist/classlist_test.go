package playlist

import (
	"reflect"
	"testing"
)

func TestExtractClassListings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []ClassListing
	}{
		{
			name: "empty",
			text: "",
			want: []ClassListing{},
		},
		{
			name: "numbered with dot",
			text: "1. Vinyasa Flow: Dynamic flow linking breath with movement",
			want: []ClassListing{{Name: "Vinyasa Flow", Description: "Dynamic flow linking breath with movement"}},
		},
		{
			name: "numbered with paren",
			text: "2) Yin: Long-held passive poses",
			want: []ClassListing{{Name: "Yin", Description: "Long-held passive poses"}},
		},
		{
			name: "dot bullet",
			text: "• Traditional Hatha: Classic yoga, poses held for several breaths",
			want: []ClassListing{{Name: "Traditional Hatha", Description: "Classic yoga, poses held for several breaths"}},
		},
		{
			name: "dash bullet",
			text: "- Yoga Sculpt: Fitness yoga with weights",
			want: []ClassListing{{Name: "Yoga Sculpt", Description: "Fitness yoga with weights"}},
		},
		{
			name: "markdown bold name",
			text: "1. **Power Yoga**: Vigorous and athletic",
			want: []ClassListing{{Name: "Power Yoga", Description: "Vigorous and athletic"}},
		},
		{
			name: "bold around colon",
			text: "1. **Power Yoga:** Vigorous and athletic",
			want: []ClassListing{{Name: "Power Yoga", Description: "Vigorous and athletic"}},
		},
		{
			name: "description keeps later colons",
			text: "3. Restorative: Props: bolsters and blankets",
			want: []ClassListing{{Name: "Restorative", Description: "Props: bolsters and blankets"}},
		},
		{
			name: "no colon skipped",
			text: "1. Vinyasa Flow",
			want: []ClassListing{},
		},
		{
			name: "empty description skipped",
			text: "1. Vinyasa:",
			want: []ClassListing{},
		},
		{
			name: "empty name skipped",
			text: "• : nothing here",
			want: []ClassListing{},
		},
		{
			name: "prose skipped",
			text: "Here are the available classes:\n\nLet me know if you need more!",
			want: []ClassListing{},
		},
		{
			name: "mixed list",
			text: "Available classes:\n1. Hatha: Slow\n• Yin: Passive\nnot a class\n- Sculpt: Weights",
			want: []ClassListing{
				{Name: "Hatha", Description: "Slow"},
				{Name: "Yin", Description: "Passive"},
				{Name: "Sculpt", Description: "Weights"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractClassListings(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractClassListings() = %+v; want %+v", got, tt.want)
			}
		})
	}
}
