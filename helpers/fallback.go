package helpers

import (
	"fmt"
	"strings"
)

// DefaultMusicPreferences replaces blank preferences before generation.
const DefaultMusicPreferences = "varied, calming music suitable for yoga"

type sectionTracks struct {
	Warmup   []string
	Flow     []string
	Peak     []string
	Cooldown []string
}

type genreFallback struct {
	keywords []string
	tracks   sectionTracks
}

// genreFallbacks are static playlists used when generation is unavailable,
// checked in order against the preferences.
var genreFallbacks = []genreFallback{
	{
		keywords: []string{"hip-hop", "hip hop"},
		tracks: sectionTracks{
			Warmup:   []string{"Lauryn Hill - Ex-Factor", "Erykah Badu - On & On"},
			Flow:     []string{"Tupac - California Love", "Biggie - Juicy", "Nas - The World Is Yours"},
			Peak:     []string{"Jay-Z - 99 Problems", "Eminem - Lose Yourself"},
			Cooldown: []string{"Common - The Light", "Lauryn Hill - To Zion"},
		},
	},
	{
		keywords: []string{"electronic"},
		tracks: sectionTracks{
			Warmup:   []string{"Lane 8 - Brightest Lights", "Marsh - Belle"},
			Flow:     []string{"Rufus Du Sol - Innerbloom", "Disclosure - Magnets", "Flume - Never Be Like You"},
			Peak:     []string{"ZHU - Faded", "ODESZA - Bloom"},
			Cooldown: []string{"Bonobo - Cirrus", "Tycho - A Walk"},
		},
	},
	{
		keywords: []string{"country"},
		tracks: sectionTracks{
			Warmup:   []string{"Brett Eldredge - Love Someone", "Kacey Musgraves - Slow Burn"},
			Flow:     []string{"Keith Urban - Never Comin' Down", "Miranda Lambert - Little Red Wagon", "Thomas Rhett - Vacation"},
			Peak:     []string{"Carrie Underwood - Before He Cheats", "Luke Bryan - Country Girl"},
			Cooldown: []string{"Dan + Shay - Speechless", "Chris Stapleton - Tennessee Whiskey"},
		},
	},
}

var defaultFallback = sectionTracks{
	Warmup:   []string{"Bon Iver - Holocene", "Iron & Wine - Walking Far from Home"},
	Flow:     []string{"Alt-J - Left Hand Free", "Tame Impala - Feels Like We Only Go Backwards", "Arctic Monkeys - Do I Wanna Know"},
	Peak:     []string{"Foster the People - Pumped Up Kicks", "MGMT - Electric Feel"},
	Cooldown: []string{"Sufjan Stevens - Mystery of Love", "The National - I Need My Girl"},
}

// SectionMinutes splits a class into warmup/flow/peak/cooldown minutes
// (15/45/25/15 percent, truncated).
func SectionMinutes(durationMinutes int) [4]int {
	return [4]int{
		durationMinutes * 15 / 100,
		durationMinutes * 45 / 100,
		durationMinutes * 25 / 100,
		durationMinutes * 15 / 100,
	}
}

func fallbackTracks(musicPreferences string) sectionTracks {
	preferences := strings.ToLower(musicPreferences)
	for _, genre := range genreFallbacks {
		for _, keyword := range genre.keywords {
			if strings.Contains(preferences, keyword) {
				return genre.tracks
			}
		}
	}
	return defaultFallback
}

// BuildFallbackPlaylist renders a deterministic playlist in the same format
// the generator is asked for.
func BuildFallbackPlaylist(musicPreferences string, durationMinutes int) string {
	tracks := fallbackTracks(musicPreferences)
	minutes := SectionMinutes(durationMinutes)

	sections := []struct {
		title  string
		bpm    string
		tracks []string
	}{
		{fmt.Sprintf("WARMUP (%d minutes)", minutes[0]), "BPM: 70-85 | Energy: Building, welcoming", tracks.Warmup},
		{fmt.Sprintf("FLOW/ACTIVE (%d minutes)", minutes[1]), "BPM: 90-110 | Energy: Sustained, rhythmic", tracks.Flow},
		{fmt.Sprintf("PEAK (%d minutes)", minutes[2]), "BPM: 100-120 | Energy: High intensity, motivating", tracks.Peak},
		{fmt.Sprintf("COOLDOWN/SAVASANA (%d minutes)", minutes[3]), "BPM: 60-75 | Energy: Peaceful, meditative", tracks.Cooldown},
	}

	var sb strings.Builder
	for i, section := range sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("**" + section.title + "**\n")
		sb.WriteString(section.bpm)
		for _, track := range section.tracks {
			sb.WriteString("\n- " + track)
		}
	}
	return sb.String()
}
