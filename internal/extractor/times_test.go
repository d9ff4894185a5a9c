package extractor

import "testing"

func TestTimeToSeconds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "HH:MM:SS", raw: "01:02:03", want: 3723},
		{name: "MM:SS", raw: "01:30", want: 90},
		{name: "bare seconds", raw: "45", want: 45},
		{name: "leading zeros", raw: "00:01:30", want: 90},
		{name: "whitespace trimmed", raw: " 02:00 ", want: 120},
		{name: "garbage yields zero", raw: "abc", want: 0},
		{name: "partial garbage yields zero", raw: "01:xx", want: 0},
		{name: "empty yields zero", raw: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeToSeconds(tt.raw); got != tt.want {
				t.Errorf("TimeToSeconds(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		want     string
	}{
		{name: "spaces to underscores", value: "Oklahoma State", fallback: "opponent", want: "oklahoma_state"},
		{name: "punctuation stripped", value: "St. Mary's (OT)", fallback: "opponent", want: "st_mary_s_ot"},
		{name: "already clean", value: "tech", fallback: "opponent", want: "tech"},
		{name: "empty uses fallback", value: "", fallback: "opponent", want: "opponent"},
		{name: "only punctuation uses fallback", value: "!!!", fallback: "opponent", want: "opponent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.value, tt.fallback); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
