package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// TimeToSeconds converts "HH:MM:SS", "MM:SS" or bare seconds to total
// seconds. Unparseable input yields 0.
func TimeToSeconds(raw string) int {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	case 2:
		return nums[0]*60 + nums[1]
	case 1:
		return nums[0]
	default:
		return 0
	}
}

// Slugify converts free text to a safe filename slug.
func Slugify(value, fallback string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(value), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return fallback
	}
	return slug
}
