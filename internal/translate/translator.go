// Package translate maps clip records between the three field-name spaces the
// system accumulated over time: store columns (snake_case), mirror keys
// (camelCase at creation, legacy title-case on update), and the API shape.
package translate

import (
	"os"
	"path/filepath"

	"defensive-analytics/internal/mirror"
	"defensive-analytics/internal/storage"
)

// fieldMapping ties one logical field to its names in each space. API lists
// every accepted patch key in priority order; Store and Mirror are empty when
// the field has no column or no mirror update key.
type fieldMapping struct {
	API    []string
	Store  string
	Mirror string
}

// patchFields is the single declarative alias table consumed by SplitPatch.
// API aliases cover both the current shape and keys older dashboards sent.
var patchFields = []fieldMapping{
	{API: []string{"game_id", "gameId", "game_num"}, Store: "game_id"},
	{API: []string{"opponent"}, Store: "opponent"},
	{API: []string{"opponent_slug"}, Store: "opponent_slug"},
	{API: []string{"location", "location_code", "game_location"}, Store: "location"},
	{API: []string{"game_score"}, Store: "game_score"},
	{API: []string{"quarter"}, Store: "quarter"},
	{API: []string{"possession"}, Store: "possession"},
	{API: []string{"situation"}, Store: "situation"},
	{API: []string{"formation", "offensive_formation"}, Store: "formation"},
	{API: []string{"play_name"}, Store: "play_name"},
	{API: []string{"scout_coverage"}, Store: "scout_coverage"},
	{API: []string{"action_trigger"}, Store: "action_trigger"},
	{API: []string{"action_types"}, Store: "action_types"},
	{API: []string{"action_sequence"}, Store: "action_sequence"},
	{API: []string{"coverage", "defensive_coverage"}, Store: "coverage"},
	{API: []string{"ball_screen", "ball_screen_coverage"}, Store: "ball_screen"},
	{API: []string{"off_ball_screen", "offball_screen_coverage"}, Store: "off_ball_screen"},
	{API: []string{"help_rotation"}, Store: "help_rotation"},
	{API: []string{"disruption", "defensive_disruption"}, Store: "disruption"},
	{API: []string{"breakdown", "defensive_breakdown"}, Store: "breakdown"},
	{API: []string{"result", "play_result"}, Store: "result", Mirror: "Play Result"},
	{API: []string{"paint_touch", "paint_touches"}, Store: "paint_touch"},
	{API: []string{"shooter", "shooter_designation"}, Store: "shooter", Mirror: "Shooter Designation"},
	{API: []string{"shot_location"}, Store: "shot_location"},
	{API: []string{"contest", "shot_contest"}, Store: "contest"},
	{API: []string{"rebound", "rebound_outcome"}, Store: "rebound"},
	{API: []string{"points"}, Store: "points"},
	{API: []string{"has_shot"}, Store: "has_shot", Mirror: "Has Shot"},
	{API: []string{"shot_x"}, Store: "shot_x", Mirror: "Shot X"},
	{API: []string{"shot_y"}, Store: "shot_y", Mirror: "Shot Y"},
	{API: []string{"shot_result"}, Store: "shot_result", Mirror: "Shot Result"},
	{API: []string{"notes"}, Store: "notes", Mirror: "Notes"},
	{API: []string{"start_time"}, Store: "start_time", Mirror: "Start Time"},
	{API: []string{"end_time"}, Store: "end_time", Mirror: "End Time"},
	{API: []string{"video_start"}, Mirror: "video_start"},
	{API: []string{"video_end"}, Mirror: "video_end"},
}

// Location aliases, in resolution priority order, per source. These orders are
// load-bearing: dashboards relied on exactly this precedence as the key names
// drifted across schema generations.
var (
	storeLocationCode    = []string{"location_code", "location", "game_location", "locationCode", "Location Code"}
	storeLocationDisplay = []string{"location_display", "location", "locationLabel", "locationDisplay", "Location"}

	mirrorLocationCode    = []string{"location_code", "locationCode", "location", "Location Code", "game_location", "gameLocation"}
	mirrorLocationDisplay = []string{"location_display", "locationDisplay", "Location", "location_label", "locationLabel", "Game Location"}
)

// Translator converts clip records between naming spaces. ClipsDir is used to
// derive video URLs from files present on disk.
type Translator struct {
	clipsDir string
}

// New creates a Translator rooted at the given clips directory.
func New(clipsDir string) *Translator {
	return &Translator{clipsDir: clipsDir}
}

// StoreToAPI produces the API-facing shape of a store record. video_url is
// derived from on-disk files and never persisted.
func (t *Translator) StoreToAPI(clip *storage.Clip) map[string]any {
	return map[string]any{
		"id":               clip.ID,
		"filename":         clip.Filename,
		"video_url":        t.DeriveVideoURL(clip.Filename, clip.Path),
		"game_id":          clip.GameID,
		"opponent":         clip.Opponent,
		"game_score":       clip.GameScore,
		"quarter":          clip.Quarter,
		"possession":       clip.Possession,
		"situation":        clip.Situation,
		"formation":        clip.Formation,
		"play_name":        clip.PlayName,
		"scout_coverage":   clip.ScoutCoverage,
		"action_trigger":   clip.ActionTrigger,
		"action_types":     clip.ActionTypes,
		"action_sequence":  clip.ActionSequence,
		"coverage":         clip.Coverage,
		"ball_screen":      clip.BallScreen,
		"off_ball_screen":  clip.OffBallScreen,
		"help_rotation":    clip.HelpRotation,
		"disruption":       clip.Disruption,
		"breakdown":        clip.Breakdown,
		"result":           clip.Result,
		"paint_touch":      clip.PaintTouch,
		"shooter":          clip.Shooter,
		"shot_location":    clip.ShotLocation,
		"contest":          clip.Contest,
		"rebound":          clip.Rebound,
		"points":           clip.Points,
		"has_shot":         clip.HasShot,
		"shot_x":           clip.ShotX,
		"shot_y":           clip.ShotY,
		"shot_result":      clip.ShotResult,
		"notes":            clip.Notes,
		"start_time":       clip.StartTime,
		"end_time":         clip.EndTime,
		"location":         clip.Location,
		"location_display": clip.Location,
		"location_code":    clip.Location,
		"game_location":    clip.Location,
		"locationLabel":    clip.Location,
	}
}

// MirrorToAPI produces the same API shape from a mirror entry. Each logical
// field is resolved through its alias list so entries written by any schema
// generation read back correctly; update-time keys win over creation-time keys.
func (t *Translator) MirrorToAPI(entry mirror.Entry) map[string]any {
	locationCode := resolve(entry, mirrorLocationCode)
	locationDisplay := resolve(entry, mirrorLocationDisplay)

	videoURL := entry["video_url"]
	if isEmpty(videoURL) {
		fallback := firstString(entry, "path", "video_path")
		videoURL = t.DeriveVideoURL(firstString(entry, "filename"), fallback)
	}

	return map[string]any{
		"id":               entry["id"],
		"filename":         entry["filename"],
		"video_url":        videoURL,
		"game_id":          resolveAny(entry, "gameId", "game_id"),
		"opponent":         entry["opponent"],
		"game_score":       resolveAny(entry, "game_score", "gameScore"),
		"quarter":          entry["quarter"],
		"possession":       entry["possession"],
		"situation":        entry["situation"],
		"formation":        entry["formation"],
		"play_name":        resolveAny(entry, "playName", "play_name"),
		"scout_coverage":   resolveAny(entry, "scoutCoverage", "scout_coverage"),
		"action_trigger":   resolveAny(entry, "actionTrigger", "action_trigger"),
		"action_types":     resolveAny(entry, "actionTypes", "action_types"),
		"action_sequence":  resolveAny(entry, "actionSequence", "action_sequence"),
		"coverage":         entry["coverage"],
		"ball_screen":      resolveAny(entry, "ballScreen", "ball_screen"),
		"off_ball_screen":  resolveAny(entry, "offBallScreen", "off_ball_screen"),
		"help_rotation":    resolveAny(entry, "helpRotation", "help_rotation"),
		"disruption":       entry["disruption"],
		"breakdown":        entry["breakdown"],
		"result":           resolveAny(entry, "Play Result", "result"),
		"paint_touch":      resolveAny(entry, "paintTouch", "paint_touch"),
		"shooter":          resolveAny(entry, "Shooter Designation", "shooter"),
		"shot_location":    resolveAny(entry, "shotLocation", "shot_location"),
		"contest":          entry["contest"],
		"rebound":          entry["rebound"],
		"points":           resolveAny(entry, "points", "Points"),
		"has_shot":         resolveAny(entry, "Has Shot", "hasShot"),
		"shot_x":           resolveAny(entry, "Shot X", "shotX"),
		"shot_y":           resolveAny(entry, "Shot Y", "shotY"),
		"shot_result":      resolveAny(entry, "Shot Result", "shotResult"),
		"notes":            resolveAny(entry, "Notes", "notes"),
		"start_time":       resolveAny(entry, "Start Time", "startTime"),
		"end_time":         resolveAny(entry, "End Time", "endTime"),
		"location":         locationCode,
		"location_display": locationDisplay,
		"location_code":    locationCode,
		"game_location":    locationCode,
		"locationLabel":    locationDisplay,
	}
}

// SplitPatch splits a partial update keyed by API field names into a store
// patch (column names) and a mirror patch (the mirror's historical update
// keys). Only supplied fields are emitted; unknown API keys are ignored and
// nil values are normalized to empty strings.
func (t *Translator) SplitPatch(patch map[string]any) (storePatch, mirrorPatch map[string]any) {
	storePatch = make(map[string]any)
	mirrorPatch = make(map[string]any)

	for key, value := range patch {
		mapping, ok := lookupField(key)
		if !ok {
			continue
		}
		if value == nil {
			value = ""
		}
		if mapping.Store != "" {
			storePatch[mapping.Store] = value
		}
		if mapping.Mirror != "" {
			mirrorPatch[mapping.Mirror] = value
		}
	}

	return storePatch, mirrorPatch
}

// DeriveVideoURL checks the clips directory for the clip file, by filename
// first and then by the stored path's basename. Absent file means no URL.
func (t *Translator) DeriveVideoURL(filename, fallback string) any {
	for _, raw := range []string{filename, fallback} {
		if raw == "" {
			continue
		}
		name := filepath.Base(raw)
		if _, err := os.Stat(filepath.Join(t.clipsDir, name)); err == nil {
			return "/legacy/Clips/" + name
		}
	}
	return nil
}

func lookupField(apiKey string) (fieldMapping, bool) {
	for _, mapping := range patchFields {
		for _, alias := range mapping.API {
			if alias == apiKey {
				return mapping, true
			}
		}
	}
	return fieldMapping{}, false
}

// resolve walks the alias list and returns the first non-empty string value.
func resolve(entry mirror.Entry, aliases []string) string {
	for _, alias := range aliases {
		if value, ok := entry[alias].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// resolveAny walks the alias list and returns the first present, non-empty
// value of any type.
func resolveAny(entry mirror.Entry, aliases ...string) any {
	for _, alias := range aliases {
		if value, ok := entry[alias]; ok && !isEmpty(value) {
			return value
		}
	}
	return nil
}

func firstString(entry mirror.Entry, aliases ...string) string {
	for _, alias := range aliases {
		if value, ok := entry[alias].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}
