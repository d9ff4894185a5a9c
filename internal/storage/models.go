package storage

import (
	"fmt"
	"strconv"
)

// Clip is the canonical scouting record for one extracted video segment.
// String fields hold "" when the column is NULL so the API shape stays
// string-typed end to end.
type Clip struct {
	ID              string
	Filename        string
	Path            string
	GameID          int64
	CanonicalGameID string
	CanonicalClipID string
	Opponent        string
	OpponentSlug    string
	Location        string
	GameScore       string
	Quarter         int64
	Possession      int64
	Situation       string
	Formation       string
	PlayName        string
	ScoutCoverage   string
	ActionTrigger   string
	ActionTypes     string
	ActionSequence  string
	Coverage        string
	BallScreen      string
	OffBallScreen   string
	HelpRotation    string
	Disruption      string
	Breakdown       string
	Result          string
	PaintTouch      string
	Shooter         string
	ShotLocation    string
	Contest         string
	Rebound         string
	Points          int64
	HasShot         string
	ShotX           string
	ShotY           string
	ShotResult      string
	Notes           string
	StartTime       string
	EndTime         string
	CreatedAt       string
	UpdatedAt       string
}

// Segment is one detected sound/speech interval within a clip's audio track.
type Segment struct {
	ID        int64
	ClipID    string
	Start     float64
	End       float64
	Duration  float64
	PeakDBFS  *float64
	RMS       *float64
	RMSDBFS   *float64
	CreatedAt string
}

// Apply sets the clip fields named by store column in the given partial map.
// Unknown columns are ignored; nil values reset string fields to "".
func (c *Clip) Apply(fields map[string]any) {
	for col, val := range fields {
		switch col {
		case "id":
			c.ID = toString(val)
		case "filename":
			c.Filename = toString(val)
		case "path":
			c.Path = toString(val)
		case "game_id":
			c.GameID = toInt64(val)
		case "canonical_game_id":
			c.CanonicalGameID = toString(val)
		case "canonical_clip_id":
			c.CanonicalClipID = toString(val)
		case "opponent":
			c.Opponent = toString(val)
		case "opponent_slug":
			c.OpponentSlug = toString(val)
		case "location":
			c.Location = toString(val)
		case "game_score":
			c.GameScore = toString(val)
		case "quarter":
			c.Quarter = toInt64(val)
		case "possession":
			c.Possession = toInt64(val)
		case "situation":
			c.Situation = toString(val)
		case "formation":
			c.Formation = toString(val)
		case "play_name":
			c.PlayName = toString(val)
		case "scout_coverage":
			c.ScoutCoverage = toString(val)
		case "action_trigger":
			c.ActionTrigger = toString(val)
		case "action_types":
			c.ActionTypes = toString(val)
		case "action_sequence":
			c.ActionSequence = toString(val)
		case "coverage":
			c.Coverage = toString(val)
		case "ball_screen":
			c.BallScreen = toString(val)
		case "off_ball_screen":
			c.OffBallScreen = toString(val)
		case "help_rotation":
			c.HelpRotation = toString(val)
		case "disruption":
			c.Disruption = toString(val)
		case "breakdown":
			c.Breakdown = toString(val)
		case "result":
			c.Result = toString(val)
		case "paint_touch":
			c.PaintTouch = toString(val)
		case "shooter":
			c.Shooter = toString(val)
		case "shot_location":
			c.ShotLocation = toString(val)
		case "contest":
			c.Contest = toString(val)
		case "rebound":
			c.Rebound = toString(val)
		case "points":
			c.Points = toInt64(val)
		case "has_shot":
			c.HasShot = toString(val)
		case "shot_x":
			c.ShotX = toString(val)
		case "shot_y":
			c.ShotY = toString(val)
		case "shot_result":
			c.ShotResult = toString(val)
		case "notes":
			c.Notes = toString(val)
		case "start_time":
			c.StartTime = toString(val)
		case "end_time":
			c.EndTime = toString(val)
		case "created_at":
			c.CreatedAt = toString(val)
		case "updated_at":
			c.UpdatedAt = toString(val)
		}
	}
}

// toString renders any JSON-decoded value as a string field value.
// JSON numbers arrive as float64; integral values must not pick up a ".0".
func toString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
