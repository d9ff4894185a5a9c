package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"defensive-analytics/internal/service"
)

// Session holds the single active source video the tagger is clipping from.
// It starts unset; every extraction requires an explicit setter call first.
type Session struct {
	mu       sync.Mutex
	clipsDir string
	path     string
}

// NewSession creates an unset session rooted at the clips directory.
func NewSession(clipsDir string) *Session {
	return &Session{clipsDir: clipsDir}
}

// Path returns the current video path, or "" when no video is loaded.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// SetVideo sets the current video. When the given path does not exist it
// probes common local directories for the bare filename, matching where
// browsers drop downloaded game film.
func (s *Session) SetVideo(videoPath, filename string) (string, error) {
	if videoPath == "" || !fileExists(videoPath) {
		if filename != "" {
			home, _ := os.UserHomeDir()
			candidates := []string{
				filepath.Join(s.clipsDir, filename),
				filepath.Join(home, "Downloads", filename),
				filepath.Join(home, "Desktop", filename),
			}
			for _, candidate := range candidates {
				if fileExists(candidate) {
					videoPath = candidate
					break
				}
			}
		}
	}

	if videoPath == "" || !fileExists(videoPath) {
		return "", &service.ValidationError{
			Field:   "video_path",
			Message: "video file not found; set the video path manually",
		}
	}

	s.mu.Lock()
	s.path = videoPath
	s.mu.Unlock()
	return videoPath, nil
}

// SetManual sets the current video from a user-supplied path, expanding a
// leading "~" to the home directory.
func (s *Session) SetManual(videoPath string) (string, error) {
	videoPath = strings.TrimSpace(videoPath)
	if strings.HasPrefix(videoPath, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			videoPath = filepath.Join(home, strings.TrimPrefix(videoPath[1:], "/"))
		}
	}

	if !fileExists(videoPath) {
		return "", &service.ValidationError{
			Field:   "video_path",
			Message: fmt.Sprintf("video file not found at: %s", videoPath),
		}
	}

	s.mu.Lock()
	s.path = videoPath
	s.mu.Unlock()
	return videoPath, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
