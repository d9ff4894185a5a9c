package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"defensive-analytics/internal/excel"
	"defensive-analytics/internal/extractor"
	"defensive-analytics/internal/service/mocks"
	"defensive-analytics/internal/storage"
)

func newTestDeps(t *testing.T, ctrl *gomock.Controller) (*Deps, *mocks.MockClipService) {
	t.Helper()
	tmpDir := t.TempDir()

	db, err := storage.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	mockClipService := mocks.NewMockClipService(ctrl)
	session := extractor.NewSession(tmpDir)

	deps := &Deps{
		ClipService: mockClipService,
		Session:     session,
		Extractor:   extractor.NewService(tmpDir, session, storage.NewClipRepo(db), nil, extractor.NewRunner("ffmpeg")),
		Workbook:    excel.NewService(filepath.Join(tmpDir, "tagging.xlsx"), "Tagging"),
		Controller:  nil,
		DB:          db,
		ClipsDir:    tmpDir,
	}
	return deps, mockClipService
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps, _ := newTestDeps(t, ctrl)

	router := NewRouter(deps)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps, mockClipService := newTestDeps(t, ctrl)
	mockClipService.EXPECT().List(gomock.Any()).Return([]map[string]any{}, nil).AnyTimes()

	router := NewRouter(deps)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "GET root reports liveness",
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /health reports liveness",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/health runs dependency checks",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/clips exists",
			method:     http.MethodGet,
			path:       "/api/clips",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /get_clips serves the wrapped legacy shape",
			method:     http.MethodGet,
			path:       "/get_clips",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /api/clips rejects invalid body but exists",
			method:     http.MethodPost,
			path:       "/api/clips",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "POST /set_video rejects invalid body but exists",
			method:     http.MethodPost,
			path:       "/set_video",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "POST /extract_clip rejects invalid body but exists",
			method:     http.MethodPost,
			path:       "/extract_clip",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "GET /check_row requires the row parameter",
			method:     http.MethodGet,
			path:       "/check_row",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "GET /peek exists",
			method:     http.MethodGet,
			path:       "/peek",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /clips serves files",
			method:     http.MethodGet,
			path:       "/clips/missing.mp4",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "GET legacy clip path serves files",
			method:     http.MethodGet,
			path:       "/legacy/Clips/missing.mp4",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown route is 404",
			method:     http.MethodGet,
			path:       "/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_ClipResourceRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps, mockClipService := newTestDeps(t, ctrl)
	mockClipService.EXPECT().Get(gomock.Any(), "clip-1").Return(map[string]any{"id": "clip-1"}, nil)
	mockClipService.EXPECT().Delete(gomock.Any(), "clip-1").Return(nil)

	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/clip/clip-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/clip/{id} status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/clip/clip-1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("DELETE /api/clip/{id} status = %d, want 200", rec.Code)
	}
}
