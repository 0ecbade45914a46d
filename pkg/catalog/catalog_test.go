package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robinrj6/FFmpeg-batch/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `profiles:
  web-1080p:
    operation: transcode
    parameters:
      codec: h264
      resolution: 1920x1080
      crf: 23
    description: Standard web quality
  audio-only:
    operation: extract_audio
    parameters:
      format: mp3
      bitrate: 192k
    description: Strip audio track
  thumbnail:
    operation: generate_thumbnail
    parameters:
      timestamp: "00:00:05"
      width: 320
    description: Preview image
workflows:
  web-publish:
    description: Full web publishing pipeline
    jobs:
      - profile: web-1080p
      - profile: thumbnail
        output_suffix: _thumb
  audio-extract:
    description: Audio track only
    jobs:
      - profile: audio-only
`

func newTestManager(t *testing.T, content string) (*Manager, *bytes.Buffer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	var logBuf bytes.Buffer
	log := logging.NewLogger(logging.DEBUG, false)
	log.SetOutput(&logBuf)

	return NewManager(path, log), &logBuf, path
}

func TestLoadMissingFile(t *testing.T) {
	m, logBuf, _ := newTestManager(t, "")

	profiles, workflows := m.Counts()
	assert.Equal(t, 0, profiles)
	assert.Equal(t, 0, workflows)
	assert.Empty(t, m.ListProfiles())
	assert.Empty(t, m.ListWorkflows())
	assert.Contains(t, logBuf.String(), "Catalog file not found")
}

func TestLoadSampleCatalog(t *testing.T) {
	m, _, _ := newTestManager(t, sampleCatalog)

	profiles, workflows := m.Counts()
	require.Equal(t, 3, profiles)
	require.Equal(t, 2, workflows)

	p, ok := m.GetProfile("web-1080p")
	require.True(t, ok)
	assert.Equal(t, "transcode", p.Operation)
	assert.Equal(t, "Standard web quality", p.Description)

	params, ok := p.Parameters.(map[string]interface{})
	require.True(t, ok, "parameters should decode as a mapping")
	assert.Equal(t, "h264", params["codec"])
	assert.Equal(t, 23, params["crf"])

	w, ok := m.GetWorkflow("web-publish")
	require.True(t, ok)
	require.Len(t, w.Jobs, 2)
	assert.Equal(t, "web-1080p", w.Jobs[0].Profile)
	assert.Equal(t, "thumbnail", w.Jobs[1].Profile)
}

func TestUnknownLookupsLeaveStateUntouched(t *testing.T) {
	m, logBuf, _ := newTestManager(t, sampleCatalog)

	p, ok := m.GetProfile("nonexistent")
	assert.Nil(t, p)
	assert.False(t, ok)

	w, ok := m.GetWorkflow("nonexistent")
	assert.Nil(t, w)
	assert.False(t, ok)

	out := logBuf.String()
	assert.Contains(t, out, "Profile not found: nonexistent")
	assert.Contains(t, out, "Workflow not found: nonexistent")

	// Lookups must not create entries
	profiles, workflows := m.Counts()
	assert.Equal(t, 3, profiles)
	assert.Equal(t, 2, workflows)
}

func TestValidateProfileShallow(t *testing.T) {
	const content = `profiles:
  complete:
    operation: transcode
    parameters:
      codec: h264
    description: all keys present
  no-parameters:
    operation: transcode
    description: parameters key absent
  no-operation:
    parameters:
      codec: h264
  scalar-parameters:
    operation: compress
    parameters: not-a-mapping
  null-parameters:
    operation: compress
    parameters:
workflows: {}
`
	m, _, _ := newTestManager(t, content)

	tests := []struct {
		name    string
		profile string
		want    bool
	}{
		{"all keys present", "complete", true},
		{"missing parameters", "no-parameters", false},
		{"missing operation", "no-operation", false},
		{"non-mapping parameters still validate", "scalar-parameters", true},
		{"explicit null parameters still validate", "null-parameters", true},
		{"unknown profile", "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ValidateProfile(tt.profile); got != tt.want {
				t.Errorf("ValidateProfile(%q) = %v, want %v", tt.profile, got, tt.want)
			}
		})
	}
}

func TestCreateCustomProfileOverwrites(t *testing.T) {
	m, _, _ := newTestManager(t, sampleCatalog)

	ok := m.CreateCustomProfile("web-1080p", "compress", map[string]interface{}{"crf": 30}, "smaller files")
	require.True(t, ok)

	p, found := m.GetProfile("web-1080p")
	require.True(t, found)
	assert.Equal(t, "compress", p.Operation)
	assert.Equal(t, "smaller files", p.Description)

	params, isMap := p.Parameters.(map[string]interface{})
	require.True(t, isMap)
	assert.Equal(t, 30, params["crf"])
	// Full replace: nothing from the previous entry survives
	assert.NotContains(t, params, "codec")

	// Overwriting keeps the original catalog position
	infos := m.ListProfiles()
	require.Len(t, infos, 3)
	assert.Equal(t, "web-1080p", infos[0].Name)

	// A new name appends instead
	require.True(t, m.CreateCustomProfile("fresh", "trim_video", map[string]interface{}{"start": "00:00:10"}, ""))
	infos = m.ListProfiles()
	require.Len(t, infos, 4)
	assert.Equal(t, "fresh", infos[3].Name)

	assert.True(t, m.ValidateProfile("fresh"))
}

func TestSaveReloadRoundTrip(t *testing.T) {
	// Deliberately non-alphabetical ordering; sorting on save would show up
	const content = `profiles:
  zz-last-alphabetically:
    operation: transcode
    parameters:
      codec: h265
    description: first in the file
  aa-first-alphabetically:
    operation: compress
    parameters: not-a-mapping
    extra_key: kept-verbatim
    description: second in the file
workflows:
  z-workflow:
    description: listed before the other
    jobs:
      - profile: zz-last-alphabetically
        output_suffix: _z
  a-workflow:
    description: listed after
    jobs:
      - profile: aa-first-alphabetically
`
	m, _, path := newTestManager(t, content)
	require.True(t, m.CreateCustomProfile("mm-appended", "create_gif", map[string]interface{}{"fps": 10}, "added before save"))
	require.NoError(t, m.Save())

	// Reload from disk into a fresh manager
	var logBuf bytes.Buffer
	log := logging.NewLogger(logging.DEBUG, false)
	log.SetOutput(&logBuf)
	reloaded := NewManager(path, log)

	profileNames := make([]string, 0)
	for _, info := range reloaded.ListProfiles() {
		profileNames = append(profileNames, info.Name)
	}
	assert.Equal(t, []string{"zz-last-alphabetically", "aa-first-alphabetically", "mm-appended"}, profileNames)

	workflowNames := make([]string, 0)
	for _, info := range reloaded.ListWorkflows() {
		workflowNames = append(workflowNames, info.Name)
	}
	assert.Equal(t, []string{"z-workflow", "a-workflow"}, workflowNames)

	// Content survives, including the non-mapping parameters value and the
	// unknown key
	p, ok := reloaded.GetProfile("aa-first-alphabetically")
	require.True(t, ok)
	assert.Equal(t, "not-a-mapping", p.Parameters)
	assert.True(t, reloaded.ValidateProfile("aa-first-alphabetically"))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "extra_key: kept-verbatim")
	assert.Contains(t, string(saved), "output_suffix: _z")

	w, ok := reloaded.GetWorkflow("z-workflow")
	require.True(t, ok)
	require.Len(t, w.Jobs, 1)
	assert.Equal(t, "zz-last-alphabetically", w.Jobs[0].Profile)
}

func TestLoadMalformedFileKeepsPriorState(t *testing.T) {
	m, logBuf, path := newTestManager(t, sampleCatalog)
	profiles, _ := m.Counts()
	require.Equal(t, 3, profiles)

	require.NoError(t, os.WriteFile(path, []byte("profiles: [unclosed\n  bad"), 0644))
	m.Load()

	profiles, workflows := m.Counts()
	assert.Equal(t, 3, profiles, "malformed reload must not drop loaded state")
	assert.Equal(t, 2, workflows)
	assert.Contains(t, logBuf.String(), "Failed to load catalog")

	// A non-mapping document is rejected the same way
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a\n- list\n"), 0644))
	m.Load()
	profiles, _ = m.Counts()
	assert.Equal(t, 3, profiles)
}

func TestLoadToleratesAbsentAndNullSections(t *testing.T) {
	m, _, _ := newTestManager(t, "workflows:\n  solo:\n    description: no profiles key\n    jobs: []\n")
	profiles, workflows := m.Counts()
	assert.Equal(t, 0, profiles)
	assert.Equal(t, 1, workflows)

	m2, _, _ := newTestManager(t, "profiles: null\nworkflows: null\n")
	profiles, workflows = m2.Counts()
	assert.Equal(t, 0, profiles)
	assert.Equal(t, 0, workflows)
}

func TestLoadSkipsNonMappingEntries(t *testing.T) {
	const content = `profiles:
  good:
    operation: transcode
    parameters: {}
  bad: just-a-string
workflows: {}
`
	m, logBuf, _ := newTestManager(t, content)

	profiles, _ := m.Counts()
	assert.Equal(t, 1, profiles)
	_, ok := m.GetProfile("good")
	assert.True(t, ok)
	assert.Contains(t, logBuf.String(), `Skipping profile "bad"`)
}

func TestSaveWritesReadableDocument(t *testing.T) {
	m, _, path := newTestManager(t, "")
	require.True(t, m.CreateCustomProfile("only", "transcode", map[string]interface{}{"codec": "vp9"}, "solo entry"))
	require.NoError(t, m.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	// Both top-level sections are always present
	assert.True(t, strings.HasPrefix(text, "profiles:"), "document starts with the profiles section: %q", text)
	assert.Contains(t, text, "workflows:")
	assert.Contains(t, text, "operation: transcode")
	assert.Contains(t, text, "codec: vp9")
}
