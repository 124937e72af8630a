package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProfileCommand_MissingOutputFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)
	cvFile := writeTempCV(t)

	cmd := exec.Command(binaryPath, "build-profile", "--cv", cvFile)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

func TestBuildProfileCommand_NoInputs(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outputFile := filepath.Join(t.TempDir(), "profile.json")

	cmd := exec.Command(binaryPath, "build-profile", "--out", outputFile)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "at least one of")
}

func TestBuildProfileCommand_CVToProfileJSON(t *testing.T) {
	binaryPath := getBinaryPath(t)
	cvFile := writeTempCV(t)
	outputFile := filepath.Join(t.TempDir(), "profile.json")

	cmd := exec.Command(binaryPath, "build-profile",
		"--cv", cvFile, "--name", "Ada", "--out", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)

	profile, err := loadProfile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, []string{"cv"}, profile.DataSources)
	assert.NotEmpty(t, profile.Skills)
}

func TestBuildProfileCommand_MissingCVFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outputFile := filepath.Join(t.TempDir(), "profile.json")

	cmd := exec.Command(binaryPath, "build-profile",
		"--cv", "/nonexistent/cv.txt", "--out", outputFile)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to load cv files")
}

func TestLoadProfile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")

	require.NoError(t, os.WriteFile(path, []byte(`{
		"name": "Ada",
		"summary": "Analyzed 1 data source(s).",
		"skills": [],
		"top_skills": [],
		"skill_categories": {},
		"data_sources": ["cv"],
		"metadata": {"created_at": "2026-08-01T00:00:00Z", "total_skills": 0, "sources_count": 1},
		"raw_data": {}
	}`), 0644))

	profile, err := loadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, 1, profile.Metadata.SourcesCount)
}

func TestLoadProfile_Missing(t *testing.T) {
	_, err := loadProfile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestNewBuilder_EmbeddedDefaults(t *testing.T) {
	weightsFile = ""
	builder, err := newBuilder()
	require.NoError(t, err)
	assert.NotNil(t, builder)
}

func writeTempCV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv.txt")
	content := "## Experience\nSenior engineer. Python and Docker in production.\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
