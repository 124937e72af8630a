package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempProfile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	content := `{
		"name": "Ada",
		"summary": "Analyzed 1 data source(s) and identified 1 distinct skills.",
		"skills": [{
			"skill_name": "Python", "category": "technical_programming_languages",
			"final_confidence": 0.9, "sources": ["cv_1"], "evidence": [],
			"confidence_breakdown": {}, "level": "high"
		}],
		"top_skills": [],
		"skill_categories": {},
		"data_sources": ["cv"],
		"metadata": {"created_at": "2026-08-01T00:00:00Z", "total_skills": 1, "sources_count": 1},
		"raw_data": {"cv": {"source_ids": ["cv_1"], "raw_text": "Python developer.", "count": 1}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStatsCommand_ReportsFragmentCounts(t *testing.T) {
	binaryPath := getBinaryPath(t)
	profileFile := writeTempProfile(t)

	cmd := exec.Command(binaryPath, "stats", "--profile", profileFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)

	assert.Contains(t, string(output), "Indexable fragments: 3")
	assert.Contains(t, string(output), "skill")
	assert.Contains(t, string(output), "cv_text")
	assert.Contains(t, string(output), "profile_summary")
}

func TestStatsCommand_MissingProfileFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "stats")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

func TestStatsCommand_MissingProfileFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "stats", "--profile", "/nonexistent/profile.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to read profile")
}
