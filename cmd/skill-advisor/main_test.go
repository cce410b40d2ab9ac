package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, root, dir, content string) {
	t.Helper()
	skillDir := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644))
}

func fixtureSkills(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeSkill(t, root, "workflows-git", `---
name: workflows-git
description: Git workflow helper for commits, branches and worktrees
---

# Git
`)
	writeSkill(t, root, "system-memory", `---
name: system-memory
description: Save and restore conversation context
weight: 0.5
---
`)
	return root
}

// runCLI executes a fresh command tree with isolated configuration
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	initConfig()
	viper.Set("skills.builtins", false)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootEmptyRequest(t *testing.T) {
	out, err := runCLI(t)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	out, err = runCLI(t, "   ")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestRootAnalyze(t *testing.T) {
	dir := fixtureSkills(t)

	out, err := runCLI(t, "--skills-dir", dir, "commit my changes")
	require.NoError(t, err)

	var recs []advisor.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 2)

	assert.Equal(t, "workflows-git", recs[0].Skill)
	assert.Equal(t, 0.95, recs[0].Confidence)
	assert.Equal(t, 0.25, recs[0].Uncertainty)
	assert.True(t, recs[0].PassesThreshold)
	assert.Equal(t, "Matched: !commit, !changes(multi), commit~, git(name), branch~", recs[0].Reason)

	assert.Equal(t, "system-memory", recs[1].Skill)
	assert.False(t, recs[1].PassesThreshold)

	// indented for readability
	assert.True(t, strings.HasPrefix(out, "[\n  {"))
}

func TestRootAnalyzeLimitAndTable(t *testing.T) {
	dir := fixtureSkills(t)

	out, err := runCLI(t, "--skills-dir", dir, "--limit", "1", "commit my changes")
	require.NoError(t, err)
	var recs []advisor.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	assert.Len(t, recs, 1)

	out, err = runCLI(t, "--skills-dir", dir, "--format", "table", "commit my changes")
	require.NoError(t, err)
	assert.Contains(t, out, "SKILL")
	assert.Contains(t, out, "workflows-git")
	assert.Contains(t, out, "auto")
}

func TestRootRequestAfterSeparator(t *testing.T) {
	dir := fixtureSkills(t)

	tests := []struct {
		name    string
		request string
	}{
		{"subcommand name", "version"},
		{"help", "help"},
		{"leading dash", "-fix the bug"},
		{"mcp keyword", "mcp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "--skills-dir", dir, "--", tt.request)
			require.NoError(t, err)

			var recs []advisor.Recommendation
			require.NoError(t, json.Unmarshal([]byte(out), &recs), "output: %s", out)
		})
	}

	out, err := runCLI(t, "--skills-dir", dir, "--", "-fix the bug")
	require.NoError(t, err)
	var recs []advisor.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.NotEmpty(t, recs)
	assert.Equal(t, "workflows-git", recs[0].Skill)
	assert.Contains(t, recs[0].Reason, "!fix(multi)")
}

func TestRootFlagsStopAtRequest(t *testing.T) {
	dir := fixtureSkills(t)

	// --format after the first request word is request text, not a flag
	out, err := runCLI(t, "--skills-dir", dir, "commit", "--format", "xml")
	require.NoError(t, err)

	var recs []advisor.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.NotEmpty(t, recs)
	assert.Equal(t, "workflows-git", recs[0].Skill)
}

func TestRootUnknownFlagSuggestsSeparator(t *testing.T) {
	_, err := runCLI(t, "-xyz the bug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put -- before a request")

	_, err = runCLI(t, "gate", "--bogus")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "put -- before a request")
}

func TestRootAnalyzeInvalidFlags(t *testing.T) {
	_, err := runCLI(t, "--format", "xml", "commit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, err = runCLI(t, "--limit", "-1", "commit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must not be negative")

	_, err = runCLI(t, "--confidence-threshold", "2", "commit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thresholds must be within")
}

func TestRootLexiconOverlay(t *testing.T) {
	dir := fixtureSkills(t)
	lexPath := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(lexPath, []byte(`
intent_boosters:
  ship:
    skill: workflows-git
    amount: 2.0
`), 0o644))

	out, err := runCLI(t, "--skills-dir", dir, "--lexicon", lexPath, "ship it")
	require.NoError(t, err)

	var recs []advisor.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "workflows-git", recs[0].Skill)
	assert.Contains(t, recs[0].Reason, "!ship")

	_, err = runCLI(t, "--lexicon", filepath.Join(t.TempDir(), "missing.yaml"), "ship it")
	assert.Error(t, err)
}

func TestRouteCommand(t *testing.T) {
	dir := fixtureSkills(t)

	out, err := runCLI(t, "--skills-dir", dir, "route", "commit my changes")
	require.NoError(t, err)

	var result RouteResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Routed)
	require.NotNil(t, result.Recommendation)
	assert.Equal(t, "workflows-git", result.Recommendation.Skill)
	assert.Equal(t, "load workflows-git", result.Action)

	out, err = runCLI(t, "--skills-dir", dir, "route", "zzz qqq")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Routed)
	assert.Nil(t, result.Recommendation)
}

func TestNewRouteResult(t *testing.T) {
	tests := []struct {
		name   string
		top    *advisor.Recommendation
		routed bool
		action string
	}{
		{"nothing matched", nil, false, "no matching skill; proceed without one"},
		{"routed", &advisor.Recommendation{Skill: "pdf", Uncertainty: 0.2}, true, "load pdf"},
		{"low confidence", &advisor.Recommendation{Skill: "pdf", Uncertainty: 0.2}, false, "confidence too low; confirm pdf with the user"},
		{"medium", &advisor.Recommendation{Skill: "pdf", Uncertainty: 0.5}, false, "verify pdf with the user before loading"},
		{"high", &advisor.Recommendation{Skill: "pdf", Uncertainty: 0.9}, false, "ask the user to clarify the request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newRouteResult("req", tt.top, tt.routed)
			assert.Equal(t, tt.action, result.Action)
			assert.Equal(t, tt.routed, result.Routed)
		})
	}
}

func TestGateCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		passes bool
		level  advisor.UncertaintyLevel
	}{
		{"at thresholds", []string{"--confidence", "0.8", "--uncertainty", "0.35"}, true, advisor.UncertaintyLow},
		{"high uncertainty", []string{"--confidence", "0.9", "--uncertainty", "0.5"}, false, advisor.UncertaintyMedium},
		{"readiness", []string{"--confidence", "0.72", "--uncertainty", "0.3", "--readiness"}, true, advisor.UncertaintyLow},
		{"routing rejects readiness pair", []string{"--confidence", "0.72", "--uncertainty", "0.3"}, false, advisor.UncertaintyLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, append([]string{"gate"}, tt.args...)...)
			require.NoError(t, err)

			var gate GateOutput
			require.NoError(t, json.Unmarshal([]byte(out), &gate))
			assert.Equal(t, tt.passes, gate.Passes)
			assert.Equal(t, tt.level, gate.Level)
		})
	}

	_, err := runCLI(t, "gate", "--confidence", "0.9")
	assert.Error(t, err)
}

func TestUncertaintyCommand(t *testing.T) {
	out, err := runCLI(t, "uncertainty", "--matches", "5", "--intent")
	require.NoError(t, err)

	var body struct {
		Uncertainty float64                  `json:"uncertainty"`
		Level       advisor.UncertaintyLevel `json:"level"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 0.15, body.Uncertainty)
	assert.Equal(t, advisor.UncertaintyLow, body.Level)

	out, err = runCLI(t, "uncertainty")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 0.85, body.Uncertainty)
	assert.Equal(t, advisor.UncertaintyHigh, body.Level)
}

func TestConfidenceCommand(t *testing.T) {
	out, err := runCLI(t, "confidence", "--score", "2", "--intent")
	require.NoError(t, err)

	var body map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 0.8, body["confidence"])

	out, err = runCLI(t, "confidence", "--score", "5", "--weight", "0.4")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 0.38, body["confidence"])

	_, err = runCLI(t, "confidence", "--score", "1", "--weight", "-1")
	assert.Error(t, err)
}

func TestSkillsListCommand(t *testing.T) {
	dir := fixtureSkills(t)

	out, err := runCLI(t, "--skills-dir", dir, "skills", "list", "--json")
	require.NoError(t, err)

	var entries []struct {
		Name   string  `json:"name"`
		Weight float64 `json:"weight"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	names := []string{entries[0].Name, entries[1].Name}
	assert.ElementsMatch(t, []string{"workflows-git", "system-memory"}, names)

	out, err = runCLI(t, "--skills-dir", dir, "skills", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "0.50")
}

func TestSkillsValidateCommand(t *testing.T) {
	dir := fixtureSkills(t)

	out, err := runCLI(t, "--skills-dir", dir, "skills", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "2 skills valid")

	writeSkill(t, dir, "broken", "no frontmatter here\n")
	writeSkill(t, dir, "nameless", "---\ndescription: missing name\n---\n")

	_, err = runCLI(t, "--skills-dir", dir, "skills", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing frontmatter")
	assert.Contains(t, err.Error(), "skill name is required")
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestSchemaCommand(t *testing.T) {
	out, err := runCLI(t, "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "array", schema["type"])
	assert.Contains(t, out, "passes_threshold")
	assert.Contains(t, out, "uncertainty")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["version"])
	assert.NotEmpty(t, info["goVersion"])
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runCLI(t, "--log-level", "loud", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestValidateServeConfig(t *testing.T) {
	tests := []struct {
		name          string
		config        *ServeConfig
		expectedError string
	}{
		{name: "valid config", config: &ServeConfig{Host: "localhost", Port: 8080}},
		{name: "valid IP address", config: &ServeConfig{Host: "127.0.0.1", Port: 8080}},
		{name: "valid 0.0.0.0", config: &ServeConfig{Host: "0.0.0.0", Port: 3000}},
		{name: "empty host", config: &ServeConfig{Port: 8080}, expectedError: "host cannot be empty"},
		{name: "invalid host with space", config: &ServeConfig{Host: "local host", Port: 8080}, expectedError: "invalid host: local host"},
		{name: "invalid host with colon", config: &ServeConfig{Host: "localhost:8080", Port: 8080}, expectedError: "invalid host: localhost:8080"},
		{name: "port too low", config: &ServeConfig{Host: "localhost", Port: 0}, expectedError: "port must be between 1 and 65535, got 0"},
		{name: "port too high", config: &ServeConfig{Host: "localhost", Port: 65536}, expectedError: "port must be between 1 and 65535, got 65536"},
		{name: "privileged port", config: &ServeConfig{Host: "localhost", Port: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateServeConfig(tt.config)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	_, err := runCLI(t, "serve", "--port", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server configuration")
}
