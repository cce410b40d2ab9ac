package presenter

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/jingkaihe/skill-advisor/pkg/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	presenter := New()
	assert.NotNil(t, presenter)
	assert.Equal(t, os.Stdout, presenter.output)
	assert.Equal(t, os.Stderr, presenter.errorOutput)
	assert.False(t, presenter.quiet)
}

func TestNewWithOptions(t *testing.T) {
	var output, errorOutput bytes.Buffer
	presenter := NewWithOptions(&output, &errorOutput, ColorNever)

	assert.Equal(t, &output, presenter.output)
	assert.Equal(t, &errorOutput, presenter.errorOutput)
	assert.Equal(t, ColorNever, presenter.colorMode)
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name     string
		noColor  string
		envColor string
		expected ColorMode
	}{
		{"NO_COLOR set", "1", "", ColorNever},
		{"always", "", "always", ColorAlways},
		{"force", "", "force", ColorAlways},
		{"never", "", "never", ColorNever},
		{"off", "", "off", ColorNever},
		{"auto", "", "auto", ColorAuto},
		{"default", "", "", ColorAuto},
		{"invalid value", "", "invalid", ColorAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("SKILL_ADVISOR_COLOR", tt.envColor)
			if tt.noColor == "" {
				os.Unsetenv("NO_COLOR")
			}

			assert.Equal(t, tt.expected, detectColorMode())
		})
	}
}

func TestError(t *testing.T) {
	var errorOutput bytes.Buffer
	presenter := NewWithOptions(nil, &errorOutput, ColorNever)

	presenter.Error(errors.New("test error"), "test context")
	assert.Equal(t, "[ERROR] test context: test error\n", errorOutput.String())

	errorOutput.Reset()
	presenter.Error(errors.New("bare"), "")
	assert.Equal(t, "[ERROR] bare\n", errorOutput.String())

	errorOutput.Reset()
	presenter.Error(nil, "ignored")
	assert.Empty(t, errorOutput.String())
}

func TestMessages(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Success("done")
	presenter.Warning("careful")
	presenter.Info("note")
	presenter.Section("Title")

	assert.Equal(t, "✓ done\n⚠ careful\nnote\nTitle\n-----\n", output.String())
}

func TestQuietMode(t *testing.T) {
	var output, errorOutput bytes.Buffer
	presenter := NewWithOptions(&output, &errorOutput, ColorNever)
	presenter.SetQuiet(true)
	require.True(t, presenter.IsQuiet())

	presenter.Success("done")
	presenter.Warning("careful")
	presenter.Info("note")
	presenter.Section("Title")
	presenter.Recommendations(nil)
	assert.Empty(t, output.String())

	presenter.Error(errors.New("still shown"), "")
	assert.Contains(t, errorOutput.String(), "still shown")
}

func TestRecommendations(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Recommendations([]advisor.Recommendation{
		{Skill: "git-release", Confidence: 0.8, Uncertainty: 0.3, Reason: "Matched: intent:commit", PassesThreshold: true},
		{Skill: "docs", Confidence: 0.4, Uncertainty: 0.85, Reason: "Matched: ~readme"},
	})

	lines := strings.Split(strings.TrimRight(output.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "SKILL"))
	assert.Contains(t, lines[1], "git-release")
	assert.Contains(t, lines[1], "0.80")
	assert.Contains(t, lines[1], "auto")
	assert.True(t, strings.HasSuffix(lines[1], "LOW"))
	assert.Contains(t, lines[2], "ask")
	assert.True(t, strings.HasSuffix(lines[2], "HIGH"))

	// columns line up
	assert.Equal(t, strings.Index(lines[0], "CONFIDENCE"), strings.Index(lines[1], "0.80"))
}

func TestRecommendationsEmpty(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Recommendations([]advisor.Recommendation{})
	assert.Equal(t, "No matching skills\n", output.String())
}

func TestSkills(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Skills(skills.Catalog{
		{Name: "pdf", Description: strings.Repeat("x", 80), Weight: 1, Directory: "/tmp/pdf"},
		{Name: "command-spec-kit", Description: "spec", Weight: 1},
	})

	out := output.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "/tmp/pdf")
	assert.Contains(t, out, "(builtin)")
	assert.Contains(t, out, strings.Repeat("x", 57)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 58))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "héllo", truncate("héllo", 5))
}
