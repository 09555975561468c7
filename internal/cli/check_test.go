package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCmd(t *testing.T) {
	tests := map[string]struct {
		content     string
		args        []string
		wantStdout  string
		wantStderr  []string
		wantErrCode int
	}{
		"clean document": {
			content:    "- name: 1.0.0\n  commits:\n    - categories: [Added]\n      githubIssue: {title: t, user: {login: a}}\n",
			args:       []string{"--plain"},
			wantStdout: "1 release(s), 1 commit(s) OK\n",
		},
		"warnings are reported": {
			content:    "- name: next\n  commits:\n    - categories: []\n",
			args:       []string{"--plain"},
			wantStdout: "1 release(s), 1 commit(s) OK\n",
			wantStderr: []string{"warning: releases[0].name", "warning: releases[0].commits[0]"},
		},
		"strict fails on warnings": {
			content:     "- name: next\n",
			args:        []string{"--plain", "--strict"},
			wantStderr:  []string{"warning(s) found (--strict)"},
			wantErrCode: ExitValidationFailed,
		},
		"validation error": {
			content:     "- name: 1.0.0\n- name: v1.0.0\n",
			wantErrCode: ExitValidationFailed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := setupWorkspace(t)
			path := writeTestFile(t, filepath.Join(dir, "releases.yaml"), tt.content)

			stdout, stderr, err := executeCommand(t, append([]string{"check", path}, tt.args...)...)
			if tt.wantErrCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrCode, exitCodeFor(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantStdout, stdout)
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr, want)
			}
		})
	}
}
