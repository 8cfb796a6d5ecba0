// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package input

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "value.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		src     func(t *testing.T) Source
		want    string
		wantErr error
	}{
		{
			name:    "neither value nor file",
			src:     func(t *testing.T) Source { return Source{} },
			wantErr: ErrMissingInput,
		},
		{
			name: "literal value",
			src:  func(t *testing.T) Source { return Source{Value: strPtr("secret1")} },
			want: "secret1",
		},
		{
			name:    "empty literal value",
			src:     func(t *testing.T) Source { return Source{Value: strPtr("")} },
			wantErr: ErrEmptyValue,
		},
		{
			name: "file contents verbatim",
			src: func(t *testing.T) Source {
				return Source{FilePath: writeFile(t, "line one\nline two\n")}
			},
			want: "line one\nline two\n",
		},
		{
			name: "file wins over literal value",
			src: func(t *testing.T) Source {
				return Source{Value: strPtr("from-flag"), FilePath: writeFile(t, "from-file")}
			},
			want: "from-file",
		},
		{
			name: "missing file",
			src: func(t *testing.T) Source {
				return Source{FilePath: filepath.Join(t.TempDir(), "nope.txt")}
			},
			wantErr: ErrFileNotFound,
		},
		{
			name: "directory is not a file",
			src: func(t *testing.T) Source {
				return Source{FilePath: t.TempDir()}
			},
			wantErr: ErrFileNotFound,
		},
		{
			name: "missing file with literal value still fails",
			src: func(t *testing.T) Source {
				return Source{Value: strPtr("fallback"), FilePath: filepath.Join(t.TempDir(), "nope.txt")}
			},
			wantErr: ErrFileNotFound,
		},
		{
			name: "empty file",
			src: func(t *testing.T) Source {
				return Source{FilePath: writeFile(t, "")}
			},
			wantErr: ErrEmptyValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.src(t))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveWarnsWhenValueIgnored(t *testing.T) {
	var buf bytes.Buffer
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(orig) })

	got, err := Resolve(Source{Value: strPtr("ignored"), FilePath: writeFile(t, "used")})
	require.NoError(t, err)
	assert.Equal(t, "used", got)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "ignoring value")
	assert.NotContains(t, buf.String(), "ignored\"")
}

func TestResolveNoWarningForSingleSource(t *testing.T) {
	var buf bytes.Buffer
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(orig) })

	_, err := Resolve(Source{FilePath: writeFile(t, "used")})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
