package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseAsset(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"darwin amd64", "darwin", "amd64", "courseforge_Darwin_all.tar.gz", false},
		{"darwin arm64", "darwin", "arm64", "courseforge_Darwin_all.tar.gz", false},
		{"linux amd64", "linux", "amd64", "courseforge_Linux_x86_64.tar.gz", false},
		{"linux arm64", "linux", "arm64", "courseforge_Linux_arm64.tar.gz", false},
		{"linux 386", "linux", "386", "courseforge_Linux_i386.tar.gz", false},
		{"windows amd64", "windows", "amd64", "courseforge_Windows_x86_64.zip", false},
		{"windows arm64", "windows", "arm64", "courseforge_Windows_arm64.zip", false},
		{"unsupported os", "freebsd", "amd64", "", true},
		{"unsupported arch", "linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := releaseAsset(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksums(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		input := "abc123  courseforge_Darwin_all.tar.gz\ndef456  courseforge_Linux_x86_64.tar.gz\n"
		got := parseChecksums([]byte(input))
		assert.Equal(t, map[string]string{
			"courseforge_Darwin_all.tar.gz":   "abc123",
			"courseforge_Linux_x86_64.tar.gz": "def456",
		}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, parseChecksums(nil))
	})

	t.Run("malformed lines skipped", func(t *testing.T) {
		input := "abc123  file.tar.gz\nbadline\n  \nfoo  bar  baz\nghi789  other.tar.gz\n"
		got := parseChecksums([]byte(input))
		assert.Equal(t, map[string]string{
			"file.tar.gz":  "abc123",
			"other.tar.gz": "ghi789",
		}, got)
	})
}

func TestCheckDigest(t *testing.T) {
	data := []byte("hello world")
	sum := sha256.Sum256(data)

	assert.NoError(t, checkDigest(data, hex.EncodeToString(sum[:])))

	err := checkDigest(data, "0000000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestExtractExecutable(t *testing.T) {
	binary := []byte("#!/bin/sh\necho courseforge")

	t.Run("tar.gz", func(t *testing.T) {
		archive := buildTarGz(t, "courseforge", binary)
		got, err := extractExecutable(archive, "courseforge_Darwin_all.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, binary, got)
	})

	t.Run("missing binary", func(t *testing.T) {
		archive := buildTarGz(t, "other-file", binary)
		_, err := extractExecutable(archive, "courseforge_Darwin_all.tar.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestSwapBinary(t *testing.T) {
	target := filepath.Join(t.TempDir(), "courseforge")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0755))

	newData := []byte("new-binary-content")
	sum := sha256.Sum256(newData)
	require.NoError(t, swapBinary(newData, target, sum[:]))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, newData, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

// releaseServer serves a fake GitHub release: latest tag v2.0.0 with the
// given archive and checksum manifest.
func releaseServer(t *testing.T, asset string, archive []byte, checksums string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/abhisek/courseforge/releases/latest":
			_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
		case "/abhisek/courseforge/releases/download/v2.0.0/" + asset:
			_, _ = w.Write(archive)
		case "/abhisek/courseforge/releases/download/v2.0.0/checksums.txt":
			_, _ = w.Write([]byte(checksums))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUpdate(t *testing.T) {
	const asset = "courseforge_Darwin_all.tar.gz"
	binary := []byte("new-courseforge-binary")
	archive := buildTarGz(t, "courseforge", binary)
	archiveSum := sha256.Sum256(archive)

	t.Run("happy path", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "courseforge")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0755))

		checksums := fmt.Sprintf("%s  %s\n", hex.EncodeToString(archiveSum[:]), asset)
		server := releaseServer(t, asset, archive, checksums)

		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, binary, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"v1.0.0","html_url":"https://example.com/v1.0.0"}`))
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		checksums := fmt.Sprintf("%s  %s\n", "0000000000000000000000000000000000000000000000000000000000000000", asset)
		server := releaseServer(t, asset, archive, checksums)

		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("download failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/repos/abhisek/courseforge/releases/latest" {
				_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: name,
		Size: int64(len(content)),
		Mode: 0755,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}
