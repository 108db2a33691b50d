package ffmpeg

import (
	"context"
	"errors"
	"testing"

	"github.com/opencaption/captiond/internal/adapters/cmdrunner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records the command it was asked to run.
type fakeRunner struct {
	name   string
	args   []string
	result cmdrunner.Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (cmdrunner.Result, error) {
	f.name = name
	f.args = args
	return f.result, f.err
}

func TestExtractBuildsFFmpegCommand(t *testing.T) {
	runner := &fakeRunner{}
	ex := NewExtractor(ExtractorOptions{BinaryPath: "/opt/ffmpeg/bin/ffmpeg", Runner: runner})

	require.NoError(t, ex.Extract(context.Background(), "/uploads/j1_clip.mp4", "/uploads/j1_clip.mp4.mp3"))

	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", runner.name)
	assert.Equal(t, []string{
		"-i", "/uploads/j1_clip.mp4",
		"-vn",
		"-acodec", "libmp3lame",
		"-y",
		"/uploads/j1_clip.mp4.mp3",
	}, runner.args)
}

func TestExtractValidatesPaths(t *testing.T) {
	ex := NewExtractor(ExtractorOptions{BinaryPath: "ffmpeg", Runner: &fakeRunner{}})

	assert.Error(t, ex.Extract(context.Background(), "", "/out.mp3"))
	assert.Error(t, ex.Extract(context.Background(), "/in.mp4", ""))
}

func TestExtractReportsCommandFailure(t *testing.T) {
	runner := &fakeRunner{
		result: cmdrunner.Result{ExitCode: 1, Stderr: "Invalid data found when processing input"},
		err:    errors.New("exit status 1"),
	}
	ex := NewExtractor(ExtractorOptions{BinaryPath: "ffmpeg", Runner: runner})

	err := ex.Extract(context.Background(), "/in.mp4", "/out.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg (exit 1)")
}

func TestTail(t *testing.T) {
	assert.Equal(t, "abc", tail("abc", 5))
	assert.Equal(t, "cde", tail("abcde", 3))
}
