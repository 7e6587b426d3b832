package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderArgs(t *testing.T) {
	args := renderArgs("/tmp/in.mp4", 12.5, 640, "/tmp/out/frame_0003.jpg")

	assert.Equal(t, []string{
		"-ss", "12.500",
		"-i", "/tmp/in.mp4",
		"-frames:v", "1",
		"-vf", "scale='min(640,iw)':-2",
		"-y",
		"/tmp/out/frame_0003.jpg",
	}, args)
}

func TestRenderArgsSeekPrecision(t *testing.T) {
	args := renderArgs("in.mp4", 0, 320, "out.jpg")
	assert.Equal(t, "0.000", args[1])

	args = renderArgs("in.mp4", 95.0, 320, "out.jpg")
	assert.Equal(t, "95.000", args[1])
}
