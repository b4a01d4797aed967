package stream_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/laxjson/laxjson"
	"github.com/laxjson/laxjson/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	var out bytes.Buffer
	err := stream.Transform(strings.NewReader(`{name: 'John'}`), &out, stream.Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"name": "John"}`, out.String())
}

func TestTransformSmallChunkSize(t *testing.T) {
	input := `{"a": 1, "b": [1, 2, 3,], "c": "hello world this is a longer value"}`
	var out bytes.Buffer
	err := stream.Transform(strings.NewReader(input), &out, stream.Options{ChunkSize: 4})
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1, "b": [1, 2, 3], "c": "hello world this is a longer value"}`, out.String())
}

func TestTransformWindowSizeExceeded(t *testing.T) {
	input := `{"a": "` + strings.Repeat("x", 1000) + `"}`
	var out bytes.Buffer
	err := stream.Transform(strings.NewReader(input), &out, stream.Options{WindowSize: 16})
	require.Error(t, err)
	assert.ErrorIs(t, err, laxjson.ErrBufferExceeded)
}

func TestTransformPropagatesRepairError(t *testing.T) {
	var out bytes.Buffer
	err := stream.Transform(strings.NewReader(""), &out, stream.Options{})
	require.Error(t, err)
}
