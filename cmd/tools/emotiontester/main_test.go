package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	audio, err := decodeDataURL("data:audio/mpeg;base64,bXAz")
	require.NoError(t, err)
	require.Equal(t, []byte("mp3"), audio)

	_, err = decodeDataURL("https://example.com/a.mp3")
	require.Error(t, err)
}

func TestClassifyCommand(t *testing.T) {
	t.Setenv("EMOTION_REMOTE_PROVIDER", "none")
	t.Setenv("SPEECH_PROVIDER", "none")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"classify", "I", "am", "so", "happy", "and", "excited", "today!"})

	require.NoError(t, cmd.Execute())

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, "Happy", got["emotion"])
	require.Equal(t, "local", got["source"])
}

func TestSpeakWithoutProviderFails(t *testing.T) {
	t.Setenv("EMOTION_REMOTE_PROVIDER", "none")
	t.Setenv("SPEECH_PROVIDER", "none")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"speak", "hello"})

	require.Error(t, cmd.Execute())
}
