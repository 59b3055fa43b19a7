package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
)

type googleRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice       map[string]string `json:"voice"`
	AudioConfig map[string]string `json:"audioConfig"`
}

func TestGoogleTTSSynthesize(t *testing.T) {
	req := require.New(t)

	var got googleRequest
	var auth, project string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		project = r.Header.Get("x-goog-user-project")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString([]byte("mp3-bytes")),
		})
	}))
	defer server.Close()

	client, err := NewGoogleTTSClient(speechmodel.GoogleConfig{
		AccessToken: "tok",
		ProjectID:   "proj",
		Endpoint:    server.URL,
		Voice:       "es-ES-Standard-A",
	}, server.Client())
	req.NoError(err)

	resp, err := client.Synthesize(context.Background(), &speechmodel.TTSRequest{Text: "hola", Language: "es"})
	req.NoError(err)
	req.Equal([]byte("mp3-bytes"), resp.AudioData)
	req.Equal("mp3", resp.Format)
	req.Equal("google", resp.Provider)

	req.Equal("Bearer tok", auth)
	req.Equal("proj", project)
	req.Equal("hola", got.Input.Text)
	req.Equal("es-ES", got.Voice["languageCode"])
	req.Equal("es-ES-Standard-A", got.Voice["name"])
	req.Equal("MP3", got.AudioConfig["audioEncoding"])
}

func TestGoogleTTSSkipsMismatchedVoice(t *testing.T) {
	var got googleRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"audioContent":"` + base64.StdEncoding.EncodeToString([]byte("x")) + `"}`))
	}))
	defer server.Close()

	client, err := NewGoogleTTSClient(speechmodel.GoogleConfig{
		AccessToken: "tok", ProjectID: "proj", Endpoint: server.URL, Voice: "en-US-Standard-C",
	}, nil)
	require.NoError(t, err)

	_, err = client.Synthesize(context.Background(), &speechmodel.TTSRequest{Text: "bonjour", Language: "fr"})
	require.NoError(t, err)
	require.Equal(t, "fr-FR", got.Voice["languageCode"])
	require.NotContains(t, got.Voice, "name")
}

func TestGoogleTTSFailures(t *testing.T) {
	t.Run("non 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "denied", http.StatusForbidden)
		}))
		defer server.Close()

		client, err := NewGoogleTTSClient(speechmodel.GoogleConfig{AccessToken: "t", ProjectID: "p", Endpoint: server.URL}, nil)
		require.NoError(t, err)
		_, err = client.Synthesize(context.Background(), &speechmodel.TTSRequest{Text: "hi"})
		require.ErrorContains(t, err, "403")
	})

	t.Run("empty audio", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client, err := NewGoogleTTSClient(speechmodel.GoogleConfig{AccessToken: "t", ProjectID: "p", Endpoint: server.URL}, nil)
		require.NoError(t, err)
		_, err = client.Synthesize(context.Background(), &speechmodel.TTSRequest{Text: "hi"})
		require.ErrorContains(t, err, "empty audioContent")
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewGoogleTTSClient(speechmodel.GoogleConfig{ProjectID: "p"}, nil)
		require.Error(t, err)
		_, err = NewGoogleTTSClient(speechmodel.GoogleConfig{AccessToken: "t"}, nil)
		require.Error(t, err)
	})
}

func TestGoogleLocale(t *testing.T) {
	require.Equal(t, "en-US", googleLocale(""))
	require.Equal(t, "sw-KE", googleLocale("SW"))
	require.Equal(t, "lg", googleLocale("lg"))
	require.Equal(t, "en-GB", googleLocale("en-GB"))
}
