package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	analysis "github.com/zhouzirui/neurosync/backend/internal/analysis/emotion"
	"github.com/zhouzirui/neurosync/backend/internal/mocks"
	speechmodel "github.com/zhouzirui/neurosync/backend/internal/model/speech"
	"github.com/zhouzirui/neurosync/backend/internal/service/chat"
	"github.com/zhouzirui/neurosync/backend/internal/service/emotion"
	"github.com/zhouzirui/neurosync/backend/internal/service/speech"
)

func newLocalClassifier(t *testing.T) *emotion.Service {
	t.Helper()
	lexicon, err := analysis.NewLexicon()
	require.NoError(t, err)
	scorer, err := analysis.NewLexiconScorer()
	require.NoError(t, err)
	local := analysis.NewClassifier(lexicon, scorer, zaptest.NewLogger(t))
	return emotion.NewService(nil, local, emotion.Config{}, zaptest.NewLogger(t))
}

func TestServiceReply(t *testing.T) {
	req := require.New(t)
	svc := chat.NewService(newLocalClassifier(t), nil, zaptest.NewLogger(t))

	got, err := svc.Reply(context.Background(), "I am so happy and excited today!")

	req.NoError(err)
	req.Equal(analysis.Happy, got.Emotion)
	req.Equal(analysis.SourceLocal, got.Source)
	req.InDelta(0.8, got.Confidence, 1e-9)
	req.Len(got.Suggestions, 3)
	req.Equal("I'm glad you're feeling happy! That's wonderful! Keep spreading positivity! How else can I help you today?", got.Message)
}

func TestServiceReplyRequiresText(t *testing.T) {
	svc := chat.NewService(newLocalClassifier(t), nil, nil)

	_, err := svc.Reply(context.Background(), "")
	require.ErrorIs(t, err, chat.ErrTextRequired)

	_, err = svc.ReplyWithAudio(context.Background(), "", "en")
	require.ErrorIs(t, err, chat.ErrTextRequired)

	_, err = svc.Speak(context.Background(), "", "en")
	require.ErrorIs(t, err, chat.ErrTextRequired)
}

func TestServiceReplyWithAudio(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	synth := mocks.NewMockSynthesizer(ctrl)
	synth.EXPECT().Provider().Return("fake").AnyTimes()
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
			req.Equal("en", r.Language)
			req.True(strings.HasPrefix(r.Text, "I'm sorry you're feeling down."))
			req.NotNil(r.Emotion)
			req.Equal(analysis.Sad, r.Emotion.Label)
			return &speechmodel.TTSResponse{AudioData: []byte("mp3"), Format: "mp3"}, nil
		})

	speaker := speech.NewService(synth, time.Second, zaptest.NewLogger(t))
	svc := chat.NewService(newLocalClassifier(t), speaker, zaptest.NewLogger(t))

	got, err := svc.ReplyWithAudio(context.Background(), "I feel so sad and lonely", "")

	req.NoError(err)
	req.Equal(analysis.Sad, got.Emotion)
	req.NotNil(got.AudioURL)
	req.Equal("data:audio/mpeg;base64,bXAz", *got.AudioURL)
}

func TestServiceReplyWithAudioDegradesOnSynthesisFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	synth := mocks.NewMockSynthesizer(ctrl)
	synth.EXPECT().Provider().Return("fake").AnyTimes()
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return(nil, errors.New("engine down"))

	speaker := speech.NewService(synth, time.Second, zaptest.NewLogger(t))
	svc := chat.NewService(newLocalClassifier(t), speaker, zaptest.NewLogger(t))

	got, err := svc.ReplyWithAudio(context.Background(), "I am nervous about the exam tomorrow morning at school", "fr")

	req.NoError(err)
	req.Nil(got.AudioURL)
	req.Equal(analysis.Anxious, got.Emotion)
	req.NotEmpty(got.Message)
}

func TestServiceReplyWithAudioWithoutSpeaker(t *testing.T) {
	svc := chat.NewService(newLocalClassifier(t), speech.NewService(nil, 0, nil), nil)

	got, err := svc.ReplyWithAudio(context.Background(), "nothing much", "en")
	require.NoError(t, err)
	require.Nil(t, got.AudioURL)
	require.Equal(t, analysis.Neutral, got.Emotion)
}

func TestServiceSpeak(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	synth := mocks.NewMockSynthesizer(ctrl)
	synth.EXPECT().Provider().Return("fake").AnyTimes()
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
			req.Equal("sw", r.Language)
			req.Nil(r.Emotion)
			return &speechmodel.TTSResponse{AudioData: []byte{0xFF}, Format: "mp3"}, nil
		})

	svc := chat.NewService(newLocalClassifier(t), speech.NewService(synth, time.Second, nil), nil)
	url, err := svc.Speak(context.Background(), "Habari yako", "sw")

	req.NoError(err)
	req.Equal("data:audio/mpeg;base64,/w==", url)
}

func TestServiceSpeakSurfacesSynthesisErrors(t *testing.T) {
	svc := chat.NewService(newLocalClassifier(t), speech.NewService(nil, 0, nil), nil)

	_, err := svc.Speak(context.Background(), "hello", "")
	require.ErrorIs(t, err, speech.ErrSpeechDisabled)
}
