package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary_DefaultCodes(t *testing.T) {
	v := DefaultVocabulary()

	want := map[string]Emotion{
		"angry": 0, "disgust": 1, "fear": 2, "happy": 3,
		"sad": 4, "surprise": 5, "neutral": 6, "gay": 7,
	}
	assert.Equal(t, len(want), v.Len())
	for name, code := range want {
		got, err := v.Code(name)
		require.NoError(t, err)
		assert.Equal(t, code, got, name)

		back, err := v.Name(code)
		require.NoError(t, err)
		assert.Equal(t, name, back)
	}
}

func TestVocabulary_RejectsUnknownLabel(t *testing.T) {
	v := DefaultVocabulary()

	_, err := v.Code("bored")
	assert.ErrorIs(t, err, ErrUnknownLabel)

	_, err = v.Code("Happy")
	assert.ErrorIs(t, err, ErrUnknownLabel)

	_, err = v.Name(8)
	assert.ErrorIs(t, err, ErrUnknownLabel)
	_, err = v.Name(-1)
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestVocabulary_ExtraCategoriesKeepFixedCodes(t *testing.T) {
	v, err := NewVocabulary("contempt", "confused")
	require.NoError(t, err)

	assert.Equal(t, 9, v.Len())
	code, err := v.Code("contempt")
	require.NoError(t, err)
	assert.Equal(t, Emotion(7), code)

	code, err = v.Code("neutral")
	require.NoError(t, err)
	assert.Equal(t, Neutral, code)

	_, err = v.Code("gay")
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestVocabulary_Parse(t *testing.T) {
	v, err := ParseVocabulary("angry,disgust,fear,happy,sad,surprise,neutral,contempt")
	require.NoError(t, err)
	assert.Equal(t, []string{"angry", "disgust", "fear", "happy", "sad", "surprise", "neutral", "contempt"}, v.Names())

	v, err = ParseVocabulary("angry, disgust, fear, happy, sad, surprise, neutral")
	require.NoError(t, err)
	assert.Equal(t, 7, v.Len())

	_, err = ParseVocabulary("disgust,angry,fear,happy,sad,surprise,neutral")
	assert.Error(t, err, "reordering the fixed emotions must be rejected")

	_, err = ParseVocabulary("angry,disgust,fear")
	assert.Error(t, err)

	_, err = ParseVocabulary("angry,disgust,fear,happy,sad,surprise,neutral,happy")
	assert.Error(t, err)

	_, err = NewVocabulary(" ")
	assert.Error(t, err)
}

func TestSplit_ParseAndToggle(t *testing.T) {
	s, err := ParseSplit("training")
	require.NoError(t, err)
	assert.Equal(t, Training, s)
	assert.Equal(t, Testing, s.Toggle())
	assert.Equal(t, Training, s.Toggle().Toggle())

	_, err = ParseSplit("Training")
	assert.ErrorIs(t, err, ErrUnknownSplit)
	_, err = ParseSplit("validation")
	assert.ErrorIs(t, err, ErrUnknownSplit)
}
