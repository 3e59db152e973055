package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/stretchr/testify/require"
)

func TestParseTranscript(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	t.Run("urgent marks high priority", func(t *testing.T) {
		draft := ParseTranscript("urgent call the plumber", today)
		require.NotNil(t, draft.Priority)
		require.Equal(t, domain.PriorityHigh, *draft.Priority)
	})

	t.Run("high priority phrase marks high", func(t *testing.T) {
		draft := ParseTranscript("finish the slides, high priority", today)
		require.NotNil(t, draft.Priority)
		require.Equal(t, domain.PriorityHigh, *draft.Priority)
	})

	t.Run("standalone low marks low priority", func(t *testing.T) {
		draft := ParseTranscript("water the plants, low", today)
		require.NotNil(t, draft.Priority)
		require.Equal(t, domain.PriorityLow, *draft.Priority)
	})

	t.Run("low inside a word is ignored", func(t *testing.T) {
		draft := ParseTranscript("follow up with the vendor", today)
		require.Nil(t, draft.Priority)
	})

	t.Run("no keywords leaves priority unset", func(t *testing.T) {
		draft := ParseTranscript("buy milk", today)
		require.Nil(t, draft.Priority)
		require.Nil(t, draft.Due)
		require.Equal(t, "buy milk", draft.Title)
	})

	t.Run("tomorrow sets due and strips the word", func(t *testing.T) {
		draft := ParseTranscript("pay rent tomorrow", today)
		require.NotNil(t, draft.Due)
		require.Equal(t, today.AddDate(0, 0, 1), *draft.Due)
		require.Equal(t, "pay rent", draft.Title)
	})

	t.Run("in N days sets a relative due date", func(t *testing.T) {
		draft := ParseTranscript("renew passport in 10 days", today)
		require.NotNil(t, draft.Due)
		require.Equal(t, today.AddDate(0, 0, 10), *draft.Due)
		require.Equal(t, "renew passport", draft.Title)
	})

	t.Run("in 1 day singular also matches", func(t *testing.T) {
		draft := ParseTranscript("submit timesheet in 1 day", today)
		require.NotNil(t, draft.Due)
		require.Equal(t, today.AddDate(0, 0, 1), *draft.Due)
	})

	t.Run("tomorrow wins over in N days", func(t *testing.T) {
		draft := ParseTranscript("tomorrow check back in 3 days", today)
		require.NotNil(t, draft.Due)
		require.Equal(t, today.AddDate(0, 0, 1), *draft.Due)
	})

	t.Run("stripping never leaves an empty title", func(t *testing.T) {
		draft := ParseTranscript("tomorrow", today)
		require.Equal(t, "tomorrow", draft.Title)
		require.NotNil(t, draft.Due)
	})

	t.Run("priority and due combine", func(t *testing.T) {
		draft := ParseTranscript("urgent file taxes in 2 days", today)
		require.NotNil(t, draft.Priority)
		require.Equal(t, domain.PriorityHigh, *draft.Priority)
		require.NotNil(t, draft.Due)
		require.Equal(t, today.AddDate(0, 0, 2), *draft.Due)
		require.Equal(t, "urgent file taxes", draft.Title)
	})
}

type stubRecognizer struct {
	text string
	err  error
}

func (s stubRecognizer) Recognize(ctx context.Context) (string, error) {
	return s.text, s.err
}

func TestVoiceCapture(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	t.Run("recognized text is parsed", func(t *testing.T) {
		svc := &VoiceService{
			Recognizer: stubRecognizer{text: "call mum tomorrow"},
			Now:        fixedClock(today),
		}
		draft, err := svc.Capture(context.Background())
		require.NoError(t, err)
		require.Equal(t, "call mum", draft.Title)
		require.NotNil(t, draft.Due)
	})

	t.Run("recognition failure surfaces as an error", func(t *testing.T) {
		svc := &VoiceService{Recognizer: stubRecognizer{err: errors.New("mic offline")}}
		_, err := svc.Capture(context.Background())
		require.Error(t, err)
	})

	t.Run("missing recognizer is reported", func(t *testing.T) {
		svc := &VoiceService{}
		_, err := svc.Capture(context.Background())
		require.ErrorIs(t, err, ErrRecognizerUnavailable)
	})
}
