package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
)

// ErrRecognizerUnavailable is returned when voice capture is attempted
// without a configured speech recognizer.
var ErrRecognizerUnavailable = errors.New("voice: recognizer unavailable")

// Recognizer converts spoken audio to text. Implementations call an
// external recognition service and must honor the context deadline.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

// VoiceService turns recognized speech into a task draft. All
// recognition failures stay inside this service and never affect task
// data.
type VoiceService struct {
	Recognizer Recognizer
	Timeout    time.Duration

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *VoiceService) today() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// TaskDraft is the parsed suggestion handed back to the caller. A nil
// Priority means the due-date rule decides later; a nil Due means none
// was spoken.
type TaskDraft struct {
	Title    string           `json:"title"`
	Due      *time.Time       `json:"due,omitempty"`
	Priority *domain.Priority `json:"priority,omitempty"`
}

// Capture records and recognizes speech, then parses the transcript.
func (s *VoiceService) Capture(ctx context.Context) (TaskDraft, error) {
	if s.Recognizer == nil {
		return TaskDraft{}, ErrRecognizerUnavailable
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := s.Recognizer.Recognize(ctx)
	if err != nil {
		return TaskDraft{}, fmt.Errorf("voice: recognition failed: %w", err)
	}
	return s.Parse(text), nil
}

// Parse applies the transcript heuristics against today's date.
func (s *VoiceService) Parse(text string) TaskDraft {
	return ParseTranscript(text, s.today())
}

var (
	lowWordRe   = regexp.MustCompile(`(?i)\blow\b`)
	tomorrowRe  = regexp.MustCompile(`(?i)\btomorrow\b`)
	inDaysRe    = regexp.MustCompile(`(?i)\bin (\d+) days?\b`)
	multiSpaces = regexp.MustCompile(`\s{2,}`)
)

// ParseTranscript extracts a title, an optional relative due date and
// an optional priority hint from free text. Rules are ordered and the
// two due-date detectors are mutually exclusive: "tomorrow" wins over
// "in N days".
func ParseTranscript(text string, today time.Time) TaskDraft {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	draft := TaskDraft{Title: text}

	switch {
	case strings.Contains(lower, "high priority") || strings.Contains(lower, "urgent"):
		p := domain.PriorityHigh
		draft.Priority = &p
	case strings.Contains(lower, "low priority") || lowWordRe.MatchString(text):
		p := domain.PriorityLow
		draft.Priority = &p
	}

	if tomorrowRe.MatchString(text) {
		due := today.AddDate(0, 0, 1)
		draft.Due = &due
		draft.Title = cleanTitle(tomorrowRe.ReplaceAllString(text, ""), text)
		return draft
	}

	if m := inDaysRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			due := today.AddDate(0, 0, n)
			draft.Due = &due
			draft.Title = cleanTitle(inDaysRe.ReplaceAllString(text, ""), text)
		}
	}

	return draft
}

// cleanTitle tidies a title after phrase stripping, falling back to the
// full transcript when stripping left nothing.
func cleanTitle(stripped, original string) string {
	title := strings.TrimSpace(multiSpaces.ReplaceAllString(stripped, " "))
	if title == "" {
		return original
	}
	return title
}
