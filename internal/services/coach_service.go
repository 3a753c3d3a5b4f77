package services

import (
	"context"
	"fmt"
	"time"

	"kalasangam_backend/internal/logger"
)

const coachTemplate = "**Analysis based on request:** \"%s\"\n\n" +
	"1. **Visuals:** Good posture.\n" +
	"2. **Tone:** Clear voice.\n" +
	"3. **Expression:** Needs more emotion in eyes."

// CoachService - заглушка AI-коуча: фиксированная задержка и шаблонный ответ.
// Видео не анализируется.
type CoachService interface {
	Analyze(ctx context.Context, prompt string) (string, error)
	ReportFilename(at time.Time) string
}

type CoachServiceImpl struct {
	delay time.Duration
}

func NewCoachService(delay time.Duration) *CoachServiceImpl {
	return &CoachServiceImpl{delay: delay}
}

func (s *CoachServiceImpl) Analyze(ctx context.Context, prompt string) (string, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	logger.CtxDebug(ctx, "Coach analysis produced", "prompt_len", len(prompt))
	return fmt.Sprintf(coachTemplate, prompt), nil
}

func (s *CoachServiceImpl) ReportFilename(at time.Time) string {
	return fmt.Sprintf("AI_Coach_Report_%d.txt", at.UnixMilli())
}
