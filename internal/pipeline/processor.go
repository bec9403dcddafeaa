package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/models"
	"github.com/williamanish-889/educlip-backend/internal/repository"
)

// Processor drives a video through the lifecycle stages in the background.
// Exactly one run is launched per video, at upload time; runs for distinct
// videos are independent and may interleave freely.
//
// Real transcription and analysis live in external services that are not
// wired up yet. Each stage therefore waits a fixed delay in their place and
// writes a placeholder artifact at the stage boundary.
type Processor struct {
	videos      repository.VideoRepository
	transcripts repository.TranscriptRepository
	summaries   repository.SummaryRepository
	logger      *zap.Logger
	stageDelay  time.Duration
}

// NewProcessor creates a new lifecycle processor.
func NewProcessor(
	videos repository.VideoRepository,
	transcripts repository.TranscriptRepository,
	summaries repository.SummaryRepository,
	logger *zap.Logger,
	stageDelay time.Duration,
) *Processor {
	return &Processor{
		videos:      videos,
		transcripts: transcripts,
		summaries:   summaries,
		logger:      logger,
		stageDelay:  stageDelay,
	}
}

// Launch starts the processing run for videoID in its own goroutine and
// returns a channel that receives the run's outcome and is then closed.
// Callers that do not care (the upload path) simply discard the channel;
// tests use it to await completion deterministically.
func (p *Processor) Launch(ctx context.Context, videoID string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- p.run(ctx, videoID)
	}()
	return done
}

// run advances the video one stage at a time until COMPLETE. Any failure
// moves the video to FAILED and stops the run; there are no retries and no
// caller to report to, so the error is only logged and returned on the
// completion channel.
func (p *Processor) run(ctx context.Context, videoID string) error {
	p.logger.Info("Processing started", zap.String("video_id", videoID))

	video, err := p.videos.GetByID(videoID)
	if err != nil {
		p.logger.Error("Video not found at start of processing", zap.String("video_id", videoID), zap.Error(err))
		return err
	}

	status := video.Status
	for !status.Terminal() {
		next, ok := status.Next()
		if !ok {
			break
		}

		if err := p.wait(ctx); err != nil {
			return p.fail(videoID, err)
		}

		if err := p.videos.UpdateStatus(videoID, next); err != nil {
			return p.fail(videoID, fmt.Errorf("failed to advance to %s: %w", next, err))
		}
		p.logger.Info("Stage reached", zap.String("video_id", videoID), zap.String("status", string(next)))

		if err := p.persistStageArtifact(videoID, next); err != nil {
			return p.fail(videoID, err)
		}

		status = next
	}

	p.logger.Info("Processing complete", zap.String("video_id", videoID))
	return nil
}

func (p *Processor) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.stageDelay):
		return nil
	}
}

// persistStageArtifact writes the artifact owed at the given stage boundary:
// a transcript when transcription finishes, a summary when analysis finishes.
func (p *Processor) persistStageArtifact(videoID string, status models.VideoStatus) error {
	switch status {
	case models.StatusTranscribing:
		transcript := &models.Transcript{
			VideoID:  videoID,
			FullText: "Sample transcript...",
			Segments: []models.TranscriptSegment{},
			Duration: 600.0,
			Language: "en",
		}
		if err := p.transcripts.Create(transcript); err != nil {
			return fmt.Errorf("failed to persist transcript: %w", err)
		}
	case models.StatusAnalyzing:
		summary := &models.Summary{
			VideoID:            videoID,
			ExecutiveSummary:   "This lecture covers...",
			KeyConcepts:        []string{},
			LearningObjectives: []string{},
			Topics:             []string{},
			DifficultyLevel:    "intermediate",
		}
		if err := p.summaries.Create(summary); err != nil {
			return fmt.Errorf("failed to persist summary: %w", err)
		}
	}
	return nil
}

// fail moves the video to FAILED. FAILED is absorbing: if the video already
// reached a terminal state the transition is rejected and that is fine.
func (p *Processor) fail(videoID string, cause error) error {
	p.logger.Error("Processing failed", zap.String("video_id", videoID), zap.Error(cause))
	if err := p.videos.UpdateStatus(videoID, models.StatusFailed); err != nil {
		p.logger.Error("Failed to mark video as failed", zap.String("video_id", videoID), zap.Error(err))
	}
	return cause
}
