package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/report"
)

// Recorder writes run history as it happens. Write failures are logged and
// never interrupt the run.
type Recorder struct {
	events EventRepo
	logger *zap.Logger
}

// NewRecorder returns a Recorder. A nil repo makes every call a no-op.
func NewRecorder(events EventRepo, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{events: events, logger: logger.Named("recorder")}
}

// Started records the start of a run.
func (r *Recorder) Started(ctx context.Context, sessionID string, grade int, learner string, target int) {
	r.append(ctx, SessionEventData{
		SessionID:   sessionID,
		Action:      ActionStart,
		Grade:       grade,
		LearnerName: learner,
		Target:      target,
	})
}

// Answered records one answer.
func (r *Recorder) Answered(ctx context.Context, sessionID string, a report.AnswerRecord) {
	if r.events == nil {
		return
	}
	err := r.events.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID:     sessionID,
		ItemID:        a.ItemID,
		Subject:       string(a.Subject),
		Topic:         string(a.Topic),
		Tier:          a.Tier.String(),
		Chosen:        a.Chosen,
		CorrectAnswer: a.Correct,
		Correct:       a.IsCorrect,
		PassageID:     a.PassageID,
	})
	if err != nil {
		r.logger.Warn("record answer failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// Finished records the end of a run together with its report.
func (r *Recorder) Finished(ctx context.Context, rep *report.Report) {
	data, err := json.Marshal(rep)
	if err != nil {
		r.logger.Warn("encode report failed", zap.String("session_id", rep.SessionID), zap.Error(err))
	}
	r.append(ctx, SessionEventData{
		SessionID:      rep.SessionID,
		Action:         ActionEnd,
		Grade:          rep.Grade,
		LearnerName:    rep.LearnerName,
		Answered:       rep.Answered,
		Target:         rep.Target,
		Percentage:     rep.Percentage,
		EstimatedLevel: rep.EstimatedLevel,
		Confidence:     rep.Confidence,
		Report:         data,
	})
}

// Abandoned records a run that was quit before finishing.
func (r *Recorder) Abandoned(ctx context.Context, sessionID string, grade, answered, target int) {
	r.append(ctx, SessionEventData{
		SessionID: sessionID,
		Action:    ActionAbandon,
		Grade:     grade,
		Answered:  answered,
		Target:    target,
	})
}

func (r *Recorder) append(ctx context.Context, data SessionEventData) {
	if r.events == nil {
		return
	}
	if err := r.events.AppendSessionEvent(ctx, data); err != nil {
		r.logger.Warn("record session event failed",
			zap.String("session_id", data.SessionID),
			zap.String("action", data.Action),
			zap.Error(err))
	}
}

// DecodeReport parses a report stored by Finished.
func DecodeReport(data []byte) (*report.Report, error) {
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}
