package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/validation"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// publisher stamps and publishes events; failures are logged and never
// fail the operation that produced them.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func validID(id string) bool {
	return validation.ValidID(id)
}

// nonEmpty maps a supplied empty string to an absent value.
func nonEmpty(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	v := *value
	return &v
}

func checkFields(v *validation.Validator, fields validation.Fields, rules validation.RuleSet) error {
	if violations := v.Check(fields, rules); len(violations) > 0 {
		return apperrors.NewBadRequest("request validation failed: " + validation.Join(violations))
	}
	return nil
}
