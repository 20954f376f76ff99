package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/enrollment-service/internal/config"
	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/events"
)

func TestNotificationServiceLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{WebhookURL: "http://hooks.local"})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventCourseCreated,
		Actor:   events.Actor{Role: domain.RoleCompany, ID: "c1"},
		Payload: events.CoursePayload{CourseID: "k1", CompanyID: "c1", Name: "Intro"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage(string(events.EventCourseCreated)).Len())
	assert.Equal(t, 1, logs.FilterMessage("sendWebhookNotificationStub").Len())
	assert.Zero(t, logs.FilterMessage("sendEmailNotificationStub").Len())
}
