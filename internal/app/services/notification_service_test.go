package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
)

type stubNotificationRepo struct {
	repositories.INotificationRepository
	created   []*models.Notification
	createErr error
}

func (s *stubNotificationRepo) Create(_ context.Context, n *models.Notification) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	n.ID = int64(len(s.created) + 1)
	s.created = append(s.created, n)
	return n.ID, nil
}

type channelPusher struct {
	sent chan []byte
}

func (p *channelPusher) SendToUser(_ int64, payload []byte) {
	p.sent <- payload
}

func TestNotify_PersistsThenPushes(t *testing.T) {
	repo := &stubNotificationRepo{}
	pusher := &channelPusher{sent: make(chan []byte, 1)}
	service := NewNotificationService(repo, pusher)

	err := service.Notify(context.Background(), 20, models.NotificationOfficialPostComment, "Eva Meier commented on your post", 100)
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, int64(20), repo.created[0].RecipientID)

	select {
	case payload := <-pusher.sent:
		var resp dto.NotificationResponse
		require.NoError(t, json.Unmarshal(payload, &resp))
		assert.Equal(t, models.NotificationOfficialPostComment, resp.Type)
		assert.Equal(t, int64(100), resp.RelatedEntityID)
		assert.False(t, resp.IsRead)
	case <-time.After(2 * time.Second):
		t.Fatal("push never arrived")
	}
}

func TestNotify_PersistFailureSkipsPush(t *testing.T) {
	repo := &stubNotificationRepo{createErr: errors.New("insert failed")}
	pusher := &channelPusher{sent: make(chan []byte, 1)}
	service := NewNotificationService(repo, pusher)

	err := service.Notify(context.Background(), 20, models.NotificationOfficialPostComment, "msg", 100)
	require.Error(t, err)

	select {
	case <-pusher.sent:
		t.Fatal("push must not happen when persistence fails")
	case <-time.After(100 * time.Millisecond):
	}
}
