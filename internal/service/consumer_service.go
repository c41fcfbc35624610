// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-reportgen-be/internal/dto"
	"ai-reportgen-be/internal/repository/memory"
	"ai-reportgen-be/pkg/document"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the re-render topic. Every raw-text edit and
// replace publishes one job; the worker re-renders the preview from the
// session's latest text, so a burst of edits collapses into last-write-wins
// renders and a stale job is a cheap no-op.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	sessionRepo *memory.SessionRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessionRepo *memory.SessionRepository,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		sessionRepo: sessionRepo,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	log.Printf("[INFO] Received render job: %s", msg.UUID)

	var payload dto.PublishRenderMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal render job payload: %v", err)
		// Malformed payload will never parse; don't redeliver
		msg.Ack()
		return
	}

	session, ok := cs.sessionRepo.Get(payload.DocumentId.String())
	if !ok {
		// Session expired or was closed between publish and delivery
		log.Printf("[WARN] Render job for %s dropped: no open session", payload.DocumentId)
		msg.Ack()
		return
	}

	// Only preview mode carries render artifacts. SetMode(preview) on a
	// session already in preview forces a full re-render from the latest
	// text, which is exactly the refresh this job asks for.
	if session.Controller.Mode() != document.ModePreview {
		log.Printf("[INFO] Render job for %s skipped: session in edit mode", payload.DocumentId)
		msg.Ack()
		return
	}

	if err := session.Controller.SetMode(document.ModePreview); err != nil {
		log.Printf("[ERROR] Failed to re-render document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Re-rendered document %s (%d tables)", payload.DocumentId, len(session.Controller.Tables()))
	msg.Ack()
}
