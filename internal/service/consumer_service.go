package service

import (
	"context"
	"encoding/json"
	"log"

	"customs-evidence-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains index-sweep triggers off the internal bus and
// runs the sweep. Ingestion stays fast; indexing happens behind it.
type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	indexingService IIndexingService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	indexingService IIndexingService,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		indexingService: indexingService,
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
	var payload dto.PublishIndexSweepMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal sweep trigger: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	limit := payload.Limit
	if limit <= 0 {
		limit = sweepBatchLimit
	}

	resp, err := cs.indexingService.IndexPendingChunks(ctx, payload.TenantId, &dto.IndexSweepRequest{Limit: limit})
	if err != nil {
		log.Printf("[ERROR] Index sweep failed for tenant %s: %v", payload.TenantId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if !resp.Ok {
		// A guardrail abort never resolves by retrying the same message.
		log.Printf("[WARN] Index sweep aborted for tenant %s: %s (chunk %s)", payload.TenantId, resp.Error, resp.ChunkId)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Indexed %d chunks for tenant %s", resp.Indexed, payload.TenantId)
	msg.Ack()
}
