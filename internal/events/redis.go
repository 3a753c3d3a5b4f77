package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"kalasangam_backend/internal/logger"
)

const DefaultChannel = "auth_state_changes"

// RedisBus publishes through a redis channel so every instance behind the
// load balancer sees sign-outs. Local subscribers are served by a MemoryBus
// fed from the redis subscription, including events this instance published.
type RedisBus struct {
	client  *redis.Client
	channel string
	pubsub  *redis.PubSub
	local   *MemoryBus
	wg      sync.WaitGroup
}

func NewRedisBus(ctx context.Context, client *redis.Client, channel string) (*RedisBus, error) {
	if channel == "" {
		channel = DefaultChannel
	}

	pubsub := client.Subscribe(ctx, channel)
	// ждем подтверждения подписки, иначе ранние события теряются
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", channel, err)
	}

	b := &RedisBus{
		client:  client,
		channel: channel,
		pubsub:  pubsub,
		local:   NewMemoryBus(defaultBuffer),
	}

	b.wg.Add(1)
	go b.forward()
	return b, nil
}

func (b *RedisBus) forward() {
	defer b.wg.Done()

	for msg := range b.pubsub.Channel() {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			logger.EventLog("redis", "decode", err)
			continue
		}
		if err := b.local.Publish(context.Background(), ev); err != nil {
			return
		}
	}
}

func (b *RedisBus) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		logger.EventLog("redis", string(ev.Type), err)
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (b *RedisBus) Subscribe() (<-chan Event, func()) {
	return b.local.Subscribe()
}

func (b *RedisBus) Close() error {
	err := b.pubsub.Close()
	b.wg.Wait()
	b.local.Close()
	return err
}
