package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSender stores emails in Redis instead of delivering them. Integration
// tests poll the key to observe what would have been sent.
type RedisSender struct {
	client *redis.Client
	from   string
}

func NewRedisSender(client *redis.Client, fromAddress string) Sender {
	return &RedisSender{client: client, from: fromAddress}
}

func (s *RedisSender) Send(ctx context.Context, to, subject, body string) error {
	emailData := map[string]interface{}{
		"to":      to,
		"from":    s.from,
		"subject": subject,
		"body":    body,
		"sent_at": time.Now().UTC().Format(time.RFC3339Nano),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("failed to marshal email data: %w", err)
	}

	key := fmt.Sprintf("mockemail:%s", to)
	ttl := 5 * time.Minute

	if err := s.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store email in Redis key '%s': %w", key, err)
	}

	log.Printf("Mock email stored in Redis key '%s' (TTL: %v, Subject: %s)", key, ttl, subject)
	return nil
}
