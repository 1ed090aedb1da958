package redis

import (
	"context"
	"time"
)

const revokedPrefix = "auth:revoked:"

// RevokeToken denylists a token id until the token would have expired anyway.
func RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if !Enabled() || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return Client.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err()
}

func IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !Enabled() || tokenID == "" {
		return false, nil
	}
	n, err := Client.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
