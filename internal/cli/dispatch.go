package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/crmsync/internal/models"
)

var ErrDispatchRejected = errors.New("dispatch rejected")

func (c *Cli) runDispatch(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: crmsync dispatch <type> <entity-id> [json]")
	}

	eventType := models.EventType(args[0])
	entityID := args[1]
	var payload []byte
	if len(args) > 2 {
		payload = []byte(args[2])
		if !json.Valid(payload) {
			return fmt.Errorf("payload is not valid JSON: %s", args[2])
		}
	}

	event, err := c.store.NewEvent(ctx, eventType, entityID, payload)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	res, err := c.store.Dispatch(ctx, []models.Event{event})
	if err != nil {
		return fmt.Errorf("dispatch failed: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", ErrDispatchRejected, res.Error)
	}

	c.io.Printf("✓ Dispatched %s for %s\n", eventType, entityID)
	c.io.Printf("Event: %s\n", event.Key())
	return nil
}
