package cli

import (
	"context"
	"fmt"
)

// runServe держит устройство в сети до отмены ctx
func (c *Cli) runServe(ctx context.Context) error {
	if err := c.node.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	c.io.Printf("Device %s listening on %s\n", c.store.DeviceID(), c.node.Addr())
	c.io.Println("Press Ctrl+C to stop.")

	<-ctx.Done()

	c.io.Println("Stopping...")
	if err := c.node.Stop(); err != nil {
		return fmt.Errorf("failed to stop: %w", err)
	}
	return nil
}
