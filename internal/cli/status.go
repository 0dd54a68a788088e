package cli

import (
	"context"
	"time"

	"github.com/iudanet/crmsync/internal/models"
)

const recentSyncs = 5

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Device Status ===")
	c.io.Println()

	doc := c.store.Document()
	c.io.Printf("Device:   %s\n", c.store.DeviceID())
	c.io.Printf("Events:   %d\n", len(c.store.Keys()))
	c.io.Printf("Entities: %d\n", doc.Len())
	for _, name := range models.Collections {
		if n := len(doc.Collection(name)); n > 0 {
			c.io.Printf("  %-15s %d\n", name, n)
		}
	}

	if hash, err := c.store.Hash(); err != nil {
		c.io.Printf("Hash:     unavailable (%v)\n", err)
	} else {
		c.io.Printf("Hash:     %s\n", hash)
	}

	if rejected := c.store.Rejected(); len(rejected) > 0 {
		c.io.Printf("⚠️  Rejected during replay: %d event(s)\n", len(rejected))
		for _, r := range rejected {
			c.io.Printf("  %s: %s\n", r.Key, r.Reason)
		}
	}
	if err := c.store.Halted(); err != nil {
		c.io.Printf("⚠️  Store halted: %v\n", err)
	}

	c.io.Println()
	c.io.Println("Recent syncs:")
	records, err := c.journal.Recent(ctx, recentSyncs)
	if err != nil {
		// Не прерываем выполнение: журнал только для диагностики
		c.io.Printf("  failed to read sync journal: %v\n", err)
		return nil
	}
	if len(records) == 0 {
		c.io.Println("  none")
		return nil
	}
	for _, r := range records {
		status := "ok"
		if !r.Succeeded() {
			status = "error: " + r.Error
		}
		c.io.Printf("  %s %-8s %s sent=%d received=%d applied=%d %s\n",
			r.StartedAt.Format(time.RFC3339), r.Direction, r.PeerID, r.Sent, r.Received, r.Applied, status)
	}
	return nil
}
