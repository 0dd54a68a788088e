package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/iudanet/crmsync/internal/models"
)

func (c *Cli) runList(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing collection. Usage: crmsync list <%s>", strings.Join(models.Collections, "|"))
	}

	name := args[0]
	if !slices.Contains(models.Collections, name) {
		return fmt.Errorf("unknown collection: %s. Use: %s", name, strings.Join(models.Collections, ", "))
	}

	entities := c.store.Document().Collection(name)
	c.io.Printf("=== %s (%d) ===\n", name, len(entities))
	if len(entities) == 0 {
		c.io.Println("No entities.")
		return nil
	}

	ids := make([]string, 0, len(entities))
	for id := range entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		fields, err := json.Marshal(entities[id].Fields)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", id, err)
		}
		c.io.Printf("%s  %s\n", id, fields)
	}
	return nil
}
