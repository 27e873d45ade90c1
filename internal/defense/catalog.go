package defense

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogEntry describes one purchasable application: its slot, tier,
// price, and the entry that must be owned first.
type CatalogEntry struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Category     Category `yaml:"category" json:"category"`
	Tier         int      `yaml:"tier" json:"tier"`
	UnlockCost   float64  `yaml:"unlock_cost" json:"unlock_cost"`
	Prerequisite string   `yaml:"prerequisite,omitempty" json:"prerequisite,omitempty"`
}

// Catalog is the purchasable application list, ordered per category by
// tier. It is static configuration: the stack never mutates it.
type Catalog struct {
	Entries []CatalogEntry `yaml:"applications"`
}

// LoadCatalog reads a YAML catalog from disk.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// Entry looks up a catalog entry by ID.
func (c *Catalog) Entry(id string) (CatalogEntry, bool) {
	for _, e := range c.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// ByCategory returns the entries of one category in catalog order.
func (c *Catalog) ByCategory(cat Category) []CatalogEntry {
	var out []CatalogEntry
	for _, e := range c.Entries {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks tier ranges and that every prerequisite resolves to an
// earlier entry in the same category.
func (c *Catalog) Validate() error {
	seen := make(map[string]CatalogEntry, len(c.Entries))
	for _, e := range c.Entries {
		if e.ID == "" {
			return fmt.Errorf("catalog entry %q: empty id", e.Name)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("catalog entry %q: duplicate id", e.ID)
		}
		if e.Tier < 1 || e.Tier > TierCount {
			return fmt.Errorf("catalog entry %q: tier %d out of range", e.ID, e.Tier)
		}
		if e.Prerequisite != "" {
			pre, ok := seen[e.Prerequisite]
			if !ok {
				return fmt.Errorf("catalog entry %q: prerequisite %q not defined earlier", e.ID, e.Prerequisite)
			}
			if pre.Category != e.Category {
				return fmt.Errorf("catalog entry %q: prerequisite %q is in category %s", e.ID, e.Prerequisite, pre.Category)
			}
		}
		seen[e.ID] = e
	}
	return nil
}

// BuiltInCatalog returns the default application chains shipped with the
// engine: the first three tiers of every category. Higher tiers come
// from campaign configuration.
func BuiltInCatalog() *Catalog {
	chains := []struct {
		cat   Category
		names [3]string
	}{
		{CategoryFirewall, [3]string{"PacketWall Free", "PacketWall Pro", "BastionGate"}},
		{CategorySIEM, [3]string{"LogSieve", "LogSieve Enterprise", "Panopticon SIEM"}},
		{CategoryEndpoint, [3]string{"NodeGuard", "NodeGuard EDR", "SentryMesh"}},
		{CategoryIDS, [3]string{"TripwireLite", "DeepInspect IDS", "GhostTrap"}},
		{CategoryNetwork, [3]string{"SegmentZero", "MicroSeg", "AirGap Virtual"}},
		{CategoryEncryption, [3]string{"CipherBox", "CipherBox 256", "VaultStream"}},
	}
	c := &Catalog{}
	for _, chain := range chains {
		prev := ""
		for tier := 1; tier <= 3; tier++ {
			id := fmt.Sprintf("%s-t%d", chain.cat, tier)
			c.Entries = append(c.Entries, CatalogEntry{
				ID:           id,
				Name:         chain.names[tier-1],
				Category:     chain.cat,
				Tier:         tier,
				UnlockCost:   500 * float64(int(1)<<(3*(tier-1))),
				Prerequisite: prev,
			})
			prev = id
		}
	}
	return c
}
