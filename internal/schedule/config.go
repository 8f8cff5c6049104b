package schedule

import (
	"backline/internal/domain"
)

// CategoryRule describes how a booking category maps onto the room
// roster: the shortest booking it allows and the room types able to
// host it.
type CategoryRule struct {
	MinDurationHours float64           `yaml:"min_duration_hours"`
	RoomTypes        []domain.RoomType `yaml:"room_types"`
}

// Config carries the business-hours bounds, slot granularity and
// per-category rules. It is loaded from the application config so the
// engine never reads ambient state.
type Config struct {
	Open               string                           `yaml:"open"`  // 15:04
	Close              string                           `yaml:"close"` // 15:04
	GranularityMinutes int                              `yaml:"granularity_minutes"`
	Categories         map[domain.Category]CategoryRule `yaml:"categories"`
}

func DefaultConfig() Config {
	return Config{
		Open:               "09:00",
		Close:              "21:00",
		GranularityMinutes: 60,
		Categories: map[domain.Category]CategoryRule{
			domain.CategoryIndividual: {
				MinDurationHours: 1,
				RoomTypes:        []domain.RoomType{domain.RoomDrums, domain.RoomUniversal},
			},
			domain.CategoryGuitar: {
				MinDurationHours: 1,
				RoomTypes:        []domain.RoomType{domain.RoomGuitar, domain.RoomUniversal},
			},
			domain.CategoryBand: {
				MinDurationHours: 2,
				RoomTypes:        []domain.RoomType{domain.RoomDrums, domain.RoomUniversal},
			},
			domain.CategoryParty: {
				MinDurationHours: 2,
				RoomTypes:        []domain.RoomType{domain.RoomDrums, domain.RoomUniversal},
			},
			domain.CategoryBlock: {
				MinDurationHours: 1,
				RoomTypes:        []domain.RoomType{domain.RoomDrums, domain.RoomGuitar, domain.RoomUniversal},
			},
		},
	}
}

// ApplyDefaults fills gaps left by a partial YAML config.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.Open == "" {
		c.Open = def.Open
	}
	if c.Close == "" {
		c.Close = def.Close
	}
	if c.GranularityMinutes <= 0 {
		c.GranularityMinutes = def.GranularityMinutes
	}
	if len(c.Categories) == 0 {
		c.Categories = def.Categories
		return
	}
	for cat, rule := range def.Categories {
		got, ok := c.Categories[cat]
		if !ok {
			c.Categories[cat] = rule
			continue
		}
		if got.MinDurationHours <= 0 {
			got.MinDurationHours = rule.MinDurationHours
		}
		if len(got.RoomTypes) == 0 {
			got.RoomTypes = rule.RoomTypes
		}
		c.Categories[cat] = got
	}
}

// Rule returns the rule for cat, falling back to the individual
// category for unknown input.
func (c Config) Rule(cat domain.Category) CategoryRule {
	if r, ok := c.Categories[cat]; ok {
		return r
	}
	return c.Categories[domain.CategoryIndividual]
}

// ResolveCategory maps a raw query value onto a known category.
// Unknown values fall back to individual rather than erroring.
func (c Config) ResolveCategory(raw string) domain.Category {
	cat := domain.Category(raw)
	if _, ok := c.Categories[cat]; ok {
		return cat
	}
	return domain.CategoryIndividual
}
