package location

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"civicportal/models"
	"civicportal/utils"
)

const levelCount = int(models.LevelVillage) + 1

// State is a read-only snapshot of the cascade: the selected id and the
// option list at every level.
type State struct {
	Selected [levelCount]string
	Options  [levelCount][]models.LocationNode
}

// Cascade holds the five dependent selection levels as one value, with a
// single Select operation that atomically derives the cleared downstream
// state. Resolution per level is guarded by a generation counter so a
// stale fetch can never overwrite options belonging to a newer selection.
type Cascade struct {
	primary   Source
	secondary Source

	mu       sync.Mutex
	selected [levelCount]string
	options  [levelCount][]models.LocationNode
	gen      [levelCount]uint64
}

// New builds a cascade over a live primary source and a local secondary
// source. Pass StaticSource{} as the secondary for the stock behavior.
func New(primary, secondary Source) *Cascade {
	return &Cascade{primary: primary, secondary: secondary}
}

// Init populates the province level. Like every other resolution it cannot
// fail visibly: tier exhaustion still yields a selectable list.
func (c *Cascade) Init(ctx context.Context) {
	c.mu.Lock()
	c.gen[models.LevelProvince]++
	myGen := c.gen[models.LevelProvince]
	c.mu.Unlock()

	opts := c.resolveProvinces(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[models.LevelProvince] != myGen {
		return
	}
	c.options[models.LevelProvince] = opts
}

// Select records the chosen id at level, synchronously clears every
// selection and option list below it, and resolves the next level's
// options. If the same level is re-selected before a prior resolution
// settles, the stale result is discarded: last write wins by trigger, not
// by completion order.
func (c *Cascade) Select(ctx context.Context, level models.Level, id string) error {
	if level < models.LevelProvince || level > models.LevelVillage {
		return fmt.Errorf("location: invalid level %d", level)
	}

	c.mu.Lock()
	c.selected[level] = id
	for l := level + 1; l <= models.LevelVillage; l++ {
		c.selected[l] = ""
		c.options[l] = nil
		// Invalidate any in-flight resolution for the downstream level.
		c.gen[l]++
	}

	child, ok := level.Next()
	if !ok {
		c.mu.Unlock()
		return nil
	}
	myGen := c.gen[child]
	c.mu.Unlock()

	opts := c.resolveChildren(ctx, child, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[child] != myGen || c.selected[level] != id {
		utils.GetLogger().Debug("Discarding stale cascade resolution",
			zap.String("level", child.String()), zap.String("parentId", id))
		return nil
	}
	c.options[child] = opts
	return nil
}

// Options returns the current option list at a level.
func (c *Cascade) Options(level models.Level) []models.LocationNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options[level]
}

// Selected returns the currently selected id at a level, "" when none.
func (c *Cascade) Selected(level models.Level) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected[level]
}

// Snapshot copies the whole cascade state for rendering.
func (c *Cascade) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	var s State
	s.Selected = c.selected
	for l := range c.options {
		s.Options[l] = append([]models.LocationNode(nil), c.options[l]...)
	}
	return s
}

// resolveProvinces walks the tiers for the root level.
func (c *Cascade) resolveProvinces(ctx context.Context) []models.LocationNode {
	logger := utils.GetLogger()

	nodes, err := c.primary.Provinces(ctx)
	if err == nil && len(nodes) > 0 {
		return nodes
	}
	if err != nil {
		logger.Debug("Live province fetch failed", zap.Error(err))
	}

	nodes, err = c.secondary.Provinces(ctx)
	if err == nil && len(nodes) > 0 {
		return nodes
	}
	if err != nil {
		logger.Debug("Secondary province fetch failed", zap.Error(err))
	}

	return fallbackFor(models.LevelProvince, "")
}

// resolveChildren walks the three tiers for a child level scoped to the
// parent id. Every tier's failure is swallowed here; only logs record it.
func (c *Cascade) resolveChildren(ctx context.Context, level models.Level, parentID string) []models.LocationNode {
	logger := utils.GetLogger()

	nodes, err := c.primary.Children(ctx, level, parentID)
	if err == nil && len(nodes) > 0 {
		return nodes
	}
	if err != nil {
		logger.Debug("Live cascade fetch failed",
			zap.String("level", level.String()), zap.String("parentId", parentID), zap.Error(err))
	}

	nodes, err = c.secondary.Children(ctx, level, parentID)
	if err == nil && len(nodes) > 0 {
		return nodes
	}
	if err != nil {
		logger.Debug("Secondary cascade fetch failed",
			zap.String("level", level.String()), zap.String("parentId", parentID), zap.Error(err))
	}

	return fallbackFor(level, parentID)
}
