package location

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"civicportal/models"
)

// scriptedSource serves canned children lists and can block a fetch until
// released, to exercise out-of-order completion.
type scriptedSource struct {
	mu       sync.Mutex
	children map[string][]models.LocationNode
	err      error

	blockOn string
	started chan struct{}
	release chan struct{}
}

func (s *scriptedSource) Provinces(ctx context.Context) ([]models.LocationNode, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.children["provinces"], nil
}

func (s *scriptedSource) Children(ctx context.Context, level models.Level, parentID string) ([]models.LocationNode, error) {
	if s.blockOn != "" && parentID == s.blockOn {
		s.started <- struct{}{}
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.children[parentID], nil
}

func nodes(ids ...string) []models.LocationNode {
	out := make([]models.LocationNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.LocationNode{ID: id, Name: "Node " + id})
	}
	return out
}

func TestSelect_ClearsAllDownstreamLevels(t *testing.T) {
	primary := &scriptedSource{children: map[string][]models.LocationNode{
		"provinces": nodes("p1", "p2"),
		"p1":        nodes("d1"),
		"p2":        nodes("d9"),
		"d1":        nodes("s1"),
		"s1":        nodes("c1"),
		"c1":        nodes("v1"),
	}}
	c := New(primary, StaticSource{})
	ctx := context.Background()

	c.Init(ctx)
	for _, step := range []struct {
		level models.Level
		id    string
	}{
		{models.LevelProvince, "p1"},
		{models.LevelDistrict, "d1"},
		{models.LevelSector, "s1"},
		{models.LevelCell, "c1"},
		{models.LevelVillage, "v1"},
	} {
		if err := c.Select(ctx, step.level, step.id); err != nil {
			t.Fatalf("select %s: %v", step.level, err)
		}
	}

	// Change the province: every level below must be emptied, then the
	// district options repopulated for the new parent.
	if err := c.Select(ctx, models.LevelProvince, "p2"); err != nil {
		t.Fatalf("reselect province: %v", err)
	}

	for _, level := range []models.Level{models.LevelDistrict, models.LevelSector, models.LevelCell, models.LevelVillage} {
		if got := c.Selected(level); got != "" {
			t.Fatalf("expected %s selection cleared, got %q", level, got)
		}
	}
	if got := c.Options(models.LevelDistrict); !reflect.DeepEqual(got, nodes("d9")) {
		t.Fatalf("expected p2 districts, got %+v", got)
	}
	for _, level := range []models.Level{models.LevelSector, models.LevelCell, models.LevelVillage} {
		if got := c.Options(level); len(got) != 0 {
			t.Fatalf("expected %s options cleared, got %+v", level, got)
		}
	}
}

func TestSelect_ReselectingSameProvinceIsIdempotent(t *testing.T) {
	primary := &scriptedSource{children: map[string][]models.LocationNode{
		"provinces": nodes("p1"),
		"p1":        nodes("d1", "d2"),
	}}
	c := New(primary, StaticSource{})
	ctx := context.Background()

	if err := c.Select(ctx, models.LevelProvince, "p1"); err != nil {
		t.Fatalf("first select: %v", err)
	}
	first := c.Snapshot()

	if err := c.Select(ctx, models.LevelProvince, "p1"); err != nil {
		t.Fatalf("second select: %v", err)
	}
	second := c.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reselect must reach the same end state:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSelect_StaleResolutionDiscarded(t *testing.T) {
	primary := &scriptedSource{
		children: map[string][]models.LocationNode{
			"p1": nodes("d-stale"),
			"p2": nodes("d-current"),
		},
		blockOn: "p1",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := New(primary, StaticSource{})
	ctx := context.Background()

	done := make(chan error)
	go func() {
		done <- c.Select(ctx, models.LevelProvince, "p1")
	}()
	<-primary.started // p1's fetch is in flight

	// The user changes their mind before p1's districts arrive.
	if err := c.Select(ctx, models.LevelProvince, "p2"); err != nil {
		t.Fatalf("select p2: %v", err)
	}

	close(primary.release)
	if err := <-done; err != nil {
		t.Fatalf("select p1: %v", err)
	}

	if got := c.Options(models.LevelDistrict); !reflect.DeepEqual(got, nodes("d-current")) {
		t.Fatalf("stale p1 districts overwrote p2's, got %+v", got)
	}
	if got := c.Selected(models.LevelProvince); got != "p2" {
		t.Fatalf("expected province p2, got %q", got)
	}
}

func TestResolve_FallsBackThroughTiers(t *testing.T) {
	failing := &scriptedSource{err: errors.New("backend down")}

	t.Run("secondary source serves known parents", func(t *testing.T) {
		c := New(failing, StaticSource{})
		if err := c.Select(context.Background(), models.LevelProvince, "p1"); err != nil {
			t.Fatalf("select: %v", err)
		}
		got := c.Options(models.LevelDistrict)
		if len(got) == 0 || got[0].Name != "Nyarugenge" {
			t.Fatalf("expected secondary dataset districts, got %+v", got)
		}
	})

	t.Run("static table serves when secondary also fails", func(t *testing.T) {
		c := New(failing, failing)
		if err := c.Select(context.Background(), models.LevelProvince, "p3"); err != nil {
			t.Fatalf("select: %v", err)
		}
		got := c.Options(models.LevelDistrict)
		if len(got) != 8 || got[0].Name != "Gisagara" {
			t.Fatalf("expected full southern-province table, got %+v", got)
		}
	})

	t.Run("unknown parent still yields selectable placeholders", func(t *testing.T) {
		c := New(failing, failing)
		if err := c.Select(context.Background(), models.LevelProvince, "no-such-province"); err != nil {
			t.Fatalf("select: %v", err)
		}
		got := c.Options(models.LevelDistrict)
		if len(got) == 0 {
			t.Fatal("option list must never be empty")
		}
		if got[0].Name != "District 1" {
			t.Fatalf("expected generic placeholders, got %+v", got)
		}
	})
}

func TestResolve_NonEmptyAtEveryLevelForAnyParent(t *testing.T) {
	failing := &scriptedSource{err: errors.New("backend down")}
	c := New(failing, failing)
	ctx := context.Background()

	parents := []string{"p1", "d1", "s1", "c1", "bogus"}
	for _, level := range []models.Level{models.LevelProvince, models.LevelDistrict, models.LevelSector, models.LevelCell} {
		for _, parent := range parents {
			if err := c.Select(ctx, level, parent); err != nil {
				t.Fatalf("select %s=%s: %v", level, parent, err)
			}
			child, _ := level.Next()
			if len(c.Options(child)) == 0 {
				t.Fatalf("empty %s options for parent %q", child, parent)
			}
		}
	}
}

func TestInit_FallsBackToStaticProvinces(t *testing.T) {
	failing := &scriptedSource{err: errors.New("backend down")}
	c := New(failing, failing)

	c.Init(context.Background())
	got := c.Options(models.LevelProvince)
	if len(got) != 5 {
		t.Fatalf("expected 5 static provinces, got %+v", got)
	}
	if got[0].Name != "Kigali City" {
		t.Fatalf("unexpected first province %+v", got)
	}
}

func TestAPISource_ProvinceHasNoParentScopedFetch(t *testing.T) {
	src := &APISource{}
	if _, err := src.Children(context.Background(), models.LevelProvince, "x"); err == nil {
		t.Fatal("expected error for parent-scoped province fetch")
	}
}
