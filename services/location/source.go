// Package location resolves the province→district→sector→cell→village
// cascade that registration and complaint submission depend on. Options are
// resolved live when the backend answers, and degrade through local data so
// a form is never left with zero choices.
package location

import (
	"context"
	"fmt"

	"civicportal/client"
	"civicportal/models"
)

// Source supplies option lists for cascade levels. Children is called with
// the child level being resolved and the id selected at its parent level.
type Source interface {
	Provinces(ctx context.Context) ([]models.LocationNode, error)
	Children(ctx context.Context, level models.Level, parentID string) ([]models.LocationNode, error)
}

// APISource is the live tier, backed by the portal's location endpoints.
type APISource struct {
	API *client.Client
}

func (s *APISource) Provinces(ctx context.Context) ([]models.LocationNode, error) {
	var nodes []models.LocationNode
	if err := s.API.Get(ctx, "/api/locations/provinces", nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (s *APISource) Children(ctx context.Context, level models.Level, parentID string) ([]models.LocationNode, error) {
	var segment string
	switch level {
	case models.LevelDistrict:
		segment = "districts"
	case models.LevelSector:
		segment = "sectors"
	case models.LevelCell:
		segment = "cells"
	case models.LevelVillage:
		segment = "villages"
	default:
		return nil, fmt.Errorf("location: level %s has no parent-scoped fetch", level)
	}

	var nodes []models.LocationNode
	if err := s.API.Get(ctx, "/api/locations/"+segment+"/"+parentID, nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// StaticSource is the secondary tier: a small in-process dataset used when
// the live fetch fails or comes back empty. Unknown parents resolve to an
// empty list, which pushes resolution down to the fallback tables.
type StaticSource struct{}

func (StaticSource) Provinces(ctx context.Context) ([]models.LocationNode, error) {
	return provinces, nil
}

func (StaticSource) Children(ctx context.Context, level models.Level, parentID string) ([]models.LocationNode, error) {
	table, ok := secondaryTables[level]
	if !ok {
		return nil, fmt.Errorf("location: level %s has no parent-scoped fetch", level)
	}
	return table[parentID], nil
}
