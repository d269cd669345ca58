// models/location.go
package models

// Level identifies one administrative-division tier of the location cascade.
type Level int

const (
	LevelProvince Level = iota
	LevelDistrict
	LevelSector
	LevelCell
	LevelVillage
)

var levelNames = [...]string{"province", "district", "sector", "cell", "village"}

func (l Level) String() string {
	if l < LevelProvince || l > LevelVillage {
		return "unknown"
	}
	return levelNames[l]
}

// Next returns the level directly below l, or false at the bottom.
func (l Level) Next() (Level, bool) {
	if l >= LevelVillage {
		return l, false
	}
	return l + 1, true
}

// LocationNode is one selectable option at a cascade level. The parent link
// is implicit in the fetch path that produced it.
type LocationNode struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
