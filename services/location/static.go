package location

import (
	"fmt"

	"civicportal/models"
)

func node(id, name string) models.LocationNode {
	return models.LocationNode{ID: id, Name: name}
}

// provinces is shared by the secondary source and the fallback tier; the
// five provinces are stable enough to hardcode outright.
var provinces = []models.LocationNode{
	node("p1", "Kigali City"),
	node("p2", "Northern Province"),
	node("p3", "Southern Province"),
	node("p4", "Eastern Province"),
	node("p5", "Western Province"),
}

// secondaryTables is the alternate dataset behind StaticSource, a reduced
// division list for offline demos and tests.
var secondaryTables = map[models.Level]map[string][]models.LocationNode{
	models.LevelDistrict: {
		"p1": {node("d1", "Nyarugenge"), node("d2", "Gasabo"), node("d3", "Kicukiro")},
		"p2": {node("d4", "Musanze"), node("d5", "Burera"), node("d6", "Gakenke")},
		"p3": {node("d7", "Huye"), node("d8", "Nyamagabe")},
		"p4": {node("d9", "Rwamagana"), node("d10", "Kayonza")},
		"p5": {node("d11", "Rubavu"), node("d12", "Karongi")},
	},
	models.LevelSector: {
		"d1": {node("s1", "Gitega"), node("s2", "Nyamirambo"), node("s3", "Muhima"), node("s4", "Nyarugenge")},
		"d2": {node("s5", "Remera"), node("s6", "Kacyiru"), node("s7", "Kimironko"), node("s8", "Gisozi")},
		"d3": {node("s9", "Niboye"), node("s10", "Kagarama"), node("s11", "Gatenga"), node("s12", "Gikondo")},
		"d4": {node("s13", "Muhoza"), node("s14", "Cyuve"), node("s15", "Kimonyi")},
		"d5": {node("s16", "Cyanika"), node("s17", "Butaro"), node("s18", "Kinoni")},
	},
	models.LevelCell: {
		"s1":  {node("c1", "Akabahizi"), node("c2", "Gakinjiro"), node("c3", "Kigarama")},
		"s2":  {node("c4", "Cyivugiza"), node("c5", "Mumena"), node("c6", "Rugarama")},
		"s5":  {node("c7", "Nyabisindu"), node("c8", "Rukiri"), node("c9", "Gisimenti")},
		"s6":  {node("c10", "Kamatamu"), node("c11", "Kamutwa"), node("c12", "Kibaza")},
		"s13": {node("c13", "Ruhengeri"), node("c14", "Kigombe")},
	},
	models.LevelVillage: {
		"c1":  {node("v1", "Akabahizi"), node("v2", "Amahoro")},
		"c4":  {node("v3", "Cyivugiza"), node("v4", "Gatare")},
		"c7":  {node("v5", "Amarembo"), node("v6", "Rebero")},
		"c10": {node("v7", "Gasabo"), node("v8", "Gishushu")},
		"c13": {node("v9", "Susa"), node("v10", "Kabaya")},
	},
}

// fallbackTables is the third tier: the full static division tables keyed
// by the known parent ids.
var fallbackTables = map[models.Level]map[string][]models.LocationNode{
	models.LevelDistrict: {
		"p1": {node("d1", "Nyarugenge"), node("d2", "Gasabo"), node("d3", "Kicukiro")},
		"p2": {
			node("d4", "Musanze"), node("d5", "Burera"), node("d6", "Gakenke"),
			node("d7", "Gicumbi"), node("d8", "Rulindo"),
		},
		"p3": {
			node("d9", "Gisagara"), node("d10", "Huye"), node("d11", "Kamonyi"),
			node("d12", "Muhanga"), node("d13", "Nyamagabe"), node("d14", "Nyanza"),
			node("d15", "Nyaruguru"), node("d16", "Ruhango"),
		},
		"p4": {
			node("d17", "Bugesera"), node("d18", "Gatsibo"), node("d19", "Kayonza"),
			node("d20", "Kirehe"), node("d21", "Ngoma"), node("d22", "Nyagatare"),
			node("d23", "Rwamagana"),
		},
		"p5": {
			node("d24", "Karongi"), node("d25", "Ngororero"), node("d26", "Nyabihu"),
			node("d27", "Nyamasheke"), node("d28", "Rubavu"), node("d29", "Rusizi"),
			node("d30", "Rutsiro"),
		},
	},
	models.LevelSector: {
		"d1": {
			node("s1", "Gitega"), node("s2", "Nyamirambo"), node("s3", "Nyarugenge"),
			node("s4", "Kimisagara"), node("s5", "Muhima"), node("s6", "Rwezamenyo"),
			node("s7", "Nyakabanda"), node("s8", "Mageragere"), node("s9", "Kanyinya"),
			node("s10", "Kigali"),
		},
		"d2": {
			node("s11", "Remera"), node("s12", "Kacyiru"), node("s13", "Kimironko"),
			node("s14", "Gisozi"), node("s15", "Kinyinya"), node("s16", "Ndera"),
			node("s17", "Nduba"), node("s18", "Rusororo"), node("s19", "Rutunga"),
			node("s20", "Bumbogo"), node("s21", "Gatsata"), node("s22", "Gikomero"),
			node("s23", "Jabana"), node("s24", "Jali"), node("s25", "Masaka"),
		},
		"d3": {
			node("s26", "Gahanga"), node("s27", "Gatenga"), node("s28", "Gikondo"),
			node("s29", "Kagarama"), node("s30", "Kanombe"), node("s31", "Kicukiro"),
			node("s32", "Kigarama"), node("s33", "Masaka"), node("s34", "Niboye"),
			node("s35", "Nyarugunga"),
		},
		"d4": {
			node("s36", "Busogo"), node("s37", "Cyuve"), node("s38", "Gacaca"),
			node("s39", "Gataraga"), node("s40", "Kimonyi"), node("s41", "Kinigi"),
			node("s42", "Muhoza"), node("s43", "Muko"), node("s44", "Musanze"),
			node("s45", "Nkotsi"), node("s46", "Nyange"), node("s47", "Remera"),
			node("s48", "Rwaza"), node("s49", "Shingiro"), node("s50", "Gashaki"),
		},
	},
	models.LevelCell: {
		"s1": {
			node("c1", "Akabahizi"), node("c2", "Gakinjiro"), node("c3", "Kigarama"),
			node("c4", "Kinyange"), node("c5", "Kora"),
		},
		"s2": {
			node("c6", "Cyivugiza"), node("c7", "Mumena"), node("c8", "Mpazi"),
			node("c9", "Rugarama"),
		},
		"s11": {
			node("c10", "Nyabisindu"), node("c11", "Rukiri I"), node("c12", "Rukiri II"),
			node("c13", "Gisimenti"), node("c14", "Nyarutarama"),
		},
		"s12": {
			node("c15", "Kamatamu"), node("c16", "Kamutwa"), node("c17", "Kibaza"),
			node("c18", "Kabarondo"),
		},
	},
	models.LevelVillage: {
		"c1": {
			node("v1", "Akabahizi"), node("v2", "Amahoro"), node("v3", "Inyarurembo"),
			node("v4", "Umurava"),
		},
		"c6": {
			node("v5", "Cyivugiza"), node("v6", "Gatare"), node("v7", "Kamuhoza"),
			node("v8", "Nyagakoki"),
		},
		"c10": {
			node("v9", "Amarembo"), node("v10", "Rebero"), node("v11", "Ruturusu I"),
			node("v12", "Ruturusu II"),
		},
		"c15": {
			node("v13", "Gasabo"), node("v14", "Gishushu"), node("v15", "Kabarondo"),
			node("v16", "Kamutwa"),
		},
	},
}

var genericPrefixes = map[models.Level]string{
	models.LevelProvince: "p",
	models.LevelDistrict: "d",
	models.LevelSector:   "s",
	models.LevelCell:     "c",
	models.LevelVillage:  "v",
}

var genericLabels = map[models.Level]string{
	models.LevelProvince: "Province",
	models.LevelDistrict: "District",
	models.LevelSector:   "Sector",
	models.LevelCell:     "Cell",
	models.LevelVillage:  "Village",
}

// genericOptions is the last tier: a placeholder list so the form is never
// left with zero options, whatever the parent id was.
func genericOptions(level models.Level) []models.LocationNode {
	prefix := genericPrefixes[level]
	label := genericLabels[level]
	nodes := make([]models.LocationNode, 0, 5)
	for i := 1; i <= 5; i++ {
		nodes = append(nodes, node(
			fmt.Sprintf("%s_generic_%d", prefix, i),
			fmt.Sprintf("%s %d", label, i),
		))
	}
	return nodes
}

// fallbackFor looks up the static table for a level, degrading to generic
// placeholders when the parent id is unknown.
func fallbackFor(level models.Level, parentID string) []models.LocationNode {
	if level == models.LevelProvince {
		return provinces
	}
	if table, ok := fallbackTables[level]; ok {
		if nodes := table[parentID]; len(nodes) > 0 {
			return nodes
		}
	}
	return genericOptions(level)
}
