// Package catalog is the single source of truth for IMEX codes. Every
// configurator option carries an internal code, the code that goes into the
// IMEX description, and a display label.
package catalog

// Category identifies one catalog dimension.
type Category string

const (
	CategoryValveModels           Category = "valve_models"
	CategoryEndConnections        Category = "end_connections"
	CategoryBodyMaterials         Category = "body_materials"
	CategoryTrimMaterials         Category = "trim_materials"
	CategorySeatMaterials         Category = "seat_materials"
	CategoryStemMaterials         Category = "stem_materials"
	CategoryActuationCodes        Category = "actuation_codes"
	CategorySuffixes              Category = "suffixes"
	CategoryPressureClasses       Category = "pressure_classes"
	CategoryDiameterOptions       Category = "diameter_options"
	CategoryConstructionStandards Category = "construction_standards"
	CategoryFlangeFaces           Category = "flange_faces"
)

// Categories lists every catalog dimension in a stable order.
func Categories() []Category {
	return []Category{
		CategoryValveModels,
		CategoryEndConnections,
		CategoryBodyMaterials,
		CategoryTrimMaterials,
		CategorySeatMaterials,
		CategoryStemMaterials,
		CategoryActuationCodes,
		CategorySuffixes,
		CategoryPressureClasses,
		CategoryDiameterOptions,
		CategoryConstructionStandards,
		CategoryFlangeFaces,
	}
}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Item is one catalog entry.
type Item struct {
	Code     string `json:"code"`
	ImexCode string `json:"imex_code"`
	Label    string `json:"label"`
}
