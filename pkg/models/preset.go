package models

// FilterPreset es una lista de patrones predefinida que un moderador puede
// aplicar a su guild con /filter preset apply. Se siembran al arrancar.
type FilterPreset struct {
	Name        string   `bson:"_id" json:"name"`
	Description string   `bson:"description" json:"description"`
	Category    string   `bson:"category" json:"category"`
	Words       []string `bson:"words,omitempty" json:"words,omitempty"`
	Phrases     []string `bson:"phrases,omitempty" json:"phrases,omitempty"`
}
