package structs

// NutritionBreakdown is the scaled macro set for one food at a gram quantity.
type NutritionBreakdown struct {
	Name     string  `json:"name"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Found    bool    `json:"found"`
}

type NutritionSeed struct {
	Name            string                 `yaml:"name" json:"name"`
	CaloriesPer100g float64                `yaml:"calories_per_100g" json:"calories_per_100g"`
	ProteinPer100g  float64                `yaml:"protein_per_100g" json:"protein_per_100g"`
	FatPer100g      float64                `yaml:"fat_per_100g" json:"fat_per_100g"`
	CarbsPer100g    float64                `yaml:"carbs_per_100g" json:"carbs_per_100g"`
	Extras          map[string]interface{} `yaml:"extras" json:"extras,omitempty"`
}
