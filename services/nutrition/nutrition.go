package nutrition

import (
	"diet-tracker-backend/models"
	"diet-tracker-backend/structs"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	gormbulk "github.com/t-tiger/gorm-bulk-insert/v2"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("nutrition entry not found")

// NutritionService is the reference store and the scaler over it.
type NutritionService struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewNutritionService(db *gorm.DB, logger *logrus.Entry) *NutritionService {
	return &NutritionService{db: db, logger: logger}
}

func nameKey(name string) string {
	return strings.ToLower(name)
}

// FindByName is a case-insensitive exact match. Returns ErrNotFound on a miss.
func (n *NutritionService) FindByName(name string) (*models.Nutrition, error) {
	var nutritionEntity models.Nutrition
	if err := n.db.Where("name_key = ?", nameKey(name)).First(&nutritionEntity).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find nutrition %q: %w", name, err)
	}
	return &nutritionEntity, nil
}

// Scale looks the name up and scales the per-100g values to grams.
// Unknown names are a soft miss: zeroed macros and Found=false, no error.
func (n *NutritionService) Scale(name string, grams float64) (structs.NutritionBreakdown, error) {
	nutritionEntity, err := n.FindByName(name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return structs.NutritionBreakdown{Name: name, Grams: grams}, err
	}
	return ScaleRecord(nutritionEntity, name, grams), nil
}

// ScaleRecord scales rec linearly by grams/100. A nil rec yields the soft-miss breakdown.
func ScaleRecord(rec *models.Nutrition, name string, grams float64) structs.NutritionBreakdown {
	if rec == nil {
		return structs.NutritionBreakdown{
			Name:  name,
			Grams: grams,
			Found: false,
		}
	}
	factor := grams / 100.0
	return structs.NutritionBreakdown{
		Name:     rec.Name,
		Grams:    grams,
		Calories: rec.CaloriesPer100g * factor,
		Protein:  rec.ProteinPer100g * factor,
		Fat:      rec.FatPer100g * factor,
		Carbs:    rec.CarbsPer100g * factor,
		Found:    true,
	}
}

// Seed inserts the records whose name is not in the table yet.
// Existing rows are never updated. Returns the number of inserted rows.
func (n *NutritionService) Seed(seeds []structs.NutritionSeed) (int, error) {
	if len(seeds) == 0 {
		return 0, nil
	}

	var existingKeys []string
	if err := n.db.Model(&models.Nutrition{}).Pluck("name_key", &existingKeys).Error; err != nil {
		return 0, fmt.Errorf("load nutrition keys: %w", err)
	}
	seen := make(map[string]bool, len(existingKeys))
	for _, key := range existingKeys {
		seen[key] = true
	}

	now := time.Now().UTC()
	var insertRecords []interface{}
	for _, seed := range seeds {
		if strings.TrimSpace(seed.Name) == "" {
			return 0, fmt.Errorf("nutrition seed with empty name")
		}
		if seed.CaloriesPer100g < 0 || seed.ProteinPer100g < 0 || seed.FatPer100g < 0 || seed.CarbsPer100g < 0 {
			return 0, fmt.Errorf("nutrition seed %q has negative values", seed.Name)
		}
		for _, v := range []float64{seed.CaloriesPer100g, seed.ProteinPer100g, seed.FatPer100g, seed.CarbsPer100g} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("nutrition seed %q has non-finite values", seed.Name)
			}
		}
		key := nameKey(seed.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		insertRecords = append(insertRecords, models.Nutrition{
			Name:            seed.Name,
			NameKey:         key,
			CaloriesPer100g: seed.CaloriesPer100g,
			ProteinPer100g:  seed.ProteinPer100g,
			FatPer100g:      seed.FatPer100g,
			CarbsPer100g:    seed.CarbsPer100g,
			Extras:          models.JSONMap(seed.Extras),
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	if len(insertRecords) == 0 {
		return 0, nil
	}

	tx := n.db.Begin()
	if err := gormbulk.BulkInsert(tx, insertRecords, 3000, "ID"); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("bulk insert nutrition: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("commit nutrition seed: %w", err)
	}

	if n.logger != nil {
		n.logger.WithFields(logrus.Fields{"task": "seed", "inserted": len(insertRecords), "skipped": len(seeds) - len(insertRecords)}).Info("nutrition table seeded")
	}
	return len(insertRecords), nil
}

// LoadSeedFile reads a YAML list of nutrition seeds.
func LoadSeedFile(fileName string) ([]structs.NutritionSeed, error) {
	raw, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seeds []structs.NutritionSeed
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", fileName, err)
	}
	return seeds, nil
}
