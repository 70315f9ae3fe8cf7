package predict

import (
	"diet-tracker-backend/structs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictFromPath(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "plate.jpg")
	require.NoError(t, os.WriteFile(imagePath, []byte("jpeg"), 0644))

	model := NewModel("models")
	detections, err := model.PredictFromPath(imagePath)
	require.NoError(t, err)
	assert.NotNil(t, detections)
	assert.Empty(t, detections)

	_, err = model.PredictFromPath(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestMealItems(t *testing.T) {
	items := MealItems([]structs.Detection{
		{Name: "banana", Confidence: 0.92, BBox: []float64{1, 2, 3, 4}, EstimatedGrams: 120},
		{Name: "egg", Confidence: 0.5},
	})
	assert.Equal(t, []structs.MealItemParam{{Name: "banana", Grams: 120}, {Name: "egg", Grams: 0}}, items)
	assert.Empty(t, MealItems(nil))
}
