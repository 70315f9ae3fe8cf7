package predict

import (
	"diet-tracker-backend/structs"
	"fmt"
	"os"
)

// Model wraps the food-detection model. Inference is not implemented yet:
// every image yields no detections.
type Model struct {
	Dir string
}

func NewModel(dir string) *Model {
	return &Model{Dir: dir}
}

// PredictFromPath runs detection on the image at imagePath.
func (m *Model) PredictFromPath(imagePath string) ([]structs.Detection, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	// TODO: load the detector and portion weights from m.Dir and run inference.
	return []structs.Detection{}, nil
}

// MealItems converts detections into meal items using the estimated grams.
func MealItems(detections []structs.Detection) []structs.MealItemParam {
	items := make([]structs.MealItemParam, 0, len(detections))
	for _, detection := range detections {
		items = append(items, structs.MealItemParam{Name: detection.Name, Grams: detection.EstimatedGrams})
	}
	return items
}
