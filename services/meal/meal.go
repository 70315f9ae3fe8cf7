package meal

import (
	"diet-tracker-backend/enums"
	"diet-tracker-backend/models"
	"diet-tracker-backend/services/activityLog"
	"diet-tracker-backend/structs"
	"errors"
	"fmt"
	"math"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// Scaler turns a (name, grams) pair into a nutrition breakdown.
type Scaler interface {
	Scale(name string, grams float64) (structs.NutritionBreakdown, error)
}

// Publisher sends a message body to a queue.
type Publisher interface {
	Publish(queue string, body []byte) error
}

// ErrInvalidMeal is returned when an item scales to a value that cannot be stored.
var ErrInvalidMeal = errors.New("meal nutrition out of range")

type MealService struct {
	db        *gorm.DB
	scaler    Scaler
	publisher Publisher
	queue     string
	logger    *logrus.Entry
	now       func() time.Time
}

func NewMealService(db *gorm.DB, scaler Scaler, logger *logrus.Entry) *MealService {
	return &MealService{
		db:     db,
		scaler: scaler,
		logger: logger,
		now:    time.Now,
	}
}

// WithPublisher enables meal-logged events on queue.
func (m *MealService) WithPublisher(publisher Publisher, queue string) *MealService {
	m.publisher = publisher
	m.queue = queue
	return m
}

// Enrich scales each item in input order and sums the calories.
func (m *MealService) Enrich(items []structs.MealItemParam) (models.MealItems, float64, error) {
	enriched := make(models.MealItems, 0, len(items))
	totalCalories := 0.0
	for _, item := range items {
		breakdown, err := m.scaler.Scale(item.Name, item.Grams)
		if err != nil {
			return nil, 0, err
		}
		if !finite(breakdown.Calories, breakdown.Protein, breakdown.Fat, breakdown.Carbs) {
			return nil, 0, fmt.Errorf("%w: %q at %v g", ErrInvalidMeal, item.Name, item.Grams)
		}
		enriched = append(enriched, models.MealItem{
			Name:      item.Name,
			Grams:     item.Grams,
			Nutrition: breakdown,
		})
		totalCalories += breakdown.Calories
	}
	if !finite(totalCalories) {
		return nil, 0, fmt.Errorf("%w: total calories", ErrInvalidMeal)
	}
	return enriched, totalCalories, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CreateMeal enriches the items and persists them with their total as one meal row.
// Either the meal and its activity log are both written or nothing is.
func (m *MealService) CreateMeal(userID int64, items []structs.MealItemParam) (*models.Meal, error) {
	enriched, totalCalories, err := m.Enrich(items)
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	mealEntity := models.Meal{
		UserID:        userID,
		Timestamp:     now,
		Items:         enriched,
		TotalCalories: totalCalories,
		CreatedAt:     now,
	}

	tx := m.db.Begin()
	if err := tx.Error; err != nil {
		return nil, fmt.Errorf("begin meal transaction: %w", err)
	}
	if err := tx.Create(&mealEntity).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("insert meal: %w", err)
	}
	logModel := structs.ActivityLogJsonModel{
		Type:    enums.LogMealCreated,
		UserID:  userID,
		Result:  true,
		Message: fmt.Sprintf("%d items, %.2f kcal", len(enriched), totalCalories),
	}
	if err := activityLog.Insert(tx, enums.LogMealCreated, logModel, userID, mealEntity.ID, mealEntity.TableName()); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit meal: %w", err)
	}

	m.publishMealLogged(mealEntity)
	if m.logger != nil {
		m.logger.WithFields(logrus.Fields{"task": "meal", "user_id": userID, "meal_id": mealEntity.ID, "items": len(enriched), "total_calories": totalCalories}).Info("meal created")
	}
	return &mealEntity, nil
}

// Publishing happens after commit; a failure is logged and the meal stands.
func (m *MealService) publishMealLogged(mealEntity models.Meal) {
	if m.publisher == nil {
		return
	}
	body, err := json.Marshal(structs.MealLoggedEvent{
		Type:          enums.LogMealCreated,
		MealID:        mealEntity.ID,
		UserID:        mealEntity.UserID,
		ItemCount:     len(mealEntity.Items),
		TotalCalories: mealEntity.TotalCalories,
		Timestamp:     mealEntity.Timestamp,
	})
	if err == nil {
		err = m.publisher.Publish(m.queue, body)
	}
	if err != nil && m.logger != nil {
		m.logger.WithFields(logrus.Fields{"task": "meal", "meal_id": mealEntity.ID, "queue": m.queue}).Error("publish meal event: ", err.Error())
	}
}

// ListMealsByUserAndDateRange returns the user's meals with from <= logged_at < to.
func (m *MealService) ListMealsByUserAndDateRange(userID int64, from, to time.Time) ([]models.Meal, error) {
	mealEntities := []models.Meal{}
	if err := m.db.
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from.UTC(), to.UTC()).
		Order("logged_at ASC, id ASC").
		Find(&mealEntities).Error; err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return mealEntities, nil
}

// ListMealsByUserAndDay returns the meals logged on the UTC calendar day of day.
func (m *MealService) ListMealsByUserAndDay(userID int64, day time.Time) ([]models.Meal, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return m.ListMealsByUserAndDateRange(userID, start, start.Add(24*time.Hour))
}
