package meal

import (
	"diet-tracker-backend/database"
	"diet-tracker-backend/models"
	"diet-tracker-backend/services/nutrition"
	"diet-tracker-backend/structs"
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	queue  string
	bodies [][]byte
	err    error
}

func (f *fakePublisher) Publish(queue string, body []byte) error {
	f.queue = queue
	f.bodies = append(f.bodies, body)
	return f.err
}

type failingScaler struct{}

func (failingScaler) Scale(name string, grams float64) (structs.NutritionBreakdown, error) {
	return structs.NutritionBreakdown{}, errors.New("storage unavailable")
}

func newTestMealService(t *testing.T) (*MealService, *nutrition.NutritionService, *gorm.DB) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	nutritionService := nutrition.NewNutritionService(db, nil)
	_, err = nutritionService.Seed([]structs.NutritionSeed{
		{Name: "banana", CaloriesPer100g: 89, ProteinPer100g: 1.1, FatPer100g: 0.3, CarbsPer100g: 22.8},
		{Name: "egg", CaloriesPer100g: 155, ProteinPer100g: 13, FatPer100g: 11, CarbsPer100g: 1.1},
		{Name: "oats", CaloriesPer100g: 389, ProteinPer100g: 16.9, FatPer100g: 6.9, CarbsPer100g: 66.3},
	})
	require.NoError(t, err)

	return NewMealService(db, nutritionService, nil), nutritionService, db
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int {
	t.Helper()
	var count int
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestCreateMealSingleBanana(t *testing.T) {
	service, _, _ := newTestMealService(t)

	mealEntity, err := service.CreateMeal(7, []structs.MealItemParam{{Name: "banana", Grams: 150}})
	require.NoError(t, err)

	require.Len(t, mealEntity.Items, 1)
	assert.Equal(t, "banana", mealEntity.Items[0].Name)
	assert.Equal(t, 150.0, mealEntity.Items[0].Grams)
	assert.Equal(t, 133.5, mealEntity.Items[0].Nutrition.Calories)
	assert.True(t, mealEntity.Items[0].Nutrition.Found)
	assert.Equal(t, 133.5, mealEntity.TotalCalories)
	assert.Equal(t, int64(7), mealEntity.UserID)
	assert.NotZero(t, mealEntity.ID)
}

func TestCreateMealUnknownItemContributesZero(t *testing.T) {
	service, _, _ := newTestMealService(t)

	mealEntity, err := service.CreateMeal(1, []structs.MealItemParam{
		{Name: "banana", Grams: 100},
		{Name: "unknownfruit", Grams: 50},
	})
	require.NoError(t, err)

	assert.Equal(t, 89.0, mealEntity.TotalCalories)
	require.Len(t, mealEntity.Items, 2)
	assert.False(t, mealEntity.Items[1].Nutrition.Found)
	assert.Equal(t, "unknownfruit", mealEntity.Items[1].Nutrition.Name)
	assert.Zero(t, mealEntity.Items[1].Nutrition.Calories)
}

func TestCreateMealEmpty(t *testing.T) {
	service, _, db := newTestMealService(t)

	mealEntity, err := service.CreateMeal(1, []structs.MealItemParam{})
	require.NoError(t, err)
	assert.NotNil(t, mealEntity.Items)
	assert.Empty(t, mealEntity.Items)
	assert.Zero(t, mealEntity.TotalCalories)
	assert.Equal(t, 1, countRows(t, db, &models.Meal{}))

	mealEntity, err = service.CreateMeal(1, nil)
	require.NoError(t, err)
	assert.Empty(t, mealEntity.Items)
	assert.Zero(t, mealEntity.TotalCalories)
}

func TestCreateMealTotalIsSumOfItems(t *testing.T) {
	service, nutritionService, _ := newTestMealService(t)

	lists := [][]structs.MealItemParam{
		{{Name: "oats", Grams: 40}, {Name: "banana", Grams: 120}, {Name: "egg", Grams: 55.5}},
		{{Name: "EGG", Grams: 0.1}, {Name: "nothing", Grams: 10}, {Name: "Oats", Grams: 250}},
		{{Name: "banana", Grams: 33.3}, {Name: "banana", Grams: 66.7}},
	}
	for _, items := range lists {
		mealEntity, err := service.CreateMeal(3, items)
		require.NoError(t, err)

		expected := 0.0
		for i, item := range items {
			breakdown, err := nutritionService.Scale(item.Name, item.Grams)
			require.NoError(t, err)
			expected += breakdown.Calories
			assert.Equal(t, item.Name, mealEntity.Items[i].Name, "input order is preserved")
			assert.Equal(t, breakdown, mealEntity.Items[i].Nutrition)
		}
		assert.Equal(t, expected, mealEntity.TotalCalories)
	}
}

func TestCreateMealRoundTrip(t *testing.T) {
	service, _, _ := newTestMealService(t)

	created, err := service.CreateMeal(5, []structs.MealItemParam{
		{Name: "Banana", Grams: 150},
		{Name: "dragonfruit", Grams: 80},
		{Name: "egg", Grams: 60},
	})
	require.NoError(t, err)

	meals, err := service.ListMealsByUserAndDay(5, created.Timestamp)
	require.NoError(t, err)
	require.Len(t, meals, 1)

	assert.Equal(t, created.ID, meals[0].ID)
	assert.Equal(t, created.Items, meals[0].Items)
	assert.Equal(t, created.TotalCalories, meals[0].TotalCalories)
	assert.True(t, created.Timestamp.Equal(meals[0].Timestamp))
}

func TestCreateMealTotalIsSnapshot(t *testing.T) {
	service, _, db := newTestMealService(t)

	created, err := service.CreateMeal(4, []structs.MealItemParam{{Name: "banana", Grams: 100}})
	require.NoError(t, err)
	require.Equal(t, 89.0, created.TotalCalories)

	require.NoError(t, db.Model(&models.Nutrition{}).
		Where("name_key = ?", "banana").
		Update("calories_per_100g", 120).Error)

	meals, err := service.ListMealsByUserAndDay(4, created.Timestamp)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, 89.0, meals[0].TotalCalories)
	require.Len(t, meals[0].Items, 1)
	assert.Equal(t, 89.0, meals[0].Items[0].Nutrition.Calories)

	again, err := service.CreateMeal(4, []structs.MealItemParam{{Name: "banana", Grams: 100}})
	require.NoError(t, err)
	assert.Equal(t, 120.0, again.TotalCalories, "new meals use the edited reference")
}

func TestCreateMealRejectsNonFiniteNutrition(t *testing.T) {
	service, _, db := newTestMealService(t)

	_, err := service.CreateMeal(1, []structs.MealItemParam{{Name: "oats", Grams: 1e308}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidMeal))

	_, err = service.CreateMeal(1, []structs.MealItemParam{
		{Name: "oats", Grams: 1e307},
		{Name: "oats", Grams: 1e307},
		{Name: "oats", Grams: 1e307},
		{Name: "oats", Grams: 1e307},
		{Name: "oats", Grams: 1e307},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidMeal), "sum overflows even though each item is finite")

	assert.Equal(t, 0, countRows(t, db, &models.Meal{}))
}

func TestCreateMealWritesActivityLog(t *testing.T) {
	service, _, db := newTestMealService(t)

	mealEntity, err := service.CreateMeal(9, []structs.MealItemParam{{Name: "egg", Grams: 50}})
	require.NoError(t, err)

	var logEntity models.ActivityLog
	require.NoError(t, db.Where("log_name = ?", "meal.created").First(&logEntity).Error)
	assert.Equal(t, int64(9), logEntity.CauserID)
	assert.Equal(t, mealEntity.ID, logEntity.SubjectID)
	assert.Equal(t, "meals", logEntity.SubjectType)
}

func TestCreateMealScalerFailurePersistsNothing(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	defer db.Close()

	service := NewMealService(db, failingScaler{}, nil)
	_, err = service.CreateMeal(1, []structs.MealItemParam{{Name: "banana", Grams: 100}})
	require.Error(t, err)
	assert.Equal(t, 0, countRows(t, db, &models.Meal{}))
	assert.Equal(t, 0, countRows(t, db, &models.ActivityLog{}))
}

func TestCreateMealStorageFailure(t *testing.T) {
	service, _, db := newTestMealService(t)
	require.NoError(t, db.DropTable(&models.ActivityLog{}).Error)

	_, err := service.CreateMeal(1, []structs.MealItemParam{{Name: "banana", Grams: 100}})
	require.Error(t, err)
	assert.Equal(t, 0, countRows(t, db, &models.Meal{}), "meal insert is rolled back")
}

func TestCreateMealPublishesEvent(t *testing.T) {
	service, _, _ := newTestMealService(t)
	publisher := &fakePublisher{}
	service.WithPublisher(publisher, "meal-logged")

	mealEntity, err := service.CreateMeal(2, []structs.MealItemParam{{Name: "banana", Grams: 200}})
	require.NoError(t, err)

	require.Len(t, publisher.bodies, 1)
	assert.Equal(t, "meal-logged", publisher.queue)

	var event structs.MealLoggedEvent
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &event))
	assert.Equal(t, mealEntity.ID, event.MealID)
	assert.Equal(t, int64(2), event.UserID)
	assert.Equal(t, 1, event.ItemCount)
	assert.Equal(t, 178.0, event.TotalCalories)
}

func TestCreateMealPublishFailureKeepsMeal(t *testing.T) {
	service, _, db := newTestMealService(t)
	service.WithPublisher(&fakePublisher{err: errors.New("broker down")}, "meal-logged")

	_, err := service.CreateMeal(2, []structs.MealItemParam{{Name: "banana", Grams: 200}})
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, db, &models.Meal{}))
}

func TestListMealsByUserAndDateRange(t *testing.T) {
	service, _, _ := newTestMealService(t)

	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(-time.Minute),                    // previous day
		base,                                      // start of day
		base.Add(12 * time.Hour),                  // noon
		base.Add(24*time.Hour - time.Millisecond), // last moment
		base.Add(24 * time.Hour),                  // next day
	}
	for _, ts := range times {
		ts := ts
		service.now = func() time.Time { return ts }
		_, err := service.CreateMeal(1, []structs.MealItemParam{{Name: "egg", Grams: 100}})
		require.NoError(t, err)
	}
	service.now = func() time.Time { return base.Add(6 * time.Hour) }
	_, err := service.CreateMeal(2, []structs.MealItemParam{{Name: "egg", Grams: 100}})
	require.NoError(t, err)

	meals, err := service.ListMealsByUserAndDay(1, base.Add(5*time.Hour))
	require.NoError(t, err)
	require.Len(t, meals, 3)
	assert.True(t, meals[0].Timestamp.Equal(times[1]))
	assert.True(t, meals[1].Timestamp.Equal(times[2]))
	assert.True(t, meals[2].Timestamp.Equal(times[3]))

	meals, err = service.ListMealsByUserAndDateRange(1, base.Add(-time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, meals, 2)

	meals, err = service.ListMealsByUserAndDay(3, base)
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)
}
