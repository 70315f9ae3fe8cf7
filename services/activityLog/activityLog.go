package activityLog

import (
	"diet-tracker-backend/models"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jinzhu/gorm"
)

// Insert writes one activity_log row on db, which may be a transaction.
func Insert(db *gorm.DB, logName string, data interface{}, causerID, subjectID int64, subjectType string) error {
	properties, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode activity log: %w", err)
	}

	insertTime := time.Now().UTC()
	var activityLogEntity models.ActivityLog
	activityLogEntity.CreatedAt = &insertTime
	activityLogEntity.UpdatedAt = &insertTime
	activityLogEntity.LogName = logName
	activityLogEntity.Description = "diet-tracker log"
	activityLogEntity.Properties = string(properties)
	activityLogEntity.CauserID = causerID
	activityLogEntity.CauserType = "users"
	activityLogEntity.SubjectID = subjectID
	activityLogEntity.SubjectType = subjectType

	if err := db.Create(&activityLogEntity).Error; err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}
