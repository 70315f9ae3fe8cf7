package trackLog

import (
	"diet-tracker-backend/services/log"
	"diet-tracker-backend/structs"

	"github.com/sirupsen/logrus"
)

var logTracker = logrus.NewEntry(logrus.StandardLogger())

func LogTrackInit(config structs.EnviromentModel) *logrus.Entry {
	trackerService := log.LogService{Config: config}
	temp := trackerService.LoggerInit("tracker")
	logTracker = temp.WithFields(logrus.Fields{"task": "track", "app": config.App.Name})
	return logTracker
}

func Tracker() *logrus.Entry {
	return logTracker
}

func Info(message string) {
	logTracker.Info(message)
}

func Error(message string) {
	logTracker.Error(message)
}
