package check

import (
	"diet-tracker-backend/app"
	"diet-tracker-backend/services/rabbitmq"
	"diet-tracker-backend/services/trackLog"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AliveResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Info    CheckInfo `json:"info"`
}

type CheckInfo struct {
	Database   bool     `json:"database"`
	Queues     []string `json:"queue"`
	RoutineNum int      `json:"routine_num"`
}

type CheckController struct {
	app *app.App
}

func NewCheckController(a *app.App) *CheckController {
	return &CheckController{app: a}
}

// CheckAlive pings the database and, when enabled, the broker, reconnecting it if it dropped.
func (ch *CheckController) CheckAlive(c *gin.Context) {
	resMsg := "main thread alive"
	success := true
	checkInfo := CheckInfo{}

	if err := ch.app.DB.DB().Ping(); err != nil {
		success = false
		resMsg = fmt.Sprintf("database ping fail: %s", err.Error())
		trackLog.Error(resMsg)
	} else {
		checkInfo.Database = true
	}

	if rabbitConn := rabbitmq.GetConnection(ch.app.Config.App.Name); rabbitConn != nil {
		select {
		case err := <-rabbitConn.ApiErr:
			trackLog.Error(fmt.Sprintf("api error: %s", err.Error()))
		case <-time.After(10 * time.Millisecond):
		}
		if !rabbitConn.Alive() {
			trackLog.Error("rabbitmq connection lost, reconnecting..")
			if err := rabbitConn.Reconnect(); err != nil {
				success = false
				resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
				trackLog.Error(resMsg)
			}
		}
		if rabbitConn.Alive() {
			checkInfo.Queues = append(checkInfo.Queues, rabbitConn.Queues...)
		}
	}

	checkInfo.RoutineNum = runtime.NumGoroutine()
	trackLog.Tracker().WithFields(logrus.Fields{
		"database":    checkInfo.Database,
		"queues":      checkInfo.Queues,
		"routine_num": checkInfo.RoutineNum,
	}).Info(resMsg)

	status := http.StatusOK
	if !success {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, AliveResponse{Success: success, Message: resMsg, Info: checkInfo})
}
