package log

import (
	"diet-tracker-backend/structs"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

type LogService struct {
	Config structs.EnviromentModel
}

// LoggerInit builds a logger that writes to stdout and logs/<date>/<name>.log,
// with the elastic and logstash hooks attached when enabled.
func (l *LogService) LoggerInit(name string) *logrus.Logger {
	logger := logrus.New()

	var out io.Writer = os.Stdout
	if src := l.openLogFile(name); src != nil {
		out = io.MultiWriter(os.Stdout, src)
	}
	logger.Out = out

	level, err := logrus.ParseLevel(l.Config.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	hookName := l.Config.App.Name
	if hookName == "" {
		hookName = "diet-tracker-backend"
	}

	if l.Config.Log.ElkEnable == 1 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{l.Config.Log.ElkURL},
		})
		if err != nil {
			logger.Debug(err.Error())
		} else {
			hook, err := elogrus.NewAsyncElasticHook(client, hookName, level, l.Config.Log.ElkIndex)
			if err != nil {
				logger.Debug(err.Error())
			} else {
				logger.Hooks.Add(hook)
			}
		}
	}

	if l.Config.Log.LogstashEnable == 1 {
		conn, err := net.Dial("udp", l.Config.Log.LogstashURL)
		if err != nil {
			logger.Debug(err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": hookName}))
			logger.Hooks.Add(hook)
		}
	}

	return logger
}

func (l *LogService) openLogFile(name string) *os.File {
	if l.Config.Log.Dir == "" {
		return nil
	}
	logFilePath := path.Join(l.Config.Log.Dir, time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(logFilePath, 0755); err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fileName := path.Join(logFilePath, name+".log")
	src, err := os.OpenFile(fileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("err", err)
		return nil
	}
	return src
}
