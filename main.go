package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/clock"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/task"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/config"
)

var (
	// 配置文件路径，与config-data都为空时使用默认配置
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 覆盖配置中的天气
	weather = flag.String("weather", "", "weather override (clear cloudy rain snow fog)")
	// 快照日志间隔步数，0表示不输出
	snapshotInterval = flag.Int("log.snapshot_interval", 10, "快照日志间隔步数（0表示不输出）")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "signal-sim")
)

// loadConfig 读取配置文件或Base64数据，均未指定时返回默认配置
func loadConfig() (config.Config, error) {
	var file []byte
	var err error
	switch {
	case *configPath != "":
		file, err = os.ReadFile(*configPath)
	case *configData != "":
		file, err = base64.StdEncoding.DecodeString(*configData)
	default:
		log.Info("no config specified, using defaults")
		return config.Default().Validate()
	}
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(file)
}

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}

	c, err := loadConfig()
	if err != nil {
		log.Panicf("config load err: %v", err)
	}
	if *weather != "" {
		w, err := entity.ParseWeather(*weather)
		if err != nil {
			log.Panicf("weather override err: %v", err)
		}
		c.Weather = w
	}
	log.Infof("%+v", c)

	engine, err := task.NewEngine(c, nil)
	if err != nil {
		log.Panicf("engine init err: %v", err)
	}
	if *snapshotInterval > 0 {
		engine.Subscribe(func(s task.Snapshot) {
			if s.Elapsed == 0 || s.Elapsed%int32(*snapshotInterval) != 0 {
				return
			}
			log.Infof(
				"[%s] %s phase=%s queue=%d wait=%.1fs congestion=%.0f(%s) processed=%d",
				s.ElapsedText, s.Status, s.Phase, s.Queue.Total(),
				s.Metrics.AvgWaitTime, s.Metrics.CongestionIndex, s.Congestion,
				s.Metrics.TotalVehiclesProcessed,
			)
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine.Start()
	err = engine.Run(ctx, clock.NewWallTicker(c.Control.Step.Interval))
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Panicf("engine run err: %v", err)
	}
	final := engine.Snapshot()
	log.Infof(
		"simulation finished at %s: processed=%d queue=%d",
		final.ElapsedText, final.Metrics.TotalVehiclesProcessed, final.Queue.Total(),
	)
}
