/*
Package metrics wraps datadog-go to faciliate metric recording.
Naming convention:
- Internal process time: *.time
- Error: *.err
*/
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/pixeldonor/goapi/base/log"
)

// Ender finishes a timer started by BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

const ddRate = 1

var (
	initOnce sync.Once
	ddClient *statsd.Client
)

func initDDClient() {
	host := viper.GetString("datadog.host")
	if host == "" {
		log.Log().Info("datadog agent not configured, metrics are log-only")
		return
	}
	addr := fmt.Sprintf("%s:%d", host, viper.GetInt("datadog.port"))
	cli, err := statsd.NewBuffered(addr, 10)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	cli.Tags = []string{
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	ddClient = cli
}

type impl struct {
	prefix string
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	initOnce.Do(initDDClient)
	return &impl{prefix: pkgName + "."}
}

func parseTags(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}

func (im *impl) BumpAvg(key string, val float64, tags ...string) {
	if ddClient == nil {
		return
	}
	if err := ddClient.Gauge(im.prefix+key, val, parseTags(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("BumpAvg fail")
	}
}

func (im *impl) BumpSum(key string, val float64, tags ...string) {
	if ddClient == nil {
		return
	}
	if err := ddClient.Count(im.prefix+key, int64(val), parseTags(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("BumpSum fail")
	}
}

func (im *impl) BumpHistogram(key string, val float64, tags ...string) {
	if ddClient == nil {
		return
	}
	if err := ddClient.Histogram(im.prefix+key, val, parseTags(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("BumpHistogram fail")
	}
}

func (im *impl) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		key:   im.prefix + key,
		tags:  parseTags(tags),
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (tt *timeTracker) End() {
	if ddClient == nil {
		return
	}
	dur := float64(time.Since(tt.start)) / float64(time.Millisecond)
	if err := ddClient.TimeInMilliseconds(tt.key, dur, tt.tags, ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": tt.key}).Error("BumpTime fail")
	}
}
