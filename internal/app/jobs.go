package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedReconcileCosts()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedReconcileCosts re-derives every product's production cost. A failed
// recompute after a committed association write leaves the derived field
// stale; this job is the self-healing path that catches up.
func (a *Application) SchedReconcileCosts() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	start := time.Now()
	if err := a.costing.Engine().RecomputeAll(context.Background()); err != nil {
		zap.L().Error("cost reconciliation job failed", zap.Error(err))
		return
	}
	zap.L().Info("cost reconciliation job finished", zap.Duration("elapsed", time.Since(start)))
}
