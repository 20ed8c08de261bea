package services

import (
	"time"

	"academy-server/storage"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// PublishScheduler activates realms and lessons whose publishAt time has
// arrived. It runs once a minute.
type PublishScheduler struct {
	store storage.Store
	log   zerolog.Logger
	sched gocron.Scheduler
}

func NewPublishScheduler(store storage.Store, log zerolog.Logger) *PublishScheduler {
	return &PublishScheduler{store: store, log: log}
}

func (p *PublishScheduler) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	p.sched = sched

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() { p.PublishDue(time.Now()) }),
	)
	if err != nil {
		return err
	}
	sched.Start()
	return nil
}

func (p *PublishScheduler) Stop() {
	if p.sched != nil {
		_ = p.sched.Shutdown()
	}
}

// PublishDue flips every due realm and lesson to active and clears its
// publish time so it is not picked up again.
func (p *PublishScheduler) PublishDue(now time.Time) {
	realms, err := p.store.DueRealms(now)
	if err != nil {
		p.log.Error().Err(err).Msg("scheduler: listing due realms")
		return
	}
	for _, r := range realms {
		if _, err := p.store.UpdateRealm(r.ID, storage.Partial{"isActive": true, "publishAt": nil}); err != nil {
			p.log.Error().Err(err).Str("realm", r.ID).Msg("scheduler: publishing realm")
			continue
		}
		p.log.Info().Str("realm", r.ID).Str("title", r.Title).Msg("auto-published realm")
	}

	lessons, err := p.store.DueLessons(now)
	if err != nil {
		p.log.Error().Err(err).Msg("scheduler: listing due lessons")
		return
	}
	for _, l := range lessons {
		if _, err := p.store.UpdateLesson(l.ID, storage.Partial{"isActive": true, "publishAt": nil}); err != nil {
			p.log.Error().Err(err).Str("lesson", l.ID).Msg("scheduler: publishing lesson")
			continue
		}
		p.log.Info().Str("lesson", l.ID).Str("title", l.Title).Msg("auto-published lesson")
	}
}
