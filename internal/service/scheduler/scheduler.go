// Package scheduler 설정된 Cron 스케줄에 맞춰 카탈로그 동기화를 자동으로 실행합니다.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/pkg/cronx"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// Runner 동기화 한 번을 실행합니다. syncrun.Runner가 구현합니다.
type Runner interface {
	Run(ctx context.Context) (*syncrun.Report, error)
}

var _ Runner = (*syncrun.Runner)(nil)

// Scheduler 동기화를 Cron 스케줄에 맞춰 실행하는 서비스입니다.
type Scheduler struct {
	spec     string
	location *time.Location

	runner Runner

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다. location이 nil이면 time.Local을 사용합니다.
func NewService(spec string, location *time.Location, runner Runner) *Scheduler {
	if runner == nil {
		panic("Runner는 필수입니다")
	}
	if location == nil {
		location = time.Local
	}

	return &Scheduler{
		spec:     spec,
		location: location,

		runner: runner,
	}
}

// Start 스케줄러를 시작합니다.
//
// 스케줄에 따라 실행되는 동기화는 serviceStopCtx를 사용하므로, 서비스 종료 시 진행 중인 실행도 중단됩니다.
// Stop은 진행 중인 실행이 끝날 때까지 대기합니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	if err := cronx.Validate(s.spec); err != nil {
		serviceStopWG.Done()
		return NewErrInvalidCronSpec(s.spec, err)
	}

	// - StandardParser: 초 단위 스케줄링 지원 (6개 필드: 초 분 시 일 월 요일)
	// - Recover: Panic 발생 시 복구
	// - SkipIfStillRunning: 이전 실행이 끝나지 않았으면 다음 실행을 건너뜀
	s.cron = cron.New(
		cron.WithLocation(s.location),
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	if _, err := s.cron.AddFunc(s.spec, func() { s.runOnce(serviceStopCtx) }); err != nil {
		s.cron = nil
		serviceStopWG.Done()
		return NewErrInvalidCronSpec(s.spec, err)
	}

	s.cron.Start()
	s.running = true

	fields := applog.Fields{
		"spec":     s.spec,
		"location": s.location.String(),
	}
	if entries := s.cron.Entries(); len(entries) > 0 {
		fields["next_run"] = entries[0].Next
	}
	applog.WithComponentAndFields(component, fields).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 안전하게 중지합니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	// 실행 중인 동기화가 끝날 때까지 대기
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"run_by": syncrun.TriggerScheduler,
	}).Info("예약된 동기화를 시작합니다")

	report, err := s.runner.Run(ctx)
	switch {
	case errors.Is(err, syncrun.ErrRunInProgress):
		applog.WithComponent(component).Info("다른 동기화가 실행 중이어서 예약된 실행을 건너뜁니다")

	case err != nil:
		fields := applog.Fields{"error": err}
		if report != nil {
			fields["run_id"] = report.ID
		}
		applog.WithComponentAndFields(component, fields).Warn("예약된 동기화가 중단되었습니다")

	default:
		applog.WithComponentAndFields(component, applog.Fields{
			"run_id":  report.ID,
			"summary": report.Summary(),
		}).Info("예약된 동기화가 완료되었습니다")
	}
}
