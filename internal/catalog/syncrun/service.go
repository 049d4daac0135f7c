package syncrun

import (
	"context"
	"sync"

	applog "github.com/darkkaiser/catalog-sync/pkg/log"
)

// Trigger 실행을 요청한 주체입니다.
type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerScheduler Trigger = "scheduler"
	TriggerCLI       Trigger = "cli"
)

// Service Runner를 백그라운드에서 실행하는 서비스입니다.
//
// 웹 요청이나 스케줄러는 TriggerAsync로 실행을 요청하고 즉시 반환받습니다.
// 서비스 종료 시 진행 중인 실행의 Context가 취소되며, 실행이 끝날 때까지 기다린 뒤 종료됩니다.
type Service struct {
	runner *Runner

	runCtx    context.Context
	runCancel context.CancelFunc
	runWG     sync.WaitGroup

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Service 인스턴스를 생성합니다.
func NewService(runner *Runner) *Service {
	if runner == nil {
		panic("Runner는 필수입니다")
	}

	return &Service{runner: runner}
}

// Runner 내부 Runner를 반환합니다.
func (s *Service) Runner() *Runner {
	return s.runner
}

// Start 서비스를 시작합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: 동기화 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("동기화 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	s.runCtx, s.runCancel = context.WithCancel(context.Background())
	s.running = true

	applog.WithComponent(component).Info("서비스 시작 완료: 동기화 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 진행 중인 실행을 취소하고 끝날 때까지 기다립니다.
func (s *Service) Stop() {
	s.runningMu.Lock()
	if !s.running {
		s.runningMu.Unlock()
		return
	}
	s.running = false
	cancel := s.runCancel
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("종료 절차 진입: 동기화 서비스 중지 시그널을 수신했습니다")

	cancel()
	s.runWG.Wait()

	applog.WithComponent(component).Info("동기화 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// TriggerAsync 백그라운드 실행을 요청합니다.
//
// 이미 실행 중이면 ErrRunInProgress를, 서비스가 실행 중이 아니면 ErrServiceNotRunning을 반환합니다.
// 요청이 받아들여지면 실행 결과를 기다리지 않고 즉시 nil을 반환합니다.
func (s *Service) TriggerAsync(by Trigger) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return ErrServiceNotRunning
	}
	if s.runner.InProgress() {
		return ErrRunInProgress
	}

	started := make(chan error, 1)

	s.runWG.Add(1)
	go func(ctx context.Context) {
		defer s.runWG.Done()

		s.run(ctx, by, started)
	}(s.runCtx)

	return <-started
}

func (s *Service) run(ctx context.Context, by Trigger, started chan<- error) {
	entry := applog.WithComponentAndFields(component, applog.Fields{"run_by": by})

	if !s.runner.inProgress.CompareAndSwap(false, true) {
		started <- ErrRunInProgress
		return
	}
	started <- nil

	entry.Info("동기화 실행 요청을 수락했습니다")

	report, err := s.runner.runClaimed(ctx)
	if err != nil {
		entry.WithField("error", err).Warn("동기화 실행이 중단되었습니다")
		return
	}

	entry.WithField("summary", report.Summary()).Info("백그라운드 동기화 실행이 완료되었습니다")
}
