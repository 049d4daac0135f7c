// Package service 애플리케이션을 구성하는 장기 실행 서비스의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 시작과 종료를 Context와 WaitGroup으로 조율하는 서비스입니다.
//
// 호출자는 Start 이전에 serviceStopWG.Add(1)을 호출하고, 서비스는 완전히 종료되었을 때
// (또는 시작에 실패했을 때) serviceStopWG.Done()을 호출합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
