// Package service 애플리케이션을 구성하는 장기 실행 서비스의 공통 생명주기를 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 시작과 종료가 관리되는 백그라운드 서비스입니다.
type Service interface {
	// Start 서비스를 별도의 고루틴에서 시작하고 즉시 반환합니다.
	//
	// serviceStopCtx가 취소되면 서비스는 정리 작업을 마친 뒤 serviceStopWG.Done()을 호출합니다.
	// 에러를 반환하는 경우에도 serviceStopWG.Done()은 반드시 호출됩니다.
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
