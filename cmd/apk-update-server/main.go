package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/apk-update-server/internal/catalog"
	"github.com/darkkaiser/apk-update-server/internal/config"
	"github.com/darkkaiser/apk-update-server/internal/pkg/version"
	"github.com/darkkaiser/apk-update-server/internal/service"
	"github.com/darkkaiser/apk-update-server/internal/service/api"
	"github.com/darkkaiser/apk-update-server/internal/service/notification"
	"github.com/darkkaiser/apk-update-server/internal/service/probe"
	"github.com/darkkaiser/apk-update-server/internal/storage"
	"github.com/darkkaiser/apk-update-server/internal/storage/provider"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/spf13/pflag"
)

// @title APK Update Server API
// @version 1.0.0
// @description Android 앱(APK) 파일의 새 버전을 확인하고 다운로드하는 API 서버입니다.
// @description
// @description ## 앱 식별자
// @description 모든 요청은 app 쿼리 파라미터로 "<name>-<version>" 형식의 식별자를 전달합니다.
// @description 서버는 스토리지 폴더에서 파일 이름에 <name>이 포함된 첫 번째 APK 파일을 찾아 버전을 비교합니다.
// @description
// @description ## 응답 형식
// @description 에러는 항상 {"error": true, "message": "...", "data": null} 형식으로 응답합니다.
// @description 메시지는 기존 클라이언트와의 호환을 위해 스페인어로 제공됩니다.

// @contact.name DarkKaiser
// @contact.url https://github.com/darkkaiser/apk-update-server

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

const banner = `
     _    ____  _  __  _   _           _       _
    / \  |  _ \| |/ / | | | |_ __   __| | __ _| |_ ___
   / _ \ | |_) | ' /  | | | | '_ \ / _` + "`" + ` |/ _` + "`" + ` | __/ _ \
  / ___ \|  __/| . \  | |_| | |_) | (_| | (_| | ||  __/
 /_/   \_\_|   |_|\_\  \___/| .__/ \__,_|\__,_|\__\___|
                            |_|                  %s
--------------------------------------------------------------------------------
`

// options 명령행 인자
type options struct {
	configFile  string
	showVersion bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := pflag.NewFlagSet(config.AppName, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVarP(&opts.configFile, "config", "c", "", fmt.Sprintf("설정 파일 경로 (.json, .yaml, .yml, 기본값: %s)", config.DefaultFilename))
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "버전 정보를 출력하고 종료합니다")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	return opts, nil
}

// components main에서 생성한 서비스와 정리 대상 리소스입니다.
type components struct {
	store    storage.Store
	services []service.Service
}

// newComponents 설정에 따라 스토리지와 서비스를 생성합니다.
func newComponents(ctx context.Context, appConfig *config.AppConfig) (*components, error) {
	store, err := provider.New(ctx, appConfig.Storage)
	if err != nil {
		return nil, err
	}

	resolver := catalog.NewResolver(store, appConfig.Storage.Folder)

	notificationService := notification.NewService(appConfig)
	probeService := probe.NewService(appConfig.Probe, resolver, notificationService)
	apiService := api.NewService(appConfig, resolver, probeService, notificationService, version.Get())

	return &components{
		store: store,
		// 알림 서비스가 먼저 시작되어야 다른 서비스의 시작 실패를 알릴 수 있습니다.
		services: []service.Service{notificationService, probeService, apiService},
	}, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if opts.showVersion {
		fmt.Println(version.Get().String())
		return
	}

	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행합니다)
	appConfig, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %+v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	fmt.Printf(banner, version.Version())

	applog.WithComponentAndFields("main", applog.Fields(version.Get().ToMap())).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	if err := run(appConfig); err != nil {
		applog.WithComponent("main").WithError(err).Error("서버 실행 실패로 프로그램을 종료합니다")
		appLogCloser.Close()
		os.Exit(1)
	}
}

// run 서비스를 시작하고 종료 시그널(SIGINT, SIGTERM)을 받을 때까지 대기합니다.
func run(appConfig *config.AppConfig) error {
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := newComponents(serviceStopCtx, appConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.store.Close(); err != nil {
			applog.WithComponent("main").WithError(err).Warn("스토리지 클라이언트를 닫는 중에 오류가 발생했습니다")
		}
	}()

	serviceStopWG := &sync.WaitGroup{}

	for _, s := range c.services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			cancel() // 이미 시작된 서비스도 종료합니다.
			serviceStopWG.Wait()

			return err
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(termC)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 시그널 수신")

	cancel()
	serviceStopWG.Wait()

	return nil
}
