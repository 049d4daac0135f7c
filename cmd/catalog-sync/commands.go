package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/internal/config"
	"github.com/darkkaiser/catalog-sync/internal/pkg/version"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/spf13/cobra"
)

const componentMain = "main"

// rootOptions 모든 하위 명령이 공유하는 플래그입니다.
type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "FTP 상품 피드를 Shopify 카탈로그와 동기화합니다",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", fmt.Sprintf("설정 파일 경로 (기본값: %s)", config.DefaultFilename))
	rootCmd.SetVersionTemplate(config.AppName + " {{.Version}}\n")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newSyncCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "웹 화면, API, 예약 동기화를 제공하는 서버를 실행합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func newSyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "동기화를 한 번 실행하고 실행 로그를 출력합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSyncOnce(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "빌드 정보를 출력합니다",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}

// runServe 서비스를 시작하고 종료 신호(SIGINT, SIGTERM)를 기다립니다.
func runServe(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}

	closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields(componentMain, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[cfg.Debug],
	}).Info("서버 초기화 시작")

	for _, w := range cfg.VerifyRecommendations() {
		applog.WithComponent(componentMain).Warn(w)
	}

	app, err := newApplication(cfg)
	if err != nil {
		return err
	}

	serviceStopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range app.services(buildInfo) {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(componentMain, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			// 이미 시작된 서비스들도 종료
			cancel()
			serviceStopWG.Wait()

			return err
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(termC)

	applog.WithComponent(componentMain).Info("서버 가동 완료")

	select {
	case <-termC:
		applog.WithComponent(componentMain).Info("종료 신호를 수신했습니다")
	case <-ctx.Done():
	}

	cancel()
	serviceStopWG.Wait()

	return nil
}

// runSyncOnce 서버 없이 동기화를 한 번 실행하고 실행 로그를 out에 출력합니다.
// 피드 누락 등으로 실행이 중단되면 에러를 반환합니다.
func runSyncOnce(ctx context.Context, opts *rootOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}

	closer, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	app, err := newApplication(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := app.runner.Run(ctx)
	if report != nil {
		for _, line := range report.Texts() {
			fmt.Fprintln(out, line)
		}
	}
	if err != nil {
		return err
	}

	applog.WithComponentAndFields(componentMain, applog.Fields{
		"run_id":  report.ID,
		"run_by":  syncrun.TriggerCLI,
		"summary": report.Summary(),
	}).Info("동기화 실행 완료")

	return nil
}
