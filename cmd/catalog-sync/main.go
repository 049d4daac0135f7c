package main

import (
	"fmt"
	"os"
)

// @title Catalog Sync API
// @version 1.0.0
// @description FTP 서버의 상품 피드를 Shopify 카탈로그와 동기화하는 서비스의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 동기화 실행 요청과 진행 상태 조회
// @description - 마지막 실행 보고서 조회
// @description - 헬스체크, 버전, Prometheus 지표
// @description
// @description 설정 화면과 실행 로그는 같은 서버의 / 경로에서 HTML로 제공됩니다.

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser

// @license.name MIT

// @BasePath /

const (
	banner = `
   ____        _        _                   ____
  / ___| __ _ | |_ __ _| |  ___    __ _    / ___| _   _ _ __    ___
 | |    / _' || __/ _' | | / _ \  / _' |___\___ \| | | | '_ \  / __|
 | |___| (_| || || (_| | || (_) || (_| |____|__) | |_| | | | || (__
  \____|\__,_| \__\__,_|_| \___/  \__, |   |____/ \__, |_| |_| \___|
                                  |___/           |___/      %s
--------------------------------------------------------------------------------
`
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// 로거가 초기화되지 않았을 수 있으므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}
}
