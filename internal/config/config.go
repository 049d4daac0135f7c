// Package config 애플리케이션 설정을 기본값, JSON 설정 파일, 환경 변수 순서로 읽어 들입니다.
//
// 뒤에 읽은 값이 앞의 값을 덮어씁니다. 환경 변수는 CATALOG_SYNC_ 접두사를 사용하며,
// 이중 언더스코어(__)는 계층 구분자입니다. (예: CATALOG_SYNC_FEED__FTP__HOST -> feed.ftp.host)
package config

import (
	"errors"
	"io/fs"
	"strings"
	_ "time/tzdata"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "catalog-sync"

	// DefaultFilename 실행 인자로 경로가 주어지지 않을 때 탐색하는 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	EnvPrefix = "CATALOG_SYNC_"

	// DotEnvFilename 있으면 환경 변수보다 먼저 읽어 들이는 파일입니다. 이미 설정된 환경 변수는 덮어쓰지 않습니다.
	DotEnvFilename = ".env"
)

// Load 설정을 읽고 검증합니다.
//
// filename이 비어 있으면 DefaultFilename을 사용하며, 이 경우에만 파일이 없어도 기본값과 환경 변수로 계속 진행합니다.
func Load(filename string) (*AppConfig, error) {
	optional := filename == ""
	if optional {
		filename = DefaultFilename
	}

	if err := godotenv.Load(DotEnvFilename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "%s 파일을 읽을 수 없습니다", DotEnvFilename)
	}

	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist) && optional:
		case errors.Is(err, fs.ErrNotExist):
			return nil, apperrors.Wrapf(err, apperrors.System, "설정 파일을 찾을 수 없습니다: '%s'", filename)
		default:
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", filename)
		}
	}

	// 3. 환경 변수 로드 (최우선 순위)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}

	var appConfig AppConfig
	unmarshalConf.DecoderConfig.Result = &appConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정('%s')의 유효성 검증에 실패했습니다", filename)
	}

	return &appConfig, nil
}
