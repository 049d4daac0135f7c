// Package validator go-playground/validator를 감싸 설정과 요청 본문 검증에 공통으로 사용합니다.
//
// 필드 이름은 `korean` 태그가 있으면 그 값을 사용하여 에러 메시지를 한국어로 만듭니다.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/darkkaiser/catalog-sync/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get 초기화된 전역 validator 인스턴스를 반환합니다.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			return fld.Name
		})

		// cron: 초 단위를 포함한 6필드 Cron 표현식
		_ = v.RegisterValidation("cron", func(fl validator.FieldLevel) bool {
			return cronx.Validate(fl.Field().String()) == nil
		})

		// cors_origin: '*' 또는 scheme://host[:port]
		_ = v.RegisterValidation("cors_origin", func(fl validator.FieldLevel) bool {
			return isCORSOrigin(fl.Field().String())
		})

		instance = v
	})

	return instance
}

// Struct 구조체의 validate 태그를 기준으로 검증합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// FormatValidationError 검증 에러를 한국어 메시지로 변환합니다. 여러 에러 중 첫 번째만 사용합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", field)
	case "required_if":
		return fmt.Sprintf("%s는 조건(%s)에 따라 필수입니다", field, strings.ReplaceAll(fe.Param(), " ", "="))
	case "required_without":
		return fmt.Sprintf("%s는 %s가 없으면 필수입니다", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s는 %s보다 커야 합니다", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s는 길이가 %s이어야 합니다", field, fe.Param())
	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", field, fe.Param())
		}
		return fmt.Sprintf("%s는 최소 %s 이상이어야 합니다", field, fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", field, fe.Param())
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s는 [%s] 중 하나여야 합니다", field, fe.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s는 올바른 URL 형식이어야 합니다", field)
	case "hostname_port":
		return fmt.Sprintf("%s는 '호스트:포트' 형식이어야 합니다", field)
	case "timezone":
		return fmt.Sprintf("%s는 올바른 시간대 이름이어야 합니다", field)
	case "cron":
		return fmt.Sprintf("%s는 올바른 Cron 표현식이어야 합니다", field)
	case "cors_origin":
		return fmt.Sprintf("%s는 '*' 또는 'scheme://host[:port]' 형식이어야 합니다 (입력값: %v)", field, fe.Value())
	default:
		return fmt.Sprintf("%s 검증 실패: %s", field, fe.Tag())
	}
}
