package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/darkkaiser/catalog-sync/internal/pkg/validator"
	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	"github.com/darkkaiser/catalog-sync/internal/service/api/httputil"
	"github.com/darkkaiser/catalog-sync/internal/service/settings"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/labstack/echo/v4"
)

// 설정 화면의 탭
const (
	viewSync = "sync"
	viewMeta = "meta"
)

// 설정 폼의 action 값
const (
	actionAddMeta      = "add_meta"
	actionDeleteMeta   = "delete_meta"
	actionClearMeta    = "clear_meta"
	actionSaveSettings = "save_settings"
	actionImport       = "import"
)

// 화면에 표시되는 안내 문구
const (
	reportPlaceholder = "(Логи ще не зібрані; спочатку натисніть «Запустити» на сторінці налаштувань або зачекайте, поки синхронізація завершиться.)"

	noticeMetaAdded        = "Додан метафілд"
	noticeMetaDeleted      = "Метафілд «%s» видалено"
	noticeMetaNotFound     = "Метафілд «%s» не знайдено"
	noticeMetaBlank        = "Назва колонки порожня"
	noticeMetaCleared      = "Метафілди видалені"
	noticeSettingsSaved    = "Налаштування збережені"
	noticeImportStarted    = "🔄 Синхронізацію запущено"
	noticeImportInProgress = "⏳ Синхронізація вже виконується"
	noticeImportStopped    = "❌ Сервіс синхронізації зупинено"
)

type homePage struct {
	Title string
}

type reportPage struct {
	Title      string
	InProgress bool
	Summary    string
	Lines      []string
}

type settingsPage struct {
	Title       string
	View        string
	Settings    settings.Settings
	MetaColumns []string
	InProgress  bool
	Notice      string
}

// saveSettingRequest 스위치 하나를 저장하는 요청 본문입니다.
type saveSettingRequest struct {
	Key   string `json:"key" validate:"required" korean:"설정 키"`
	Value *bool  `json:"value" validate:"required" korean:"설정 값"`
}

// HomeHandler 홈 화면을 그립니다.
func (h *Handler) HomeHandler(c echo.Context) error {
	return c.Render(http.StatusOK, pageHome, homePage{Title: "Імпорт у Shopify"})
}

// ReportHandler 마지막 실행 로그를 그립니다. 실행 기록이 없으면 안내 문구를 보여줍니다.
func (h *Handler) ReportHandler(c echo.Context) error {
	page := reportPage{
		Title:      "Звіт синхронізації",
		InProgress: h.status.InProgress(),
		Lines:      []string{reportPlaceholder},
	}

	if last := h.status.LastReport(); last != nil {
		page.Summary = last.Summary()
		page.Lines = last.Texts()
	}

	return c.Render(http.StatusOK, pageReport, page)
}

// SettingsPageHandler 설정 화면을 그립니다.
func (h *Handler) SettingsPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, pageSettings, settingsPage{
		Title:       "Настроювання синхронізації",
		View:        normalizeView(c.QueryParam("view")),
		Settings:    h.store.Snapshot(),
		MetaColumns: h.store.MetaColumns(),
		InProgress:  h.status.InProgress(),
		Notice:      c.QueryParam("notice"),
	})
}

// SettingsActionHandler 설정 폼의 action을 처리하고 안내 문구와 함께 설정 화면으로 돌려보냅니다.
func (h *Handler) SettingsActionHandler(c echo.Context) error {
	action := c.FormValue("action")

	var (
		notice string
		err    error
	)

	switch action {
	case actionAddMeta:
		notice, err = h.addMeta(c.FormValue("new_meta"))

	case actionDeleteMeta:
		notice, err = h.deleteMeta(c.FormValue("meta_to_delete"))

	case actionClearMeta:
		if err = h.store.ClearMetaColumns(); err == nil {
			notice = noticeMetaCleared
		}

	case actionSaveSettings:
		// 체크되지 않은 체크박스는 폼에 포함되지 않습니다.
		err = h.store.SaveToggles(
			c.FormValue(settings.KeyUpdatePriceQty) != "",
			c.FormValue(settings.KeyUpdateSalePrice) != "",
			c.FormValue(settings.KeyUpdateDescription) != "",
		)
		if err == nil {
			notice = noticeSettingsSaved
		}

	case actionImport:
		notice = h.startImport(c)

	default:
		return httputil.NewBadRequestError(constants.ErrMsgBadRequest)
	}

	if err != nil {
		return err
	}

	if action != actionImport {
		h.log(c).WithFields(applog.Fields{
			"action": action,
		}).Info(constants.LogMsgSettingsChanged)
	}

	return redirectToSettings(c, notice)
}

// SaveSettingHandler 스위치 하나를 즉시 저장합니다. 성공하면 204를 반환합니다.
func (h *Handler) SaveSettingHandler(c echo.Context) error {
	var req saveSettingRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}
	if err := validator.Struct(&req); err != nil {
		return httputil.NewBadRequestError(validator.FormatValidationError(err))
	}

	if err := h.store.SetToggle(req.Key, *req.Value); err != nil {
		if apperrors.Is(err, apperrors.InvalidInput) {
			return httputil.NewBadRequestError(constants.ErrMsgBadRequestUnknownKey)
		}
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"key":   req.Key,
		"value": *req.Value,
	}).Info(constants.LogMsgSettingsChanged)

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) addMeta(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return noticeMetaBlank, nil
	}
	if err := h.store.AddMetaColumn(name); err != nil {
		return "", err
	}
	return noticeMetaAdded, nil
}

func (h *Handler) deleteMeta(name string) (string, error) {
	name = strings.TrimSpace(name)

	err := h.store.DeleteMetaColumn(name)
	switch {
	case err == nil:
		return fmt.Sprintf(noticeMetaDeleted, name), nil
	case apperrors.Is(err, apperrors.NotFound):
		return fmt.Sprintf(noticeMetaNotFound, name), nil
	default:
		return "", err
	}
}

func (h *Handler) startImport(c echo.Context) string {
	err := h.trigger.TriggerAsync(syncrun.TriggerManual)
	switch {
	case err == nil:
		h.log(c).Info(constants.LogMsgSyncTriggered)
		return noticeImportStarted

	case errors.Is(err, syncrun.ErrRunInProgress):
		h.log(c).Warn(constants.LogMsgSyncRejected)
		return noticeImportInProgress

	default:
		h.log(c).WithError(err).Warn(constants.LogMsgSyncRejected)
		return noticeImportStopped
	}
}

func normalizeView(view string) string {
	if view == viewMeta {
		return viewMeta
	}
	return viewSync
}

func redirectToSettings(c echo.Context, notice string) error {
	q := url.Values{}
	q.Set("view", normalizeView(c.QueryParam("view")))
	if notice != "" {
		q.Set("notice", notice)
	}

	return c.Redirect(http.StatusSeeOther, "/settings?"+q.Encode())
}
