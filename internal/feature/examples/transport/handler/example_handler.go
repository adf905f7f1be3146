// Package handler はexamplesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"facets_backend/internal/api"
	"facets_backend/internal/feature/examples/domain"
	"facets_backend/internal/feature/examples/domain/entity"
	"facets_backend/internal/feature/examples/transport/http/dto"
	"facets_backend/internal/feature/examples/usecase"
	"facets_backend/internal/platform/http/middleware"
	"facets_backend/internal/platform/logger"
)

// ExampleUsecase はExampleリソースのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ExampleUsecase interface {
	List(ctx context.Context, filter usecase.ListFilter, req usecase.PageRequest) (usecase.ListResult, error)
	Active(ctx context.Context, filter usecase.ListFilter) ([]entity.Example, error)
	Get(ctx context.Context, id uint) (*entity.Example, error)
	Create(ctx context.Context, changes usecase.ExampleChanges) (*entity.Example, error)
	Update(ctx context.Context, id uint, changes usecase.ExampleChanges) (*entity.Example, error)
	PartialUpdate(ctx context.Context, id uint, changes usecase.ExampleChanges) (*entity.Example, error)
	ToggleActive(ctx context.Context, id uint) (*entity.Example, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (usecase.Stats, error)
}

// Pagination は一覧のページサイズ設定です。
type Pagination struct {
	// PageSize はpage_size未指定時のページサイズです。0以下ならページングしません。
	PageSize int
	// MaxPageSize はpage_sizeで指定できる上限です。
	MaxPageSize int
}

// size はリクエストされたページサイズを上限内に収めます。不正な値はデフォルトになります。
func (p Pagination) size(requested *int) int {
	if requested == nil || *requested <= 0 {
		return p.PageSize
	}
	if p.MaxPageSize > 0 && *requested > p.MaxPageSize {
		return p.MaxPageSize
	}
	return *requested
}

// ExampleHandler はExampleリソースのHTTPリクエストを処理します。
type ExampleHandler struct {
	uc    ExampleUsecase
	log   logger.Logger
	pages Pagination
}

// NewExampleHandler はExampleHandlerの新しいインスタンスを生成します。
func NewExampleHandler(uc ExampleUsecase, log logger.Logger, pages Pagination) *ExampleHandler {
	return &ExampleHandler{uc: uc, log: log, pages: pages}
}

// List godoc
// @Summary List examples
// @Description Paginated list in the summary projection, newest first.
// @Tags examples
// @Produce json
// @Param is_active query string false "true (case-insensitive) for active items, anything else for inactive"
// @Param name query string false "case-insensitive substring of name"
// @Param page query int false "page number or 'last'"
// @Param page_size query int false "items per page"
// @Success 200 {object} api.ExamplePage
// @Failure 404 {object} api.ErrorDetail "Invalid page."
// @Router /examples/ [get]
func (h *ExampleHandler) List(c *gin.Context) {
	params, err := api.BindListExamplesParams(c.Request.URL.Query())
	if err != nil {
		h.fail(c, "list", err)
		return
	}

	req := usecase.PageRequest{Number: 1, Size: h.pages.size(params.PageSize)}
	if params.Page != nil {
		req.Number = *params.Page
	}

	res, err := h.uc.List(c.Request.Context(), filterFrom(params), req)
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPage(res, dto.RequestURL(c.Request)))
}

// Active godoc
// @Summary List active examples
// @Description Every active item matching the list filters, as a flat array.
// @Tags examples
// @Produce json
// @Param name query string false "case-insensitive substring of name"
// @Success 200 {array} api.ExampleSummary
// @Router /examples/active/ [get]
func (h *ExampleHandler) Active(c *gin.Context) {
	// page/page_sizeは使わないためフィルタのみバインドします
	params := api.BindExampleFilterParams(c.Request.URL.Query())

	items, err := h.uc.Active(c.Request.Context(), filterFrom(params))
	if err != nil {
		h.fail(c, "active", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaries(items))
}

// Retrieve godoc
// @Summary Retrieve an example
// @Tags examples
// @Produce json
// @Param id path int true "example id"
// @Success 200 {object} api.ExampleDetail
// @Failure 404 {object} api.ErrorDetail
// @Router /examples/{id}/ [get]
func (h *ExampleHandler) Retrieve(c *gin.Context) {
	id, err := api.BindExampleID(c.Param("id"))
	if err != nil {
		h.fail(c, "retrieve", err)
		return
	}

	e, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "retrieve", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDetail(e))
}

// Create godoc
// @Summary Create an example
// @Tags examples
// @Accept json
// @Produce json
// @Param body body api.ExampleWrite true "example"
// @Success 201 {object} api.ExampleDetail
// @Failure 400 {object} api.FieldErrors
// @Security BearerAuth
// @Router /examples/ [post]
func (h *ExampleHandler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, "create", dto.NewParseError(err))
		return
	}
	changes, err := dto.DecodeExampleChanges(body, true)
	if err != nil {
		h.fail(c, "create", err)
		return
	}

	e, err := h.uc.Create(c.Request.Context(), changes)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	h.log.Info("example created", logger.Uint("id", e.ID), logger.String("request_id", middleware.GetRequestID(c)))
	c.JSON(http.StatusCreated, dto.ToDetail(e))
}

// Update godoc
// @Summary Replace an example
// @Description name is required; omitted optional fields keep their values.
// @Tags examples
// @Accept json
// @Produce json
// @Param id path int true "example id"
// @Param body body api.ExampleWrite true "example"
// @Success 200 {object} api.ExampleDetail
// @Failure 400 {object} api.FieldErrors
// @Failure 404 {object} api.ErrorDetail
// @Security BearerAuth
// @Router /examples/{id}/ [put]
func (h *ExampleHandler) Update(c *gin.Context) {
	h.write(c, "update", true, h.uc.Update)
}

// PartialUpdate godoc
// @Summary Partially update an example
// @Description Only the fields present in the body are validated and written.
// @Tags examples
// @Accept json
// @Produce json
// @Param id path int true "example id"
// @Param body body api.ExampleWrite true "fields to change"
// @Success 200 {object} api.ExampleDetail
// @Failure 400 {object} api.FieldErrors
// @Failure 404 {object} api.ErrorDetail
// @Security BearerAuth
// @Router /examples/{id}/ [patch]
func (h *ExampleHandler) PartialUpdate(c *gin.Context) {
	h.write(c, "partial_update", false, h.uc.PartialUpdate)
}

// ToggleActive godoc
// @Summary Flip is_active
// @Tags examples
// @Produce json
// @Param id path int true "example id"
// @Success 200 {object} api.ExampleDetail
// @Failure 404 {object} api.ErrorDetail
// @Security BearerAuth
// @Router /examples/{id}/toggle_active/ [post]
func (h *ExampleHandler) ToggleActive(c *gin.Context) {
	id, err := api.BindExampleID(c.Param("id"))
	if err != nil {
		h.fail(c, "toggle_active", err)
		return
	}

	e, err := h.uc.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "toggle_active", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDetail(e))
}

// Delete godoc
// @Summary Delete an example
// @Tags examples
// @Param id path int true "example id"
// @Success 204
// @Failure 404 {object} api.ErrorDetail
// @Security BearerAuth
// @Router /examples/{id}/ [delete]
func (h *ExampleHandler) Delete(c *gin.Context) {
	id, err := api.BindExampleID(c.Param("id"))
	if err != nil {
		h.fail(c, "delete", err)
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	h.log.Info("example deleted", logger.Uint("id", id), logger.String("request_id", middleware.GetRequestID(c)))
	c.Status(http.StatusNoContent)
}

// Stats godoc
// @Summary Count examples
// @Description Totals over the whole table; query filters are ignored.
// @Tags examples
// @Produce json
// @Success 200 {object} api.ExampleStats
// @Router /examples/stats/ [get]
func (h *ExampleHandler) Stats(c *gin.Context) {
	s, err := h.uc.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStats(s))
}

type writeFunc func(ctx context.Context, id uint, changes usecase.ExampleChanges) (*entity.Example, error)

// write はPUT/PATCHの共通処理です。
// ボディが不正な場合でも、存在しないidには404を優先して返します。
func (h *ExampleHandler) write(c *gin.Context, op string, requireName bool, fn writeFunc) {
	ctx := c.Request.Context()

	id, err := api.BindExampleID(c.Param("id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, op, dto.NewParseError(err))
		return
	}
	changes, decodeErr := dto.DecodeExampleChanges(body, requireName)
	if decodeErr != nil {
		if _, err := h.uc.Get(ctx, id); err != nil {
			h.fail(c, op, err)
			return
		}
		h.fail(c, op, decodeErr)
		return
	}

	e, err := fn(ctx, id, changes)
	if err != nil {
		h.fail(c, op, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDetail(e))
}

// fail はエラーをHTTPレスポンスに変換します。
// 想定外のエラーは内容を公開せず500を返し、ログに記録します。
func (h *ExampleHandler) fail(c *gin.Context, op string, err error) {
	var (
		verr *domain.ValidationError
		perr *dto.ParseError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.FieldErrors(verr.Fields))
	case errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, api.ErrorDetail{Detail: perr.Error()})
	case errors.Is(err, domain.ErrExampleNotFound), errors.Is(err, api.ErrInvalidID):
		c.JSON(http.StatusNotFound, api.ErrorDetail{Detail: api.DetailNotFound})
	case errors.Is(err, domain.ErrInvalidPage), errors.Is(err, api.ErrInvalidPage):
		c.JSON(http.StatusNotFound, api.ErrorDetail{Detail: api.DetailInvalidPage})
	default:
		h.log.Error("example request failed",
			logger.String("op", op),
			logger.String("request_id", middleware.GetRequestID(c)),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorDetail{Detail: api.DetailServerError})
	}
}

func filterFrom(params api.ListExamplesParams) usecase.ListFilter {
	return usecase.ListFilter{
		IsActive: params.IsActiveFilter(),
		Name:     params.NameFilter(),
	}
}
