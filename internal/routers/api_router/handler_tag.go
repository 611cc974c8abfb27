package api_router

import (
	"github.com/haierkeys/note-tag-service/internal/domain"
	"github.com/haierkeys/note-tag-service/internal/dto"
	"github.com/haierkeys/note-tag-service/pkg/app"
	"github.com/haierkeys/note-tag-service/pkg/code"
	apperrors "github.com/haierkeys/note-tag-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// TagCreate 创建标签
// @Router /api/tag [post]
func (h *Handler) TagCreate(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.TagPostRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	tag, err := h.App.TagService.Create(c.Request.Context(), params.Name, params.Color)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessCreate.WithData(tag))
}

// TagUpdate 更新标签名称或颜色
// @Router /api/tag [put]
func (h *Handler) TagUpdate(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.TagPostRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if params.ID <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("id is required"))
		return
	}

	var tag *dto.TagDTO
	var err error
	if params.Name != "" {
		tag, err = h.App.TagService.Rename(c.Request.Context(), params.ID, params.Name)
		if err != nil {
			apperrors.ErrorResponse(c, err)
			return
		}
	}
	if params.Color != "" {
		tag, err = h.App.TagService.SetColor(c.Request.Context(), params.ID, params.Color)
		if err != nil {
			apperrors.ErrorResponse(c, err)
			return
		}
	}
	if tag == nil {
		tag, err = h.App.TagService.Get(c.Request.Context(), params.ID)
		if err != nil {
			apperrors.ErrorResponse(c, err)
			return
		}
	}
	response.ToResponse(code.SuccessUpdate.WithData(tag))
}

// TagGet 按 ID 查询标签
// @Router /api/tag [get]
func (h *Handler) TagGet(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.TagGetRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	tag, err := h.App.TagService.Get(c.Request.Context(), params.ID)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(tag))
}

// TagDelete 删除标签并清理全部关联
// @Router /api/tag [delete]
func (h *Handler) TagDelete(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.TagGetRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if err := h.App.TagService.Delete(c.Request.Context(), params.ID); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessDelete)
}

// TagList 标签列表，含实时笔记计数，按创建顺序返回
// @Router /api/tags [get]
func (h *Handler) TagList(c *gin.Context) {
	response := app.NewResponse(c)

	tags, count, err := h.App.TagService.List(c.Request.Context(), app.GetPage(c), app.GetPageSize(c))
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponseList(code.Success, tags, int(count))
}

// TagCount 查询单个标签的实时笔记计数
// @Router /api/tag/count [get]
func (h *Handler) TagCount(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.TagGetRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	count, err := h.App.TagService.NoteCount(c.Request.Context(), params.ID)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(&dto.TagCountDTO{
		ID:        params.ID,
		NoteCount: count,
	}))
}

// TagAssociate 建立标签与笔记的关联，重复关联为幂等
// @Router /api/tag/associate [post]
func (h *Handler) TagAssociate(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.TagAssociateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if err := h.App.TagService.Associate(c.Request.Context(), params.TagID, params.NoteID); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success)
}

// TagDisassociate 解除标签与笔记的关联，重复解除为幂等
// @Router /api/tag/disassociate [post]
func (h *Handler) TagDisassociate(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.TagAssociateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if err := h.App.TagService.Disassociate(c.Request.Context(), params.TagID, params.NoteID); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success)
}

// TagNotes 查询标签关联的未删除笔记
// @Router /api/tag/notes [get]
func (h *Handler) TagNotes(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.TagGetRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	notes, err := h.App.TagService.Notes(c.Request.Context(), params.ID)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(notes))
}

// TagGetOrCreate 按名称获取标签，不存在时创建（默认色）
// @Router /api/tag/by-name [post]
func (h *Handler) TagGetOrCreate(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.TagNameRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	tag, err := h.App.TagService.GetOrCreateByName(c.Request.Context(), params.Name)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(tag))
}

// TagPalette 返回可用的标签调色盘
// @Router /api/tag/palette [get]
func (h *Handler) TagPalette(c *gin.Context) {
	response := app.NewResponse(c)

	colors := domain.Palette()
	names := make([]string, 0, len(colors))
	for _, color := range colors {
		names = append(names, string(color))
	}
	response.ToResponse(code.Success.WithData(map[string]interface{}{
		"colors":  names,
		"default": string(domain.DefaultColor),
	}))
}
