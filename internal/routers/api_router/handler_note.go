package api_router

import (
	"github.com/haierkeys/note-tag-service/internal/dto"
	"github.com/haierkeys/note-tag-service/pkg/app"
	"github.com/haierkeys/note-tag-service/pkg/code"
	apperrors "github.com/haierkeys/note-tag-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoteCreate 创建笔记
// @Router /api/note [post]
func (h *Handler) NoteCreate(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NotePostRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	note, err := h.App.NoteService.Create(c.Request.Context(), params.Title, params.Content)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessCreate.WithData(note))
}

// NoteUpdate 更新笔记标题或内容
// @Router /api/note [put]
func (h *Handler) NoteUpdate(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NotePostRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}
	if params.ID <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("id is required"))
		return
	}

	note, err := h.App.NoteService.Update(c.Request.Context(), params.ID, params.Title, params.Content)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessUpdate.WithData(note))
}

// NoteGet 按 ID 查询笔记
// @Router /api/note [get]
func (h *Handler) NoteGet(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NoteGetRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	note, err := h.App.NoteService.Get(c.Request.Context(), params.ID)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// NoteList 分页查询笔记列表
// @Router /api/notes [get]
func (h *Handler) NoteList(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NoteListRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	notes, count, err := h.App.NoteService.List(c.Request.Context(),
		app.GetPage(c), app.GetPageSize(c), params.IsTrashed)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponseList(code.Success, notes, int(count))
}

// NoteTrash 将笔记移入回收站
// 回收站中的笔记保留标签关联，但不计入标签计数
// @Router /api/note/trash [put]
func (h *Handler) NoteTrash(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NoteGetRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if err := h.App.NoteService.Trash(c.Request.Context(), params.ID); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessUpdate)
}

// NoteRestore 将笔记移出回收站
// @Router /api/note/restore [put]
func (h *Handler) NoteRestore(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NoteGetRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if err := h.App.NoteService.Restore(c.Request.Context(), params.ID); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessUpdate)
}

// NotePurge 彻底删除笔记并清除其全部标签关联
// @Router /api/note [delete]
func (h *Handler) NotePurge(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NoteGetRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if err := h.App.NoteService.Purge(c.Request.Context(), params.ID); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessDelete)
}

// NoteTags 查询笔记携带的全部标签
// @Router /api/note/tags [get]
func (h *Handler) NoteTags(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NoteGetRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	tags, err := h.App.NoteService.Tags(c.Request.Context(), params.ID)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(tags))
}
