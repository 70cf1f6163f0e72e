package handlers

import (
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService   *services.UploadService
	categoryService *services.CategoryService
}

func NewUploadHandler(
	base *BaseHandler,
	uploadService *services.UploadService,
	categoryService *services.CategoryService,
) *UploadHandler {
	return &UploadHandler{
		BaseHandler:     base,
		uploadService:   uploadService,
		categoryService: categoryService,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.POST("", h.Upload)
		files.GET("/:fileId", h.Download)
		files.DELETE("/:fileId", h.Delete)
	}

	r.GET("/categories", h.ListCategories)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file field is required"))
		return
	}

	usage := c.PostForm("usage")
	if usage == "" {
		usage = "attachment"
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer f.Close()

	resp, err := h.uploadService.Save(
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		usage,
		fileHeader.Size,
		f,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *UploadHandler) Download(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	rc, upload, err := h.uploadService.Open(c.Param("fileId"), userID, models.UserRole(h.UserRole(c)))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", "inline; filename=\""+upload.FileName+"\"")
	c.DataFromReader(200, upload.Size, upload.ContentType, rc, nil)
}

func (h *UploadHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.Delete(c.Param("fileId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *UploadHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, categories)
}
