package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailops/backoffice/internal/server/middlewares"
)

// GetTemporaryUploadFolder hands out a fresh folder name for a multi-file
// upload session.
// (GET /stores/temporary-folder)
func (h *Handler) GetTemporaryUploadFolder(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"folder": h.uploads.NewTemporaryFolder()})
}

// UploadImportFiles accepts multipart spreadsheet uploads into the temporary
// folder named by the X-Folder header and reports the stored names back.
// (POST /stores/import/upload)
func (h *Handler) UploadImportFiles(c *gin.Context) {
	temporaryFolder := c.GetHeader("X-Folder")

	form, err := c.MultipartForm()
	if err != nil || len(form.File) == 0 {
		c.JSON(http.StatusPreconditionFailed, gin.H{})
		return
	}

	uploadedFiles := make([]gin.H, 0)
	for _, files := range form.File {
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
				return
			}

			tempName, err := h.uploads.StoreTempFile(temporaryFolder, file.Filename, src)
			src.Close()
			if err != nil {
				zap.S().Named("uploads_handler").Errorw("failed to store upload", "file", file.Filename, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded file"})
				return
			}

			uploadedFiles = append(uploadedFiles, gin.H{
				"size":       file.Size,
				"type":       file.Header.Get("Content-Type"),
				"name":       file.Filename,
				"tempName":   tempName,
				"tempFolder": temporaryFolder,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"uploadedFiles": uploadedFiles})
}

// ProcessImport runs a previously uploaded spreadsheet through the store
// importer. A clean run answers with a success alert; failed rows come back
// as an error workbook download.
// (POST /stores/import/process)
func (h *Handler) ProcessImport(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil || !h.storeVM.HasAccess(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	folder := formValue(c, "folder")
	fileName := formValue(c, "fileName")
	if folder == "" || fileName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder and fileName are required"})
		return
	}

	result, err := h.importer.ImportStores(c.Request.Context(), user, h.uploads.TempFilePath(folder, fileName))
	if err != nil {
		zap.S().Named("imports_handler").Errorw("failed to process import", "folder", folder, "file", fileName, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to process import file"})
		return
	}

	if result.Failed == 0 {
		c.JSON(http.StatusCreated, gin.H{
			"alerts": []gin.H{{"type": "success", "text": "Import completed successfully"}},
		})
		return
	}

	writeWorkbook(c, result.ErrorReport, "Stores - with errors")
}
