package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxUploadFiles = 10

// UploadHandler stores uploaded images under Dir with uuid file names and
// returns their public /uploads paths.
type UploadHandler struct {
	Dir string
}

func (h *UploadHandler) save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	path, err := h.save(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Image uploaded successfully",
		"imagePath": path,
	})
}

func (h *UploadHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No files uploaded")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No files uploaded")
	}
	if len(files) > maxUploadFiles {
		files = files[:maxUploadFiles]
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := h.save(file)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		paths = append(paths, path)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Images uploaded successfully",
		"imagePaths": paths,
	})
}
