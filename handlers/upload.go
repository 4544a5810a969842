package handlers

import (
	"fmt"
	"io"
	"strings"

	"dine-on-time-api/images"
	"dine-on-time-api/services"

	"github.com/gin-gonic/gin"
)

// imageFromForm returns the "image" file of a multipart request, or nil
// when the request is not multipart or carries no file. Files larger than
// images.MaxSize are read one byte past the limit so the uploader rejects
// them.
func imageFromForm(c *gin.Context) (*services.ImageFile, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	header, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded image: %w", err)
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, images.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded image: %w", err)
	}
	return &services.ImageFile{Body: body, ContentType: header.Header.Get("Content-Type")}, nil
}
