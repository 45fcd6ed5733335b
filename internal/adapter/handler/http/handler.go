package http

import (
	"encoding/base64"
	"strconv"

	"cups-server/internal/usecase"
	errs "cups-server/pkg/errors"

	"github.com/labstack/echo/v4"
)

// imagePayload is the wire form of an uploaded image: base64 data plus its
// content type.
type imagePayload struct {
	Data        string `json:"data" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

func (p imagePayload) decode() (usecase.ImageInput, error) {
	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return usecase.ImageInput{}, errs.Validation("image data must be base64 encoded")
	}
	if len(data) == 0 {
		return usecase.ImageInput{}, errs.Validation("image data is empty")
	}
	return usecase.ImageInput{Data: data, ContentType: p.ContentType}, nil
}

func decodeImages(payloads []imagePayload) ([]usecase.ImageInput, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	images := make([]usecase.ImageInput, 0, len(payloads))
	for _, p := range payloads {
		img, err := p.decode()
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Validation("invalid " + name + " parameter")
	}
	return id, nil
}
