package utils

import (
	"context"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ImageUploader stores item photos on Cloudinary and returns their HTTPS
// URLs.
type ImageUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewImageUploader(cloudinaryURL, folder string) (*ImageUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &ImageUploader{cld: cld, folder: folder}, nil
}

func (u *ImageUploader) Upload(ctx context.Context, file multipart.File) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: uuid.New().String(),
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
