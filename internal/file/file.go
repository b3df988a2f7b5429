package file

import (
	"bytes"
	"context"
	"errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrUploaderDisabled = errors.New("file uploader is not configured")

const kycFolder = "kyc"

type FileUploader struct {
	cld *cloudinary.Cloudinary
}

// New returns an uploader for the given Cloudinary account.
// Empty credentials give a disabled uploader whose uploads fail with ErrUploaderDisabled.
func New(cloudName, apiKey, apiSecret string) (*FileUploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return &FileUploader{}, nil
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}

	return &FileUploader{cld: cld}, nil
}

func (f *FileUploader) Enabled() bool {
	return f != nil && f.cld != nil
}

// UploadBytes stores data under the kyc folder as publicID and returns its secure URL.
func (f *FileUploader) UploadBytes(ctx context.Context, publicID string, data []byte) (string, error) {
	if !f.Enabled() {
		return "", ErrUploaderDisabled
	}

	uploadResult, err := f.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		Folder:       kycFolder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}

	if uploadResult.Error.Message != "" {
		return "", errors.New(uploadResult.Error.Message)
	}

	return uploadResult.SecureURL, nil
}
