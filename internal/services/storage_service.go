package services

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxUploadSize caps a single image upload.
const MaxUploadSize = 5 << 20

const DefaultUploadFolder = "gallery"

var uploadFolders = map[string]bool{
	"services": true,
	"projects": true,
	"gallery":  true,
	"videos":   true,
	"company":  true,
	"banner":   true,
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadResult locates a stored file.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// StorageService keeps uploaded images on local disk and hands out URLs
// under baseURL.
type StorageService struct {
	baseDir string
	baseURL string
}

func NewStorageService(baseDir, baseURL string) *StorageService {
	return &StorageService{baseDir: baseDir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// BaseDir is the directory uploads are written to.
func (s *StorageService) BaseDir() string {
	return s.baseDir
}

// ValidFolder reports whether folder is an accepted upload destination.
func ValidFolder(folder string) bool {
	return uploadFolders[folder]
}

// Upload sniffs data, rejects anything that is not a JPEG, PNG or WebP
// image up to 5MB, and writes it under folder.
func (s *StorageService) Upload(data []byte, folder string) (*UploadResult, error) {
	if folder == "" {
		folder = DefaultUploadFolder
	}
	if !ValidFolder(folder) {
		return nil, ErrInvalidFolder
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		return nil, ErrUnsupportedMediaType
	}

	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	publicID := path.Join(folder, name)
	return &UploadResult{URL: s.baseURL + "/" + publicID, PublicID: publicID}, nil
}

// Delete removes a previously uploaded file. Missing files are not an error.
func (s *StorageService) Delete(publicID string) error {
	folder, name := path.Split(path.Clean("/" + publicID))
	folder = strings.Trim(folder, "/")
	if !ValidFolder(folder) || name == "" {
		return ErrInvalidFolder
	}
	err := os.Remove(filepath.Join(s.baseDir, folder, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
