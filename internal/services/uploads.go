package services

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	tempUploadsDir    = "temp-uploads"
	uploadNameLength  = 10
	uploadNameLetters = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// UploadService stages uploaded files under a per-client temporary folder
// until a follow-up request processes them.
type UploadService struct {
	root   string
	logger *zap.SugaredLogger
}

func NewUploadService(root string) *UploadService {
	return &UploadService{
		root:   root,
		logger: zap.S().Named("services.uploads"),
	}
}

// NewTemporaryFolder returns a fresh folder name for a client upload
// session.
func (s *UploadService) NewTemporaryFolder() string {
	return uuid.NewString()
}

// StoreTempFile writes an upload into the given temporary folder under a
// random name that keeps the original extension, and returns that name.
func (s *UploadService) StoreTempFile(folder, originalName string, src io.Reader) (string, error) {
	dir := filepath.Join(s.root, tempUploadsDir, filepath.Base(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload folder: %w", err)
	}

	name, err := randomName(uploadNameLength)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	name += ext

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	s.logger.Debugw("stored upload", "folder", folder, "name", name)
	return name, nil
}

// TempFilePath resolves a previously stored upload. Folder and file names
// are reduced to their base component so clients cannot traverse out of
// the upload root.
func (s *UploadService) TempFilePath(folder, fileName string) string {
	return filepath.Join(s.root, tempUploadsDir, filepath.Base(folder), filepath.Base(fileName))
}

// PurgeTempFolder removes a temporary folder and everything in it.
func (s *UploadService) PurgeTempFolder(folder string) error {
	return os.RemoveAll(filepath.Join(s.root, tempUploadsDir, filepath.Base(folder)))
}

func randomName(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating file name: %w", err)
	}
	for i, b := range buf {
		buf[i] = uploadNameLetters[int(b)%len(uploadNameLetters)]
	}
	return string(buf), nil
}
