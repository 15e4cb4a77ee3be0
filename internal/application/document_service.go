package application

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"

	"ui-spec-web/internal/domain/services"
)

// ErrFileTooLarge 上传文件超过大小限制
var ErrFileTooLarge = errors.New("file too large")

// DocumentService 读取上传文件和本地文件中的文本
type DocumentService struct {
	maxSize int64
}

// NewDocumentService 创建文档应用服务实例
func NewDocumentService(maxSize int64) *DocumentService {
	return &DocumentService{maxSize: maxSize}
}

// ReadUpload 读取上传文件并提取文本，无法识别的内容返回空文本
func (s *DocumentService) ReadUpload(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxSize {
		return "", ErrFileTooLarge
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("无法打开上传文件: %w", err)
	}
	defer src.Close()

	data, err := s.readLimited(src)
	if err != nil {
		return "", err
	}
	return services.ExtractText(data, file.Header.Get("Content-Type")), nil
}

// ReadFile 读取本地文档，类型由扩展名推断
func (s *DocumentService) ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := s.readLimited(f)
	if err != nil {
		return "", err
	}
	return services.ExtractText(data, mime.TypeByExtension(filepath.Ext(path))), nil
}

func (s *DocumentService) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
