package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"ui-spec-web/internal/domain/models"
	"ui-spec-web/pkg/logger"
)

const (
	mimePDF   = "application/pdf"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeHTML  = "text/html"
	mimeOctet = "application/octet-stream"

	docxBodyEntry = "word/document.xml"
)

// ExtractText 从上传的文档中提取纯文本，任何错误都返回空字符串
func ExtractText(data []byte, contentType string) string {
	if len(data) == 0 {
		return ""
	}

	kind := baseMediaType(contentType)
	if kind == "" || kind == mimeOctet {
		kind = baseMediaType(mimetype.Detect(data).String())
	}

	var (
		text string
		err  error
	)
	switch kind {
	case mimePDF:
		text, err = extractPDF(data)
	case mimeDOCX:
		text, err = extractDOCX(data)
	case mimeHTML:
		text, err = htmltomarkdown.ConvertString(string(data))
	default:
		text = decodeUTF8(data)
	}
	if err != nil {
		logger.Warn("文档文本提取失败",
			zap.String("category", models.CategoryExtraction),
			zap.String("content_type", kind),
			zap.Error(err))
		return ""
	}

	logger.Debug("文档文本提取完成", zap.String("content_type", kind), zap.Int("chars", utf8.RuneCountInString(text)))
	return strings.TrimSpace(text)
}

func baseMediaType(contentType string) string {
	kind, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(kind))
}

// extractPDF 逐页读取文本，页之间用换行分隔
func extractPDF(data []byte) (text string, err error) {
	// pdf 库在损坏的文件上可能 panic
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("解析PDF失败: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("无法读取PDF文件: %w", err)
	}

	var pages []string
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}
		content, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Debug("跳过无法读取的PDF页", zap.Int("page", i), zap.Error(err))
			continue
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

// extractDOCX 读取 word/document.xml，每个段落一行
func extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("无法读取DOCX文件: %w", err)
	}

	for _, entry := range archive.File {
		if entry.Name != docxBodyEntry {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("无法打开 %s: %w", entry.Name, err)
		}
		defer rc.Close()
		return docxParagraphs(rc)
	}
	return "", fmt.Errorf("DOCX中缺少 %s", docxBodyEntry)
}

func docxParagraphs(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("解析DOCX内容失败: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteString("\t")
			case "br":
				current.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return strings.Join(paragraphs, "\n"), nil
}

// decodeUTF8 丢弃无效字节
func decodeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}
