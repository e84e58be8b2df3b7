// Package imagesource 读取待编辑的图片，支持 data URL、裸 base64 与 http(s) 地址
package imagesource

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"k8s.io/klog/v2"
)

// MaxImageBytes 上游编辑接口限制单张图片 4MB
const MaxImageBytes = 4 << 20

var ErrNotImage = errors.New("source is not an image")

// Loader 按来源读取图片字节并校验类型
type Loader struct {
	client *http.Client
}

func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{client: &http.Client{Timeout: timeout}}
}

// Load 读取图片，返回字节与检测到的 MIME 类型
func (l *Loader) Load(ctx context.Context, source string) ([]byte, string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, "", errors.New("image source is empty")
	}

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(source, "data:"):
		data, err = decodeDataURL(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		data, err = l.fetch(ctx, source)
	default:
		data, err = base64.StdEncoding.DecodeString(source)
		if err != nil {
			err = fmt.Errorf("decode base64 image: %w", err)
		}
	}
	if err != nil {
		return nil, "", err
	}
	if len(data) > MaxImageBytes {
		return nil, "", fmt.Errorf("image too large: %d bytes", len(data))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, "", fmt.Errorf("%w: %s", ErrNotImage, mtype.String())
	}
	klog.V(6).Infof("[ImageSource] 图片读取完成: size=%d, mime=%s", len(data), mtype.String())
	return data, mtype.String(), nil
}

func decodeDataURL(source string) ([]byte, error) {
	header, payload, ok := strings.Cut(source, ",")
	if !ok {
		return nil, errors.New("malformed data url")
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, errors.New("data url is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		klog.Errorf("[ImageSource] 下载图片失败: %v", err)
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return data, nil
}
