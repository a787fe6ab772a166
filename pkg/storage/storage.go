package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/config"
)

// Uploader 对象存储上传接口
// 核心契约：upload(bytes) -> 可持久访问的公开 URL
type Uploader interface {
	Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// Client S3 兼容对象存储客户端（简历、头像）
type Client struct {
	mc        *minio.Client
	urlPrefix string
	logger    *zap.Logger
}

// NewClient 创建对象存储客户端
func NewClient(cfg *config.StorageConfig, logger *zap.Logger) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化对象存储失败: %w", err)
	}

	prefix := cfg.PublicURLPrefix
	if prefix == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		prefix = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	return &Client{
		mc:        mc,
		urlPrefix: strings.TrimRight(prefix, "/"),
		logger:    logger,
	}, nil
}

// Upload 上传对象并返回公开访问 URL
// URL 原样存储在所属记录上，后续不再重新推导
func (c *Client) Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := c.mc.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("上传对象失败: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", c.urlPrefix, bucket, objectName)
	c.logger.Debug("对象上传成功",
		zap.String("bucket", bucket),
		zap.String("object", objectName),
		zap.Int64("size", size),
	)
	return url, nil
}
