package util

import (
	"bytes"
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/util/log"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	client     *HttpClient
	clientOnce sync.Once
)

// HttpClient 是一个简单的 HTTP 客户端, 请求会透传链路信息
type HttpClient struct {
	Client *http.Client
}

// NewHttpClient 创建一个新的 HttpClient 实例
func NewHttpClient() *HttpClient {
	return &HttpClient{
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func GetHttpClient() *HttpClient {
	clientOnce.Do(func() {
		client = NewHttpClient()
	})
	return client
}

// SendRequest 发送 HTTP 请求
func (c *HttpClient) SendRequest(ctx context.Context, method, url string, headers map[string]string, body any) (map[string]any, error) {
	// 将 body 序列化为 JSON
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("请求体序列化失败: %w", err)
	}

	// 创建新的请求
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	// 设置请求头
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	// 发送请求
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.CtxError(ctx, "关闭请求失败: %v", closeErr)
		}
	}()

	// 读取响应
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	// 检查响应状态码
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d, response body: %s", resp.StatusCode, responseBody)
	}

	// 反序列化响应体
	var responseMap map[string]any
	if err := json.Unmarshal(responseBody, &responseMap); err != nil {
		return nil, fmt.Errorf("反序列化响应失败: %w", err)
	}

	return responseMap, nil
}

// SignIn 在中台校验账号密码
func (c *HttpClient) SignIn(ctx context.Context, platformURL, authID, password string) (map[string]any, error) {
	body := map[string]any{
		"authType": "password",
		"authId":   authID,
		"password": password,
	}

	header := map[string]string{
		"Content-Type": consts.ContentTypeJson,
		"Charset":      consts.CharSetUTF8,
	}

	// 如果是测试环境则向测试环境中台发送请求
	if conf := config.GetConfig(); conf != nil && conf.State == "test" {
		header["X-Xh-Env"] = "test"
	}

	return c.SendRequest(ctx, consts.Post, platformURL+"/sts/sign_in", header, body)
}
