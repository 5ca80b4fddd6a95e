package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部カタログAPIの呼び出しに使うHTTPクライアントを作成します。
//
// http.DefaultClientはタイムアウトを持たないため使いません。Transportを明示して
// TCP接続とTLSハンドシェイクに上限を与え、アイドル接続はプールして再利用します。
// リクエスト全体のタイムアウトは呼び出し元がtimeoutで指定します。
// Proxyは環境変数（HTTP_PROXYなど）に従います。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
