// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// Health は死活監視用の /healthz エンドポイントを処理します。
// GETはJSONボディ付きの200、HEADは200、OPTIONSは204を返します。
func Health(c *gin.Context) {
	// ヘルス応答は中間キャッシュに保存させない
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
