package main

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/LJTian/NoticeHub/internal/api"
	"github.com/LJTian/NoticeHub/internal/app"
	"github.com/LJTian/NoticeHub/internal/config"
	"github.com/LJTian/NoticeHub/internal/scheduler"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	a, err := app.Build(cfg)
	if err != nil {
		log.Fatalf("init app failed: %v", err)
	}
	defer a.Close()

	// 配置了 PREWARM_CRON 时定时预热缓存
	if cfg.PrewarmCron != "" {
		s, err := scheduler.New(cfg.PrewarmCron, a.Catalog, a.Aggregator, a.Deadline)
		if err != nil {
			log.Fatalf("init prewarm scheduler failed: %v", err)
		}
		s.Start()
		defer s.Stop()
	}

	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(a.Catalog, a.Fetcher, a.Aggregator, a.Deadline)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// basicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// 仅当配置了 APP_BASIC_USER / APP_BASIC_PASS 时启用。
// /health 不做认证，便于健康检查。
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
