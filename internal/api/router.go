package api

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/LJTian/NoticeHub/internal/collector"
	"github.com/LJTian/NoticeHub/internal/sources"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// GroupFetcher 在总时限内抓取一组公告板
type GroupFetcher interface {
	FetchGroup(ctx context.Context, srcs []collector.Source, deadline time.Duration) []collector.Notice
}

type Server struct {
	catalog  *sources.Catalog
	fetcher  collector.Fetcher
	groups   GroupFetcher
	deadline time.Duration
}

func NewServer(catalog *sources.Catalog, fetcher collector.Fetcher, groups GroupFetcher, deadline time.Duration) *Server {
	return &Server{
		catalog:  catalog,
		fetcher:  fetcher,
		groups:   groups,
		deadline: deadline,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.GET("/", s.index)
	r.GET("/health", s.health)
	r.GET("/fetch", s.fetch)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/groups", s.listGroups)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Groups": s.catalog.Groups()})
}

func (s *Server) listGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": s.catalog.Groups()})
}

func (s *Server) fetch(c *gin.Context) {
	group := c.Query("group")
	sub := c.Query("sub")

	res, err := s.catalog.Resolve(group, sub)
	if err != nil {
		if errors.Is(err, sources.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"items": []collector.Notice{}, "error": "source not found"})
			return
		}
		log.Printf("resolve group=%q sub=%q error: %v", group, sub, err)
		c.JSON(http.StatusInternalServerError, gin.H{"items": []collector.Notice{}, "error": "internal error"})
		return
	}

	ctx := c.Request.Context()
	var items []collector.Notice
	switch {
	case res.Single != nil:
		items = s.fetcher.FetchOne(ctx, *res.Single)
	case len(res.Group) > 0:
		items = s.groups.FetchGroup(ctx, res.Group, s.deadline)
	}
	if items == nil {
		items = []collector.Notice{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
