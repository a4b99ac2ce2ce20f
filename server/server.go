package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ByLCY/medreport/logger"
	"github.com/ByLCY/medreport/report"
)

// 报告响应头。
const (
	HeaderReportID        = "X-Report-ID"
	HeaderReportPages     = "X-Report-Pages"
	HeaderNarrativeSource = "X-Narrative-Source"
)

// Reports 是 HTTP 层依赖的报告能力，通常是 *report.Service。
type Reports interface {
	Generate(ctx context.Context, req report.Request) (*report.Result, error)
	Layout(ctx context.Context, req report.Request) (*report.LayoutResult, error)
}

// Options 配置 HTTP 服务。
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	BodyLimit       string
	Logger          logrus.FieldLogger
}

// Server 暴露报告生成接口。
type Server struct {
	e       *echo.Echo
	reports Reports
	opts    Options
	log     logrus.FieldLogger
}

// New 创建服务并注册路由。
func New(reports Reports, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.BodyLimit == "" {
		opts.BodyLimit = "2M"
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(Recovery(log))
	e.Use(RequestID())
	e.Use(Logger(log))
	e.Use(echomw.BodyLimit(opts.BodyLimit))

	s := &Server{e: e, reports: reports, opts: opts, log: log}
	e.GET("/health", s.health)
	v1 := e.Group("/api/v1")
	v1.POST("/reports/narrative", s.generate)
	v1.POST("/reports/narrative/layout", s.layout)
	return s
}

// Handler 返回 http.Handler，便于测试或挂载到其他服务。
func (s *Server) Handler() http.Handler { return s.e }

// Start 监听地址直到 ctx 结束，随后优雅关闭。
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.opts.Addr).Info("starting server")
		if err := s.e.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP 服务异常退出: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭 HTTP 服务失败: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) generate(c echo.Context) error {
	var req report.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	res, err := s.reports.Generate(c.Request().Context(), req)
	if err != nil {
		return fmt.Errorf("生成报告失败: %w", err)
	}
	h := c.Response().Header()
	h.Set(HeaderReportID, res.ID)
	h.Set(HeaderReportPages, strconv.Itoa(res.Pages))
	h.Set(HeaderNarrativeSource, string(res.Source))
	h.Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename="narrative-%s.pdf"`, res.ID))
	return c.Blob(http.StatusOK, "application/pdf", res.PDF)
}

func (s *Server) layout(c echo.Context) error {
	var req report.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	res, err := s.reports.Layout(c.Request().Context(), req)
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}
	c.Response().Header().Set(HeaderReportID, res.ID)
	c.Response().Header().Set(HeaderNarrativeSource, string(res.Source))
	return c.JSON(http.StatusOK, res)
}
