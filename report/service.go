package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ByLCY/medreport/layout"
	"github.com/ByLCY/medreport/logger"
	"github.com/ByLCY/medreport/renderer"
	"github.com/ByLCY/medreport/upstream"
)

// Source 标记叙述的来源。
type Source string

const (
	SourceProvided Source = "provided"
	SourceUpstream Source = "upstream"
	SourceFallback Source = "fallback"
)

// Fetcher 获取 AI 生成的叙述，通常是 *upstream.Client。
type Fetcher interface {
	FetchNarrative(ctx context.Context, patient upstream.Patient, visits []upstream.Visit) (string, error)
}

// Request 是一次报告生成请求。Narrative 为 nil 时向上游获取；
// 不为 nil 时原样使用，空字符串会得到占位提示。
type Request struct {
	Patient   upstream.Patient `json:"patient"`
	Visits    []upstream.Visit `json:"visits"`
	Narrative *string          `json:"narrative,omitempty"`
}

// Result 是生成的 PDF 报告。
type Result struct {
	ID     string
	PDF    []byte
	Pages  int
	Source Source
}

// LayoutResult 是排版指令的调试输出。
type LayoutResult struct {
	ID       string           `json:"id"`
	Source   Source           `json:"source"`
	Pages    int              `json:"pages"`
	Commands []layout.Command `json:"commands"`
}

// Options 配置报告服务。
type Options struct {
	Engine      *layout.Engine
	Fetcher     Fetcher
	NewRenderer renderer.Factory
	Logger      logrus.FieldLogger
	Title       string
	Author      string
}

// Service 串联叙述获取、排版与 PDF 输出。Service 可以被多个请求并发使用。
type Service struct {
	engine      *layout.Engine
	fetcher     Fetcher
	newRenderer renderer.Factory
	log         logrus.FieldLogger
	title       string
	author      string
}

// NewService 创建报告服务，NewRenderer 不能为空。
func NewService(opts Options) (*Service, error) {
	if opts.NewRenderer == nil {
		return nil, fmt.Errorf("renderer 工厂不能为空")
	}
	engine := opts.Engine
	if engine == nil {
		engine = layout.NewEngine(layout.DefaultConfig())
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	title := opts.Title
	if title == "" {
		title = "Comprehensive Medical Narrative"
	}
	return &Service{
		engine:      engine,
		fetcher:     opts.Fetcher,
		newRenderer: opts.NewRenderer,
		log:         log,
		title:       title,
		author:      opts.Author,
	}, nil
}

// Generate 生成 PDF 报告。
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	id := uuid.NewString()
	start := time.Now()
	log := s.log.WithField("report", id)

	text, source := s.narrative(ctx, log, req)
	r, err := s.newRenderer(s.meta(req.Patient))
	if err != nil {
		return nil, fmt.Errorf("创建渲染器失败: %w", err)
	}
	s.engine.Render(text, r)
	pdf, err := r.Finish()
	if err != nil {
		return nil, fmt.Errorf("生成 PDF 失败: %w", err)
	}
	pages, err := renderer.PageCount(pdf)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"source":   source,
		"pages":    pages,
		"bytes":    len(pdf),
		"duration": time.Since(start).String(),
	}).Info("报告已生成")
	return &Result{ID: id, PDF: pdf, Pages: pages, Source: source}, nil
}

// Layout 只排版不输出 PDF，返回记录的绘制指令。测量仍使用真实的渲染器。
func (s *Service) Layout(ctx context.Context, req Request) (*LayoutResult, error) {
	id := uuid.NewString()
	log := s.log.WithField("report", id)

	text, source := s.narrative(ctx, log, req)
	r, err := s.newRenderer(s.meta(req.Patient))
	if err != nil {
		return nil, fmt.Errorf("创建渲染器失败: %w", err)
	}
	rec := layout.NewRecorder(r)
	s.engine.Render(text, rec)

	log.WithFields(logrus.Fields{"source": source, "commands": len(rec.Commands())}).Debug("排版完成")
	return &LayoutResult{ID: id, Source: source, Pages: rec.PageCount(), Commands: rec.Commands()}, nil
}

// narrative 决定使用哪份叙述。上游失败不会中断报告，而是退回到根据资料生成的叙述。
func (s *Service) narrative(ctx context.Context, log logrus.FieldLogger, req Request) (string, Source) {
	if req.Narrative != nil {
		return *req.Narrative, SourceProvided
	}
	if s.fetcher != nil {
		text, err := s.fetcher.FetchNarrative(ctx, req.Patient, req.Visits)
		if err == nil {
			return text, SourceUpstream
		}
		log.WithError(err).Warn("获取上游叙述失败，使用兜底叙述")
	}
	return FallbackNarrative(req.Patient, req.Visits), SourceFallback
}

func (s *Service) meta(p upstream.Patient) renderer.Meta {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	m := renderer.Meta{Title: s.title, Author: s.author, Creator: "medreport"}
	if name != "" {
		m.Subject = "Medical narrative for " + name
	}
	return m
}
