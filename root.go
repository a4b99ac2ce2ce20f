package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ByLCY/medreport/config"
	"github.com/ByLCY/medreport/layout"
	"github.com/ByLCY/medreport/logger"
	"github.com/ByLCY/medreport/renderer"
	canvasrenderer "github.com/ByLCY/medreport/renderer/canvas"
	"github.com/ByLCY/medreport/report"
	"github.com/ByLCY/medreport/upstream"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "medreport",
	Short: "将 AI 生成的临床叙述排版为分页 PDF",
	Long: `medreport 解析带有 **Title:** 章节标记的临床叙述，识别列表与段落，
并按页面高度手动分页输出 PDF。

叙述可以直接提供，也可以从上游 AI 服务获取；上游不可用时根据患者资料生成兜底叙述。`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件（默认 ./medreport.yaml）")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别，覆盖配置中的 log.level")

	rootCmd.AddCommand(renderCmd, serveCmd)
}

// app 汇总命令共用的依赖。
type app struct {
	cfg *config.Config
	log *logrus.Logger
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	return &app{cfg: cfg, log: logger.New(level, cmd.ErrOrStderr())}, nil
}

// engine 读取主题（如果配置了）并创建排版引擎。
func (a *app) engine(themePath string) (*layout.Engine, layout.Config, error) {
	if themePath == "" {
		themePath = a.cfg.Report.Theme
	}
	cfg := layout.DefaultConfig()
	if themePath != "" {
		var err error
		cfg, err = layout.LoadTheme(themePath, cfg)
		if err != nil {
			return nil, layout.Config{}, err
		}
		a.log.WithField("theme", themePath).Debug("已加载主题")
	}
	return layout.NewEngine(cfg), cfg, nil
}

// fetcher 在配置了上游地址时返回客户端，否则返回 nil（使用兜底叙述）。
func (a *app) fetcher() (report.Fetcher, error) {
	u := a.cfg.Upstream
	if u.BaseURL == "" {
		return nil, nil
	}
	client, err := upstream.New(upstream.Options{
		BaseURL:    u.BaseURL,
		Timeout:    u.Timeout,
		Attempts:   u.Attempts,
		RetryDelay: u.RetryDelay,
		RPS:        u.RPS,
		Burst:      u.Burst,
		Logger:     a.log.WithField("component", "upstream"),
	})
	if err != nil {
		return nil, fmt.Errorf("创建上游客户端失败: %w", err)
	}
	return client, nil
}

func (a *app) service(engine *layout.Engine, factory renderer.Factory) (*report.Service, error) {
	fetcher, err := a.fetcher()
	if err != nil {
		return nil, err
	}
	if factory == nil {
		factory = canvasrenderer.NewFactory(canvasrenderer.Options{})
	}
	return report.NewService(report.Options{
		Engine:      engine,
		Fetcher:     fetcher,
		NewRenderer: factory,
		Logger:      a.log.WithField("component", "report"),
		Title:       a.cfg.Report.Title,
		Author:      a.cfg.Report.Author,
	})
}
