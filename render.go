package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ByLCY/medreport/layout"
	"github.com/ByLCY/medreport/renderer"
	canvasrenderer "github.com/ByLCY/medreport/renderer/canvas"
	"github.com/ByLCY/medreport/report"
)

var (
	renderIn      string
	renderOut     string
	renderTheme   string
	renderDebug   string
	renderPatient string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "将叙述渲染为 PDF 文件",
	Long: `将叙述渲染为 PDF 文件。

--in 指定叙述文本文件（"-" 表示标准输入）。未指定时根据 --patient 中的患者资料
向上游获取叙述，上游不可用时生成兜底叙述。

Examples:
  medreport render --in narrative.txt --out report.pdf
  medreport render --patient patient.json --out report.pdf --debug layout.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return runRender(cmd, a)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderIn, "in", "", "叙述文本文件，- 表示标准输入")
	renderCmd.Flags().StringVar(&renderOut, "out", "output/narrative.pdf", "PDF 输出路径")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "主题文件，覆盖配置中的 report.theme")
	renderCmd.Flags().StringVar(&renderDebug, "debug", "", "排版调试 JSON 输出路径")
	renderCmd.Flags().StringVar(&renderPatient, "patient", "", `患者资料 JSON：{"patient": {...}, "visits": [...]}`)
}

// recording 在真实渲染器外包一层 Recorder，用于输出调试 JSON。
type recording struct {
	*layout.Recorder
	next renderer.Renderer
}

func (r *recording) Finish() ([]byte, error) { return r.next.Finish() }

func runRender(cmd *cobra.Command, a *app) error {
	req, err := readRequest(cmd.InOrStdin())
	if err != nil {
		return err
	}

	engine, layoutCfg, err := a.engine(renderTheme)
	if err != nil {
		return err
	}

	var rec *layout.Recorder
	factory := canvasrenderer.NewFactory(canvasrenderer.Options{})
	if renderDebug != "" {
		base := factory
		factory = func(meta renderer.Meta) (renderer.Renderer, error) {
			next, err := base(meta)
			if err != nil {
				return nil, err
			}
			rec = layout.NewRecorder(next)
			return &recording{Recorder: rec, next: next}, nil
		}
	}

	svc, err := a.service(engine, factory)
	if err != nil {
		return err
	}
	res, err := svc.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if err := writeFile(renderOut, res.PDF); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	if renderDebug != "" {
		if err := os.MkdirAll(filepath.Dir(renderDebug), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(rec, layoutCfg, renderDebug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	a.log.WithFields(logrus.Fields{
		"out":    renderOut,
		"pages":  res.Pages,
		"source": res.Source,
	}).Info("已生成 PDF")
	fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s（%d 页）\n", renderOut, res.Pages)
	return nil
}

// readRequest 根据 --patient 与 --in 组装请求。
func readRequest(stdin io.Reader) (report.Request, error) {
	var req report.Request
	if renderPatient != "" {
		data, err := os.ReadFile(renderPatient)
		if err != nil {
			return req, fmt.Errorf("读取患者资料失败: %w", err)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("解析患者资料失败: %w", err)
		}
	}

	switch renderIn {
	case "":
		if renderPatient == "" {
			return req, fmt.Errorf("需要 --in 或 --patient")
		}
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return req, fmt.Errorf("读取标准输入失败: %w", err)
		}
		text := string(data)
		req.Narrative = &text
	default:
		data, err := os.ReadFile(renderIn)
		if err != nil {
			return req, fmt.Errorf("无法打开叙述文件 %s: %w", renderIn, err)
		}
		text := string(data)
		req.Narrative = &text
	}
	return req, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
