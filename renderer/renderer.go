package renderer

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ByLCY/medreport/layout"
)

// Renderer 是可以输出最终文件的绘制表面，例如 PDF。
// 绘制过程中出现的错误会被记录，由 Finish 统一返回。
type Renderer interface {
	layout.Surface
	Finish() ([]byte, error)
}

// Meta 写入输出文件的文档信息。
type Meta struct {
	Title    string
	Subject  string
	Keywords string
	Author   string
	Creator  string
}

// Factory 为每次渲染创建新的 Renderer，Renderer 不在请求之间复用。
type Factory func(meta Meta) (Renderer, error)

// PageCount 读取 PDF 并返回页数，用于核对渲染结果。
func PageCount(pdf []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, fmt.Errorf("读取 PDF 页数失败: %w", err)
	}
	return n, nil
}
