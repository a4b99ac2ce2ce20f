package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称。
const (
	Regular = "go-regular"
	Bold    = "go-bold"
)

var builtin = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
}

// Load 返回字体的字节数据。src 可写为 "embed:go-regular"、"go-bold" 这样的内置名称，
// 也可以是 TTF/OTF 文件路径。
func Load(src string) ([]byte, error) {
	name := strings.TrimPrefix(src, "embed:")
	if data, ok := builtin[name]; ok {
		return data, nil
	}
	if strings.HasPrefix(src, "embed:") || name == "" {
		return nil, fmt.Errorf("找不到内置字体 %s", src)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", name, err)
	}
	return data, nil
}
