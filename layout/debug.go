package layout

import (
	"encoding/json"
	"os"
)

// DebugDump 是调试 JSON 的顶层结构。
type DebugDump struct {
	Pages    int       `json:"pages"`
	Config   Config    `json:"config"`
	Commands []Command `json:"commands"`
}

// WriteDebugJSON 将记录下的绘制指令输出为 JSON，便于排查分页与缩进。
func WriteDebugJSON(rec *Recorder, cfg Config, path string) error {
	if rec == nil {
		return nil
	}
	data, err := json.MarshalIndent(DebugDump{
		Pages:    rec.PageCount(),
		Config:   cfg,
		Commands: rec.Commands(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
