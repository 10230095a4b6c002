package layout

import (
	"encoding/json"
	"io"
	"os"
)

// WriteDebugJSON 将当前表面状态输出为 JSON，便于调试回放结果。
func WriteDebugJSON(s *Surface, path string) error {
	if s == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebugJSON(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeDebugJSON writes the indented surface state to w.
func EncodeDebugJSON(s *Surface, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
