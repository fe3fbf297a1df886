package layout

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"golang.org/x/crypto/blake2b"
)

// WriteDebugJSON 将排版结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Fingerprint 返回页面布局的 BLAKE2b-256 摘要。相同的设计与记录总是得到相同的摘要。
func Fingerprint(res *Result) (string, error) {
	if res == nil {
		return "", nil
	}
	data, err := json.Marshal(res.Pages)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
