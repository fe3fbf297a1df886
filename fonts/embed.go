package fonts

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Prefix 标记内置字体的资源名，例如 "builtin:dejavu-sans"。
const Prefix = "builtin:"

// 默认字体。DejaVu Sans 覆盖 ₹ 等货币符号，Go 字体不含 U+20B9。
const (
	DefaultRegular = Prefix + "dejavu-sans"
	DefaultBold    = Prefix + "dejavu-sans-bold"
)

//go:embed DejaVu/*.ttf
var fontFS embed.FS

var embedded = map[string]string{
	"dejavu-sans":      "DejaVu/DejaVuSans.ttf",
	"dejavu-sans-bold": "DejaVu/DejaVuSans-Bold.ttf",
}

var gofonts = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
	"go-medium":  gomedium.TTF,
	"go-italic":  goitalic.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "builtin:go-bold" 或直接 "go-bold"。
func Load(name string) ([]byte, error) {
	clean := strings.TrimPrefix(name, Prefix)
	if data, ok := gofonts[clean]; ok {
		return data, nil
	}
	target, ok := embedded[clean]
	if !ok {
		return nil, fmt.Errorf("内置字体 %s 不存在", name)
	}
	data, err := fontFS.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("读取内置字体 %s 失败: %w", target, err)
	}
	return data, nil
}

// IsBuiltin 判断资源名是否指向内置字体。
func IsBuiltin(name string) bool {
	clean := strings.TrimPrefix(name, Prefix)
	if _, ok := gofonts[clean]; ok {
		return true
	}
	_, ok := embedded[clean]
	return ok
}

// Names 返回全部内置字体名（已排序）。
func Names() []string {
	out := make([]string, 0, len(gofonts)+len(embedded))
	for name := range gofonts {
		out = append(out, name)
	}
	for name := range embedded {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
