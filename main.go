package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ByLCY/stickerpress/assets"
	"github.com/ByLCY/stickerpress/engine"
	"github.com/ByLCY/stickerpress/layout"
	"github.com/ByLCY/stickerpress/renderer/raster"
)

type config struct {
	designPath  string
	recordsPath string
	outputPath  string
	debugPath   string
	previewPath string
	assetsDir   string
	redisAddr   string
	redisPrefix string
	maxBatch    int
	timeout     time.Duration
}

func main() {
	var cfg config
	flag.StringVar(&cfg.designPath, "design", "", "设计文件路径（为空时使用默认 85x95mm 模板）")
	flag.StringVar(&cfg.recordsPath, "records", "records.json", "商品记录 JSON 文件")
	flag.StringVar(&cfg.outputPath, "out", "output/stickers.pdf", "PDF 输出路径")
	flag.StringVar(&cfg.debugPath, "debug", "", "布局调试 JSON 输出路径")
	flag.StringVar(&cfg.previewPath, "preview", "", "PNG 预览输出路径")
	flag.StringVar(&cfg.assetsDir, "assets", "", "字体与图片目录（默认为设计文件所在目录）")
	flag.StringVar(&cfg.redisAddr, "redis", "", "Redis 资源存储地址，例如 127.0.0.1:6379")
	flag.StringVar(&cfg.redisPrefix, "redis-prefix", "stickerpress:", "Redis 资源 key 前缀")
	flag.IntVar(&cfg.maxBatch, "max-batch", 1000, "单次最多生成的贴纸数量（0 表示不限）")
	flag.DurationVar(&cfg.timeout, "timeout", 2*time.Minute, "整次生成的超时时间")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("[ERROR] 生成贴纸失败: %v", err)
	}
}

// run 串联设计加载、记录读取、排版与渲染。
func run(ctx context.Context, cfg config) error {
	d, err := loadDesign(cfg.designPath)
	if err != nil {
		return err
	}
	records, err := readRecords(cfg.recordsPath, time.Now())
	if err != nil {
		return err
	}
	log.Printf("[INFO] design %q, %d stickers", d.Name, len(records))

	store, closeStore := buildStore(cfg)
	defer closeStore()

	doc, err := engine.Generate(ctx, d, records, engine.Options{Store: store, MaxBatch: cfg.maxBatch})
	if err != nil {
		return err
	}
	if doc.Pages == 0 {
		log.Printf("[INFO] no records, nothing to print")
		return nil
	}

	if cfg.debugPath != "" {
		if err := writeDebug(doc.Layout, cfg.debugPath); err != nil {
			return err
		}
	}
	if err := writeFile(cfg.outputPath, doc.PDF); err != nil {
		return err
	}
	log.Printf("[INFO] wrote %s (%d pages, layout %s)", cfg.outputPath, doc.Pages, doc.Fingerprint[:12])

	if cfg.previewPath != "" {
		png, err := raster.NewRenderer(store, raster.DefaultDPI).Render(ctx, doc.Layout)
		if err != nil {
			return fmt.Errorf("渲染预览失败: %w", err)
		}
		if err := writeFile(cfg.previewPath, png); err != nil {
			return err
		}
		log.Printf("[INFO] wrote preview %s", cfg.previewPath)
	}
	return nil
}

func loadDesign(path string) (*layout.Design, error) {
	if path == "" {
		return layout.Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开设计文件 %s: %w", path, err)
	}
	defer file.Close()
	return layout.LoadDesign(file)
}

// buildStore 组合资源存储：内置字体 → Redis（可选）→ 本地目录。
func buildStore(cfg config) (assets.Store, func()) {
	dir := cfg.assetsDir
	if dir == "" && cfg.designPath != "" {
		dir = filepath.Dir(cfg.designPath)
	}
	chain := assets.Chain{assets.Builtin{}}
	closeFn := func() {}
	if cfg.redisAddr != "" {
		rs, closeRedis := assets.NewRedisStore(assets.RedisConf{Addr: cfg.redisAddr, Prefix: cfg.redisPrefix})
		chain = append(chain, rs)
		closeFn = func() {
			if err := closeRedis(); err != nil {
				log.Printf("[ERROR] closing redis: %v", err)
			}
		}
	}
	chain = append(chain, assets.DirStore{BaseDir: dir})
	return chain, closeFn
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
