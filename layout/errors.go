package layout

import "errors"

// 所有致命错误都会终止整次生成；调用方通过 errors.Is 区分类别。
var (
	ErrInvalidGeometry       = errors.New("layout: invalid geometry")
	ErrFontLoad              = errors.New("layout: font load failed")
	ErrAssetMissing          = errors.New("layout: asset missing")
	ErrMissingPlacement      = errors.New("layout: missing placement")
	ErrLabelTooLargeForSheet = errors.New("layout: label too large for sheet")
	ErrBatchTooLarge         = errors.New("layout: batch too large")
)

// errPageFull 只在分页驱动内部使用，不会返回给调用方。
var errPageFull = errors.New("layout: page full")
