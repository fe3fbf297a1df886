package layout

import "fmt"

// Point 是以毫米为单位的坐标，原点在左上角，y 向下。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add 返回两个坐标相加后的结果。
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Rect 描述一个轴对齐矩形（origin + size，单位 mm）。
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NewRect 校验尺寸后构造矩形。坐标允许为任意有限值，宽高必须非负。
func NewRect(x, y, w, h float64) (Rect, error) {
	for _, v := range []float64{w, h} {
		if _, err := MM(v); err != nil {
			return Rect{}, err
		}
	}
	if _, err := MM(absf(x)); err != nil {
		return Rect{}, err
	}
	if _, err := MM(absf(y)); err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, W: w, H: h}, nil
}

// Origin 返回矩形左上角。
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Right 返回矩形右边界。
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom 返回矩形下边界。
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Translate 把矩形平移到 p 所在的坐标系中。
func (r Rect) Translate(p Point) Rect {
	return Rect{X: r.X + p.X, Y: r.Y + p.Y, W: r.W, H: r.H}
}

// Inset 在四边各收缩 d。收缩量超过一半尺寸时返回 ErrInvalidGeometry。
func (r Rect) Inset(d float64) (Rect, error) {
	if _, err := MM(d); err != nil {
		return Rect{}, err
	}
	if 2*d >= r.W || 2*d >= r.H {
		return Rect{}, fmt.Errorf("%w: 边距 %gmm 超出 %gx%gmm 的区域", ErrInvalidGeometry, d, r.W, r.H)
	}
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}, nil
}

// Contains 判断 o 是否完全落在 r 内（含边界，允许极小误差）。
func (r Rect) Contains(o Rect) bool {
	const eps = 1e-9
	return o.X >= r.X-eps && o.Y >= r.Y-eps && o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
