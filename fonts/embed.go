package fonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Bucket 将 CSS 字重归并到内置字体实际提供的三档：400/500/700。
func Bucket(weight int) int {
	switch {
	case weight >= 600:
		return 700
	case weight >= 500:
		return 500
	default:
		return 400
	}
}

// Load 返回内置 Go 字体中与 weight/italic 最接近的 TTF 数据。
func Load(weight int, italic bool) []byte {
	switch Bucket(weight) {
	case 700:
		if italic {
			return gobolditalic.TTF
		}
		return gobold.TTF
	case 500:
		if italic {
			return gomediumitalic.TTF
		}
		return gomedium.TTF
	default:
		if italic {
			return goitalic.TTF
		}
		return goregular.TTF
	}
}
