package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor 判断是否为 #RRGGBB 格式
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ParseHex 解析 #RRGGBB，调用方保证格式正确
func ParseHex(hex string) (r, g, b int) {
	if len(hex) != 7 {
		return 0, 0, 0
	}
	channel := func(s string) int {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0
		}
		return int(v)
	}
	return channel(hex[1:3]), channel(hex[3:5]), channel(hex[5:7])
}

// RGBToHSL 转换为整数 HSL（h: 0-359, s/l: 0-100），小数部分截断
func RGBToHSL(r, g, b int) (h, s, l int) {
	rf, gf, bf := float64(r)/255.0, float64(g)/255.0, float64(b)/255.0
	maxVal := math.Max(rf, math.Max(gf, bf))
	minVal := math.Min(rf, math.Min(gf, bf))
	diff := maxVal - minVal

	lf := (maxVal + minVal) / 2
	var hf, sf float64
	if diff != 0 {
		if lf > 0.5 {
			sf = diff / (2 - maxVal - minVal)
		} else {
			sf = diff / (maxVal + minVal)
		}

		switch maxVal {
		case rf:
			hf = (gf - bf) / diff
			if gf < bf {
				hf += 6
			}
		case gf:
			hf = (bf-rf)/diff + 2
		default:
			hf = (rf-gf)/diff + 4
		}
		hf /= 6
	}

	return int(hf * 360), int(sf * 100), int(lf * 100)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// HSLToHex 转换为小写 #rrggbb
func HSLToHex(h, s, l int) string {
	hf, sf, lf := float64(h)/360, float64(s)/100, float64(l)/100

	var r, g, b float64
	if sf == 0 {
		r, g, b = lf, lf, lf
	} else {
		var q float64
		if lf < 0.5 {
			q = lf * (1 + sf)
		} else {
			q = lf + sf - lf*sf
		}
		p := 2*lf - q
		r = hueToRGB(p, q, hf+1.0/3)
		g = hueToRGB(p, q, hf)
		b = hueToRGB(p, q, hf-1.0/3)
	}

	return fmt.Sprintf("#%02x%02x%02x", toByte(r), toByte(g), toByte(b))
}

func toByte(v float64) int {
	n := int(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// Adjust 旋转色相并平移亮度，亮度限制在 [0,100]
func Adjust(hex string, hueShift, lightnessShift int) string {
	h, s, l := RGBToHSL(ParseHex(hex))
	h = ((h+hueShift)%360 + 360) % 360
	l = clamp(l+lightnessShift, 0, 100)
	return HSLToHex(h, s, l)
}

// Lighten 降低饱和度并设定目标亮度
func Lighten(hex string, targetLightness int) string {
	h, s, _ := RGBToHSL(ParseHex(hex))
	return HSLToHex(h, max(10, s-40), targetLightness)
}

// Luminance 计算 0.299r+0.587g+0.114b，归一化到 [0,1]
func Luminance(hex string) float64 {
	r, g, b := ParseHex(hex)
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// ContrastOf 浅色背景返回同色相深色，深色背景返回同色相浅色
func ContrastOf(hex string) string {
	h, s, l := RGBToHSL(ParseHex(hex))
	if Luminance(hex) > 0.6 {
		return HSLToHex(h, min(80, s+20), max(15, l-70))
	}
	return HSLToHex(h, max(10, s-30), min(95, l+60))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
