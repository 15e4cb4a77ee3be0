package services

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"ui-spec-web/internal/domain/models"
)

var hexInTextPattern = regexp.MustCompile(`#[0-9A-Fa-f]{6}`)

type colorPreset struct {
	keyword                    string
	primary, secondary, accent string
}

// 顺序即优先级，首个命中的关键词生效
var colorPresets = []colorPreset{
	// 安全/扫描
	{"security", "#DC2626", "#B91C1C", "#F59E0B"},
	{"scan", "#EF4444", "#DC2626", "#F97316"},
	{"vulnerability", "#B91C1C", "#991B1B", "#EA580C"},
	// 医疗
	{"health", "#0EA5E9", "#06B6D4", "#10B981"},
	{"medical", "#0284C7", "#0891B2", "#059669"},
	{"hospital", "#0369A1", "#0E7490", "#047857"},
	// 金融
	{"finance", "#1E40AF", "#3B82F6", "#10B981"},
	{"bank", "#1E3A8A", "#2563EB", "#059669"},
	{"payment", "#1D4ED8", "#3B82F6", "#0D9488"},
	// 技术
	{"tech", "#374151", "#6B7280", "#06B6D4"},
	{"code", "#1F2937", "#4B5563", "#0891B2"},
	{"software", "#111827", "#374151", "#0E7490"},
	// 教育
	{"education", "#7C3AED", "#8B5CF6", "#3B82F6"},
	{"learning", "#6D28D9", "#7C3AED", "#2563EB"},
	{"course", "#5B21B6", "#6D28D9", "#1D4ED8"},
	// 餐饮
	{"food", "#EA580C", "#F97316", "#DC2626"},
	{"restaurant", "#C2410C", "#EA580C", "#B91C1C"},
	{"delivery", "#9A3412", "#C2410C", "#991B1B"},
	// 电商
	{"shop", "#7C3AED", "#EC4899", "#F59E0B"},
	{"ecommerce", "#6D28D9", "#DB2777", "#D97706"},
	{"marketplace", "#5B21B6", "#BE185D", "#B45309"},
	// 计算器
	{"calculator", "#2563EB", "#1D4ED8", "#F59E0B"},
	{"math", "#1E40AF", "#1E3A8A", "#EA580C"},
	{"computation", "#1D4ED8", "#1E40AF", "#D97706"},
}

// SynthesizePalette 按 显式颜色 > 关键词预设 > 内容哈希 的优先级生成配色
func SynthesizePalette(text string) models.ColorPalette {
	primary, secondary, accent := baseColors(text)

	return models.ColorPalette{
		Primary:        primary,
		Secondary:      secondary,
		Accent:         accent,
		Background:     Lighten(primary, 95),
		Surface:        Lighten(primary, 98),
		PrimaryText:    ContrastOf(primary),
		SecondaryText:  ContrastOf(secondary),
		AccentText:     ContrastOf(accent),
		BackgroundText: ContrastOf(Lighten(primary, 95)),
		SurfaceText:    ContrastOf(Lighten(primary, 98)),
		GradientStart:  Adjust(primary, -10, 5),
		GradientEnd:    Adjust(secondary, 10, 5),
	}
}

// ExplicitColors 按出现顺序返回文本中的 #RRGGBB
func ExplicitColors(text string) []string {
	return hexInTextPattern.FindAllString(text, -1)
}

func baseColors(text string) (primary, secondary, accent string) {
	if found := ExplicitColors(text); len(found) > 0 {
		primary = found[0]
		secondary = Adjust(primary, -20, 10)
		accent = Adjust(primary, 60, -10)
		if len(found) > 1 {
			secondary = found[1]
		}
		if len(found) > 2 {
			accent = found[2]
		}
		return primary, secondary, accent
	}

	lower := strings.ToLower(text)
	if preset, ok := matchPreset(lower); ok {
		return preset.primary, preset.secondary, preset.accent
	}
	return hashColors(lower)
}

func matchPreset(lower string) (colorPreset, bool) {
	for _, preset := range colorPresets {
		if strings.Contains(lower, preset.keyword) {
			return preset, true
		}
	}
	return colorPreset{}, false
}

// hashColors 由内容哈希得到三色，饱和度 60-84，亮度 45-59
func hashColors(lower string) (string, string, string) {
	sum := md5.Sum([]byte(lower))
	digest := hex.EncodeToString(sum[:])

	hexByte := func(i int) int {
		v, _ := strconv.ParseUint(digest[i:i+2], 16, 8)
		return int(v)
	}

	primaryHue := hexByte(0) * 360 / 255
	secondaryHue := (primaryHue + 120) % 360
	accentHue := (primaryHue + 240) % 360

	saturation := 60 + hexByte(2)%25
	lightness := 45 + hexByte(4)%15

	return HSLToHex(primaryHue, saturation, lightness),
		HSLToHex(secondaryHue, saturation-10, lightness+5),
		HSLToHex(accentHue, saturation+5, lightness-5)
}

// md5Hex 返回文本的 md5 十六进制摘要
func md5Hex(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
