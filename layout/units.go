package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths. The surface works in
// logical CSS pixels; everything else is converted on the way in.

// Unit represents the original unit of a length value as written in the surface file.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, read as px
	UnitPX
	UnitPT
	UnitMM
	UnitIN
)

// CSS 绝对单位换算：1in = 96px = 72pt = 25.4mm。
const (
	PxPerIn = 96.0
	PxPerPt = PxPerIn / 72.0
	PxPerMm = PxPerIn / 25.4
)

// Conversion constants between pt and mm, used when handing sizes to font faces
// that measure in points while the drawing canvas is addressed in px.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitIN:
		return "in"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// PX converts the length to logical pixels.
func (l Length) PX() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PxPerPt
	case UnitMM:
		return l.Value * PxPerMm
	case UnitIN:
		return l.Value * PxPerIn
	default:
		return l.Value
	}
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// ParseLength parses "12", "12px", "9pt", "4mm" or "1in".
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"in", UnitIN}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// ParsePX is ParseLength followed by a conversion to px.
func ParsePX(value string) (float64, error) {
	l, err := ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.PX(), nil
}

// ParseSize parses "WxH" in px.
func ParseSize(value string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(value)), "x")
	if !ok {
		return Size{}, fmt.Errorf("尺寸 %q 应为 WxH 形式", value)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return Size{}, fmt.Errorf("无法解析宽度 %q", w)
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return Size{}, fmt.Errorf("无法解析高度 %q", h)
	}
	if width < 0 || height < 0 {
		return Size{}, fmt.Errorf("尺寸 %q 不能为负", value)
	}
	return Size{Width: width, Height: height}, nil
}

// ParseWeight accepts a numeric weight or the keywords normal/bold.
func ParseWeight(value string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "normal", "regular":
		return WeightNormal, nil
	case "bold":
		return WeightBold, nil
	}
	w, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || w < 1 || w > 1000 {
		return 0, fmt.Errorf("无法解析字重 %q", value)
	}
	return w, nil
}
