package editor

import (
	"math"

	"github.com/ByLCY/rosterboard/config"
	"github.com/ByLCY/rosterboard/layout"
)

// StyleController applies font changes to a block.
type StyleController struct {
	cfg     config.Style
	toolbar *Toolbar
	settler *Settler
}

// ChangeFontSize adds delta to the block's effective size (rounded to whole
// px), then adds the same delta to each cascading role node's own effective
// size. Every result is floored at the minimum font size.
func (c *StyleController) ChangeFontSize(b *layout.Block, delta float64) {
	if b == nil {
		return
	}
	next := math.Max(c.cfg.MinFontSize, math.Round(b.EffectiveFontSize())+delta)
	b.FontSize = next
	// 节点字号在 block 更新之后读取，继承的节点会读到新值。
	for _, n := range b.Nodes {
		if !n.Role.Cascades() {
			continue
		}
		n.FontSize = math.Max(c.cfg.MinFontSize, n.EffectiveFontSize()+delta)
	}
	c.toolbar.UpdateReadout(b)
	c.settler.Schedule()
}

// ToggleBold switches between the normal and heavy weights.
func (c *StyleController) ToggleBold(b *layout.Block) {
	if b == nil {
		return
	}
	if b.EffectiveFontWeight() >= c.cfg.BoldThreshold {
		b.FontWeight = c.cfg.NormalWeight
	} else {
		b.FontWeight = c.cfg.BoldWeight
	}
	c.settler.Schedule()
}
