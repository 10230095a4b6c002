package dsl_test

import (
	"testing"

	"github.com/ByLCY/rosterboard/dsl"
)

const sampleSurface = `
surface Roster 2000x1414 {
  viewport 1440x900
  rendered 40 60 1000x707
  font-size: 16px
  background: #fff8e7
  shadow: 24

  // 周一菜单
  block monday left 100 top 120 width 400 min-height 60 {
    font-size: 18px
    editable: true
    title size 28px weight 700 { "Monday" }
    description { "${menu.monday}" }
  }

  block left 900 top 80 { text { "anonymous" } }
}
`

func TestParseSurface(t *testing.T) {
	doc, err := dsl.ParseString(sampleSurface)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Roster" {
		t.Fatalf("expected surface name Roster, got %s", doc.Name)
	}
	if doc.Size != "2000x1414" {
		t.Fatalf("expected size 2000x1414, got %s", doc.Size)
	}
	stmts := doc.Body.Statements
	if len(stmts) != 7 {
		t.Fatalf("expected 7 statements, got %d", len(stmts))
	}

	viewport := stmts[0].Command
	if viewport == nil || viewport.Name != "viewport" || len(viewport.Args) != 1 || viewport.Args[0].Kind() != "size" {
		t.Fatalf("unexpected viewport command: %+v", stmts[0])
	}
	rendered := stmts[1].Command
	if rendered == nil || len(rendered.Args) != 3 || rendered.Args[2].Text() != "1000x707" {
		t.Fatalf("unexpected rendered command: %+v", stmts[1])
	}

	fontSize := stmts[2].Assignment
	if fontSize == nil || fontSize.Key != "font-size" || fontSize.Value.Text() != "16px" {
		t.Fatalf("expected font-size assignment, got %+v", stmts[2])
	}
	bg := stmts[3].Assignment
	if bg == nil || bg.Value.Kind() != "color" || bg.Value.Text() != "#fff8e7" {
		t.Fatalf("expected color background, got %+v", stmts[3])
	}

	block := stmts[5].Command
	if block == nil || block.Name != "block" {
		t.Fatalf("expected block command, got %+v", stmts[5])
	}
	if block.Args[0].Text() != "monday" || len(block.Args) != 9 {
		t.Fatalf("unexpected block args: %d", len(block.Args))
	}
	if block.Block == nil || len(block.Block.Statements) != 4 {
		t.Fatalf("block body missing statements")
	}
	title := block.Block.Statements[2].Command
	if title == nil || title.Name != "title" || title.Block == nil {
		t.Fatalf("expected title role, got %+v", block.Block.Statements[2])
	}
	if got := string(title.Block.Statements[0].Text.Value); got != "Monday" {
		t.Fatalf("expected title text Monday, got %q", got)
	}
	desc := block.Block.Statements[3].Command
	if got := string(desc.Block.Statements[0].Text.Value); got != "${menu.monday}" {
		t.Fatalf("expected placeholder kept verbatim, got %q", got)
	}

	anon := stmts[6].Command
	if anon == nil || anon.Args[0].Text() != "left" {
		t.Fatalf("anonymous block should start with attribute pairs, got %+v", anon)
	}
}

func TestParseScript(t *testing.T) {
	script, err := dsl.ParseScriptString(`
session {
  rendered 0 0 1000x707
  down 60 70
  move 160.5 170
  up; press plus
  export
}
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	stmts := script.Body.Statements
	if len(stmts) != 6 {
		t.Fatalf("expected 6 commands, got %d", len(stmts))
	}
	names := []string{"rendered", "down", "move", "up", "press", "export"}
	for i, want := range names {
		if stmts[i].Command == nil || stmts[i].Command.Name != want {
			t.Fatalf("command %d: want %s, got %+v", i, want, stmts[i])
		}
	}
	if got := stmts[2].Command.Args[0].Text(); got != "160.5" {
		t.Fatalf("unexpected move x: %s", got)
	}
	if got := stmts[4].Command.Args[0].Text(); got != "plus" {
		t.Fatalf("unexpected press target: %s", got)
	}
}

func TestParseRejectsMissingSize(t *testing.T) {
	if _, err := dsl.ParseString(`surface Roster { }`); err == nil {
		t.Fatalf("expected error for surface without size")
	}
}
