package command

import (
	"strings"
	"testing"
)

func newEnabled() *Processor {
	return NewProcessor(true, nil)
}

func TestParagraphCommand(t *testing.T) {
	p := newEnabled()
	got := p.Process("えーと 新しい段落 これはテストです")
	want := "えーと \n\nこれはテストです"
	if got != want {
		t.Fatalf("Process = %q, want %q", got, want)
	}
}

func TestLongerTriggerWins(t *testing.T) {
	p := newEnabled()
	// 小見出し must not be shadowed by the shorter 見出し rule.
	got := p.Process("次は 小見出し タイトル")
	if !strings.Contains(got, "### ") {
		t.Fatalf("expected level-3 heading marker from 小見出し, got %q", got)
	}
	if strings.Contains(got, "小") {
		t.Fatalf("trigger残り: %q", got)
	}
}

func TestHeadingLevelPriority(t *testing.T) {
	p := newEnabled()
	got := p.Process("見出し3 設計")
	if !strings.HasPrefix(got, "### ") {
		t.Fatalf("見出し3 should produce ###, got %q", got)
	}
	got = p.Process("見出し2 設計")
	if !strings.HasPrefix(got, "## ") {
		t.Fatalf("見出し2 should produce ##, got %q", got)
	}
}

func TestNoMatchInsideWord(t *testing.T) {
	p := newEnabled()
	in := "この見出しについて話します"
	if got := p.Process(in); got != in {
		t.Fatalf("embedded trigger must not match: got %q", got)
	}
	if p.HasCommands(in) {
		t.Fatal("HasCommands should be false for embedded trigger")
	}
}

func TestPunctuationBoundary(t *testing.T) {
	p := newEnabled()
	got := p.Process("説明します。改行。続きです")
	if !strings.Contains(got, "\n") {
		t.Fatalf("改行 bounded by 。 should match, got %q", got)
	}
}

func TestCustomRulePrepended(t *testing.T) {
	custom := []Rule{{Trigger: "改行", Replacement: "<BR>"}}
	p := NewProcessor(true, custom)
	got := p.Process("ここで 改行 します")
	if !strings.Contains(got, "<BR>") {
		t.Fatalf("custom rule should win the length tie, got %q", got)
	}
}

func TestSinglePassNoRescan(t *testing.T) {
	// A replacement that spells out another trigger must survive literally:
	// rules run once each in priority order, never over their own output.
	custom := []Rule{{Trigger: "ぱら", Replacement: "新しい段落"}}
	p := NewProcessor(true, custom)
	got := p.Process("ここで ぱら を入れる")
	if !strings.Contains(got, "新しい段落") {
		t.Fatalf("replacement must not be re-interpreted, got %q", got)
	}
}

func TestBlankRunCollapse(t *testing.T) {
	p := newEnabled()
	got := p.Process("新しい段落 新しい段落 終わり")
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("3+ newlines must collapse to 2: %q", got)
	}
	if strings.HasPrefix(got, "\n") {
		t.Fatalf("leading newlines must be stripped: %q", got)
	}
	if strings.HasSuffix(got, " ") || strings.HasSuffix(got, "\n") {
		t.Fatalf("trailing whitespace must be trimmed: %q", got)
	}
}

func TestDisabledReturnsInput(t *testing.T) {
	p := NewProcessor(false, nil)
	in := "新しい段落 テスト"
	if got := p.Process(in); got != in {
		t.Fatalf("disabled processor must not rewrite, got %q", got)
	}
	if p.HasCommands(in) {
		t.Fatal("disabled processor must report no commands")
	}
}

func TestHasCommandsShortCircuit(t *testing.T) {
	p := newEnabled()
	if !p.HasCommands("そして 改行 続く") {
		t.Fatal("expected HasCommands true")
	}
	if p.HasCommands("コマンドなしの文章") {
		t.Fatal("expected HasCommands false")
	}
}

func TestTriggerAtEnds(t *testing.T) {
	p := newEnabled()
	if got := p.Process("水平線"); got != "---" {
		t.Fatalf("bare trigger: got %q", got)
	}
	got := p.Process("前の文 水平線")
	if !strings.HasSuffix(got, "---") {
		t.Fatalf("trigger at end: got %q", got)
	}
}

func TestListRulesDeduplicated(t *testing.T) {
	p := newEnabled()
	infos := p.ListRules()
	seen := map[string]bool{}
	for _, info := range infos {
		if seen[info.Trigger] {
			t.Fatalf("duplicate trigger %q in ListRules", info.Trigger)
		}
		seen[info.Trigger] = true
		if info.Description == "" {
			t.Fatalf("empty description for %q", info.Trigger)
		}
	}
	if !seen["新しい段落"] || !seen["小見出し"] {
		t.Fatal("expected built-in triggers in listing")
	}
}

func TestListRulesDescriptions(t *testing.T) {
	p := newEnabled()
	for _, info := range p.ListRules() {
		switch info.Trigger {
		case "新しい段落":
			if info.Description != "段落区切り" {
				t.Fatalf("新しい段落 description = %q", info.Description)
			}
		case "水平線":
			if !strings.Contains(info.Description, "水平線") {
				t.Fatalf("水平線 description = %q", info.Description)
			}
		case "インラインコード":
			if info.Description != "コード" {
				t.Fatalf("インラインコード description = %q", info.Description)
			}
		}
	}
}
