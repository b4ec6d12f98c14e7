package formatter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// systemPrompt instructs the model to remove fillers and restructure the
// transcript without dropping any of the speaker's content.
const systemPrompt = `あなたは日本語の音声書き起こしテキストを整形する専門家です。

## 最重要ルール
- 話者が述べた内容は一切省略・要約・削除しない
- フィラー（えー、うーん等）と明らかな言い直しのみ除去する
- それ以外の情報はすべて残す

## 内容に応じた整形レベル
- 短い発話・会話・簡単な質問や依頼: フィラー除去のみ、Markdown記法は使わない
- 要件定義・タスク指示: 見出し（##）で話題を区切り、条件を箇条書き（-）で整理し、技術用語やコマンドはバッククォートで囲む
- 複数話題の説明: 話題ごとに段落を分ける

## 出力形式
- 余計なメタ情報（「以下は整形結果です」等）は付けない
- 整形後のテキストのみを返す`

// Gemini formats transcripts through the Gemini generateContent API.
type Gemini struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *Gemini) Name() string { return "gemini" }

type geminiRequest struct {
	SystemInstruction geminiContent    `json:"system_instruction"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Format sends the transcript to Gemini and returns the styled markdown.
// Any transport, status, or parse failure is returned as an error; the
// pipeline substitutes the pre-formatting text in that case.
func (g *Gemini) Format(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	reqBody := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: "以下の音声書き起こしテキストを整形してください。\n\n" + text}}},
		},
		GenerationConfig: generationConfig{Temperature: 0.3, MaxOutputTokens: 4096},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var gResp geminiResponse
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("gemini response parse error: %w", err)
	}
	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var b strings.Builder
	for _, part := range gResp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String()), nil
}
