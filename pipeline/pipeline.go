// Package pipeline turns a raw transcript into destination-ready text:
// voice-command rewriting, formatting, then profile post-processing.
package pipeline

import (
	"context"
	"fmt"
	"unicode/utf8"

	"kotonote/command"
	"kotonote/formatter"
	"kotonote/log"
	"kotonote/profile"
)

// DefaultThreshold is the transcript length (in code points) at which the
// remote formatter is worth its latency. Shorter transcripts always take
// the local fallback path.
const DefaultThreshold = 100

// Result reports one pipeline run.
type Result struct {
	Text         string
	Profile      profile.Profile
	RemoteFormat bool
}

type Pipeline struct {
	commands  *command.Processor
	profiles  *profile.Resolver
	remote    formatter.Formatter // nil when no API key is configured
	fallback  *formatter.Fallback
	threshold int
	progress  func(string)
}

// New wires a pipeline. remote may be nil; threshold <= 0 selects
// DefaultThreshold; onProgress may be nil.
func New(commands *command.Processor, profiles *profile.Resolver, remote formatter.Formatter, threshold int, onProgress func(string)) *Pipeline {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if onProgress == nil {
		onProgress = func(string) {}
	}
	return &Pipeline{
		commands:  commands,
		profiles:  profiles,
		remote:    remote,
		fallback:  formatter.NewFallback(),
		threshold: threshold,
		progress:  onProgress,
	}
}

// Run executes the four pipeline steps in order. It never fails: a remote
// formatter error falls back to the command-transformed text, and the local
// fallback always succeeds.
func (p *Pipeline) Run(ctx context.Context, raw, destID string) Result {
	// Step 1: voice commands become markdown structure.
	transformed := p.commands.Process(raw)

	// Step 2: destination profile.
	prof := p.profiles.Resolve(destID)
	if prof.Source != "" {
		p.progress("出力先: " + prof.DisplayName)
	}

	// Step 3: formatting. The remote formatter only earns its round trip
	// on long transcripts; its failure is never fatal.
	formatted := transformed
	remoteUsed := false
	if p.remote != nil && utf8.RuneCountInString(transformed) >= p.threshold {
		p.progress("テキストを整形中...")
		out, err := p.remote.Format(ctx, transformed)
		if err != nil {
			log.Warnf("remote format failed, using raw text: %v", err)
			p.progress(fmt.Sprintf("整形エラー、元のテキストを使用します: %v", err))
		} else {
			formatted = out
			remoteUsed = true
		}
	} else {
		p.progress("テキストを整形中（ローカル）...")
		formatted = p.fallback.Clean(transformed)
	}

	// Step 4: profile post-processing.
	final := prof.Apply(formatted)

	return Result{Text: final, Profile: prof, RemoteFormat: remoteUsed}
}
