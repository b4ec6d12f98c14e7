package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"kotonote/audio"
	"kotonote/clipboard"
	"kotonote/command"
	"kotonote/config"
	"kotonote/destination"
	"kotonote/encoder"
	"kotonote/formatter"
	"kotonote/hotkey"
	"kotonote/log"
	"kotonote/notes"
	"kotonote/notify"
	"kotonote/pipeline"
	"kotonote/profile"
	"kotonote/shutdown"
	"kotonote/transcriber"
)

var version = "dev"

var runCount atomic.Int64

const (
	pasteDelay       = 500 * time.Millisecond
	clipboardRestore = 600 * time.Millisecond
	previewRunes     = 80
)

func run() {
	configFlag := flag.String("config", "", "Config file path (default: OS-specific location)")
	logPathFlag := flag.String("logpath", "", "Log directory path (default: OS-specific location, use ./ for current dir)")
	devicesFlag := flag.Bool("devices", false, "List capture devices and exit")
	rulesFlag := flag.Bool("rules", false, "List voice command rules and exit")
	doctorFlag := flag.Bool("doctor", false, "Check trigger key access and exit")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("kotonote %s\n", version)
		os.Exit(0)
	}

	if *doctorFlag {
		msg, err := hotkey.Diagnose()
		if err != nil {
			fmt.Fprintf(os.Stderr, "hotkey: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("hotkey: " + msg)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	commands := command.NewProcessor(cfg.VoiceCommandsEnabled, customRules(cfg))

	if *rulesFlag {
		for _, r := range commands.ListRules() {
			fmt.Printf("%-14s %s\n", r.Trigger, r.Description)
		}
		os.Exit(0)
	}

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	audioCtx, err := audio.NewContext()
	if err != nil {
		log.Errorf("audio context init error: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing audio: %v\n", err)
		os.Exit(1)
	}
	defer audioCtx.Close()

	if *devicesFlag {
		devices, err := audioCtx.Devices()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing devices: %v\n", err)
			os.Exit(1)
		}
		for _, d := range devices {
			fmt.Println(d.Name)
		}
		os.Exit(0)
	}

	stt, err := transcriber.New(cfg.Env.GroqAPIKey, cfg.Language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var remote formatter.Formatter
	if cfg.Env.GeminiAPIKey != "" {
		remote = formatter.NewGemini(cfg.Env.GeminiAPIKey, cfg.GeminiModel)
	}

	profiles := profile.NewResolver(cfg.AppProfilesEnabled, customProfiles(cfg))
	pipe := pipeline.New(commands, profiles, remote, cfg.FormatThreshold, func(msg string) {
		log.Info(msg)
	})

	if cfg.AutoPaste {
		if err := clipboard.Init(); err != nil {
			log.Warnf("paste init failed: %v", err)
			fmt.Fprintf(os.Stderr, "Warning: paste init failed: %v\n", err)
		}
	}

	captureConfig := audio.CaptureConfig{
		SampleRate: encoder.SampleRate,
		Channels:   encoder.Channels,
	}
	captureDevice, err := audioCtx.NewCapture(nil, captureConfig)
	if err != nil {
		log.Errorf("capture device init error: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing capture device: %v\n", err)
		os.Exit(1)
	}
	defer captureDevice.Close()

	recorder := audio.NewRecorder(captureDevice, encoder.SampleRate)
	controller := NewController(recorder, func(samples []int16) {
		processCapture(samples, stt, pipe, cfg)
	})

	hk := hotkey.New()
	if err := hk.Register(); err != nil {
		log.Errorf("hotkey register error: %v", err)
		fmt.Fprintf(os.Stderr, "Error registering hotkey: %v\n", err)
		os.Exit(1)
	}
	defer hk.Unregister()

	listener := hotkey.NewListener(hk, hotkey.DefaultTapThreshold, hotkey.DefaultDoubleTapInterval)

	remoteName := "none"
	if remote != nil {
		remoteName = remote.Name()
	}
	log.SessionStart(stt.Name(), remoteName)

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)

	for {
		select {
		case <-listener.Trigger():
			err := controller.Trigger()
			switch err {
			case nil:
				log.Info("phase: " + controller.Phase().String())
			case ErrBusy:
				log.Info("trigger ignored: busy")
			case ErrNoAudio:
				log.Info("no audio captured")
			default:
				log.Errorf("capture error: %v", err)
			}
			if msg := triggerStatus(err); msg != "" {
				notify.Show(msg)
			}
		case <-sigChan:
			if n := runCount.Load(); n > 0 {
				log.SessionEnd(int(n))
			}
			log.Info("shutting down")
			return
		}
	}
}

// processCapture is the one background job per completed capture: encode,
// transcribe, transform, then fan out to the sinks.
func processCapture(samples []int16, stt transcriber.Transcriber, pipe *pipeline.Pipeline, cfg *config.Config) {
	started := time.Now()
	ctx := context.Background()

	data, format := encodeCapture(samples)

	transcribeStart := time.Now()
	text, err := stt.Transcribe(ctx, data, format)
	transcribeMs := float64(time.Since(transcribeStart).Milliseconds())
	if err != nil {
		log.Errorf("transcription error: %v", err)
		notify.Show(preview("文字起こしに失敗しました: " + err.Error()))
		return
	}
	if text == "" {
		log.Info("no speech detected")
		notify.Show("音声が検出されませんでした")
		return
	}

	formatStart := time.Now()
	result := pipe.Run(ctx, text, destination.Active())
	formatMs := float64(time.Since(formatStart).Milliseconds())

	deliver(result.Text, cfg)

	if cfg.SaveMarkdown {
		if path, err := notes.Save(cfg.OutputDir, result.Text); err != nil {
			log.Warnf("saving note failed: %v", err)
		} else {
			log.Info("note saved: " + path)
		}
	}

	notify.Show(preview(result.Text))

	runCount.Add(1)
	log.TranscriptText(result.Text)
	log.Run(log.RunMetrics{
		AudioLengthS: float64(len(samples)) / float64(encoder.SampleRate),
		TranscribeMs: transcribeMs,
		FormatMs:     formatMs,
		TotalMs:      float64(time.Since(started).Milliseconds()),
		Chars:        utf8.RuneCountInString(result.Text),
		RemoteFormat: result.RemoteFormat,
		Destination:  result.Profile.Source,
		ProfileName:  result.Profile.DisplayName,
	})
}

// encodeCapture prefers FLAC for the smaller upload and falls back to WAV.
func encodeCapture(samples []int16) ([]byte, string) {
	data, err := encoder.EncodeFlac(samples)
	if err != nil {
		log.Warnf("flac encode failed, using wav: %v", err)
		return encoder.EncodeWAV(samples), "wav"
	}
	return data, "flac"
}

// deliver copies text to the clipboard and optionally pastes it into the
// focused application, restoring the previous clipboard contents afterwards.
func deliver(text string, cfg *config.Config) {
	prev, _ := clipboard.Read()

	if err := clipboard.Copy(text); err != nil {
		log.Errorf("clipboard copy failed: %v", err)
		return
	}
	if !cfg.AutoPaste {
		return
	}

	// Give focus time to settle on the target window.
	time.Sleep(pasteDelay)
	if err := clipboard.Paste(); err != nil {
		log.Warnf("paste failed: %v", err)
		return
	}

	time.Sleep(clipboardRestore)
	if prev != "" {
		if err := clipboard.Copy(prev); err != nil {
			log.Warnf("clipboard restore failed: %v", err)
		}
	}
}

// triggerStatus maps a rejected trigger to the message shown to the user,
// or "" when no notification is warranted.
func triggerStatus(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return "処理中です。しばらくお待ちください。"
	case errors.Is(err, ErrNoAudio):
		return "音声が検出されませんでした"
	default:
		return preview(err.Error())
	}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + "..."
}

func customRules(cfg *config.Config) []command.Rule {
	rules := make([]command.Rule, 0, len(cfg.Commands))
	for _, r := range cfg.Commands {
		if r.Trigger == "" {
			continue
		}
		rules = append(rules, command.Rule{Trigger: r.Trigger, Replacement: r.Replacement})
	}
	return rules
}

func customProfiles(cfg *config.Config) []profile.Profile {
	overrides := make([]profile.Profile, 0, len(cfg.Profiles))
	for _, p := range cfg.Profiles {
		if p.Key == "" {
			continue
		}
		name := p.DisplayName
		if name == "" {
			name = p.Key
		}
		overrides = append(overrides, profile.Profile{
			Key:             p.Key,
			DisplayName:     name,
			Mode:            parseMode(p.Mode),
			StripMarkup:     p.StripMarkup,
			TrailingNewline: p.TrailingNewline,
		})
	}
	return overrides
}

func parseMode(s string) profile.FormatMode {
	switch s {
	case "plain":
		return profile.ModePlain
	case "structured":
		return profile.ModeStructured
	default:
		return profile.ModeAuto
	}
}
