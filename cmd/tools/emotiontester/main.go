// emotiontester 在终端里对当前配置的服务栈执行分类、回复与合成。
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhouzirui/neurosync/backend/internal/app"
	"github.com/zhouzirui/neurosync/backend/internal/config"
	"github.com/zhouzirui/neurosync/backend/internal/logger"
)

type options struct {
	timeout  time.Duration
	language string
	output   string
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "emotiontester",
		Short:        "Exercise the NeuroSync emotion and speech stack from a terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().DurationVarP(&opts.timeout, "timeout", "t", 45*time.Second, "请求超时时间")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "输出调试日志")

	classifyCmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify the emotion of a text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				result := a.Emotion.Classify(ctx, strings.Join(args, " "))
				return printJSON(cmd, map[string]any{
					"emotion":    result.Label,
					"confidence": result.Confidence,
					"source":     result.Source,
				})
			})
		},
	}

	replyCmd := &cobra.Command{
		Use:   "reply [text]",
		Short: "Build the full reply for a text, including audio when speech is configured",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				out, err := a.Chat.ReplyWithAudio(ctx, strings.Join(args, " "), opts.language)
				if err != nil {
					return err
				}
				if out.AudioURL != nil {
					// 终端里不打印整段音频
					summary := fmt.Sprintf("<%d chars>", len(*out.AudioURL))
					out.AudioURL = &summary
				}
				return printJSON(cmd, out)
			})
		},
	}
	replyCmd.Flags().StringVarP(&opts.language, "lang", "l", "", "回复语音的语言，默认 en")

	speakCmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Synthesize a text and write the audio to a file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				url, err := a.Chat.Speak(ctx, strings.Join(args, " "), opts.language)
				if err != nil {
					return err
				}
				audio, err := decodeDataURL(url)
				if err != nil {
					return err
				}
				path := opts.output
				if path == "" {
					path = fmt.Sprintf("tts-output-%d.mp3", time.Now().Unix())
				}
				if err := os.WriteFile(path, audio, 0o644); err != nil {
					return fmt.Errorf("写入音频文件失败: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s (provider=%s)\n", len(audio), path, a.Speech.Provider())
				return nil
			})
		},
	}
	speakCmd.Flags().StringVarP(&opts.language, "lang", "l", "", "语言代码，留空时自动识别")
	speakCmd.Flags().StringVarP(&opts.output, "out", "o", "", "输出音频文件路径")

	root.AddCommand(classifyCmd, replyCmd, speakCmd)
	return root
}

func withApp(cmd *cobra.Command, opts *options, fn func(context.Context, *app.App) error) error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] 无法加载 .env，改用系统环境变量: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	lg, err := logger.New(level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	a, err := app.Build(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer a.Close()

	lg.Debug("stack ready",
		zap.Bool("remote", a.Emotion.RemoteEnabled()),
		zap.String("speech", a.Speech.Provider()))
	return fn(ctx, a)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func decodeDataURL(url string) ([]byte, error) {
	_, encoded, ok := strings.Cut(url, ";base64,")
	if !ok {
		return nil, fmt.Errorf("unexpected audio url format")
	}
	return base64.StdEncoding.DecodeString(encoded)
}
