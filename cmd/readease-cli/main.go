// Command readease-cli exercises the text assistant against the configured
// provider from a terminal, without the HTTP layer.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"readease/internal/config"
	domainllm "readease/internal/domain/services/llm"
	"readease/internal/service/llm"
	"readease/internal/utils"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type CLI struct {
	ctx       context.Context
	assistant domainllm.TextAssistant
	stripper  *utils.TraceStripper
	scanner   *bufio.Scanner
	out       io.Writer
}

func main() {
	op := flag.String("op", "", "run one operation and exit: summarize, simplify, grammar, translate, chat, suggest, ping")
	text := flag.String("text", "", "input text for -op (reads stdin when empty)")
	source := flag.String("from", "auto", "source language for translate")
	target := flag.String("to", "en", "target language for translate")
	verbose := flag.Bool("v", false, "log provider calls")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("%s❌ Config error: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	gateway, err := llm.SetupGateway(cfg, logger)
	if err != nil {
		fmt.Printf("%s❌ Failed to setup provider: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	cli := &CLI{
		ctx:       context.Background(),
		assistant: gateway,
		stripper:  gateway.TraceStripper(),
		scanner:   bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
	}
	cli.scanner.Buffer(make([]byte, 0, 64*1024), config.MaxRequestBodyBytes)

	if *op != "" {
		input := *text
		if input == "" && *op != "ping" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Printf("%s❌ Failed to read stdin: %v%s\n", colorRed, err, colorReset)
				os.Exit(1)
			}
			input = strings.TrimSpace(string(data))
		}
		if err := cli.runOnce(*op, input, *source, *target); err != nil {
			fmt.Fprintf(os.Stderr, "%s❌ %v%s\n", colorRed, err, colorReset)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("%sProvider: %s%s\n", colorBlue, gateway.ProviderName(), colorReset)
	cli.run()
}

// runOnce prints the result of a single operation.
func (cli *CLI) runOnce(op, input, source, target string) error {
	switch op {
	case "suggest":
		for _, s := range cli.assistant.SuggestReplies(cli.ctx, input) {
			fmt.Fprintln(cli.out, s)
		}
		return nil
	case "translate":
		out, err := cli.assistant.Translate(cli.ctx, input, source, target)
		return cli.print(out, err)
	case "ping":
		out, err := cli.assistant.Ping(cli.ctx)
		return cli.print(out, err)
	}

	fn, ok := cli.textOps()[op]
	if !ok {
		return fmt.Errorf("unknown operation %q", op)
	}
	out, err := fn(cli.ctx, input)
	return cli.print(out, err)
}

func (cli *CLI) textOps() map[string]func(context.Context, string) (string, error) {
	return map[string]func(context.Context, string) (string, error){
		"summarize": cli.assistant.Summarize,
		"simplify":  cli.assistant.Simplify,
		"grammar":   cli.assistant.CorrectGrammar,
		"chat":      cli.assistant.Chat,
	}
}

func (cli *CLI) print(out string, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, cli.stripper.Strip(out))
	return nil
}

func (cli *CLI) run() {
	fmt.Printf("%s╔══════════════════════════════════════╗%s\n", colorCyan, colorReset)
	fmt.Printf("%s║        readease assistant CLI        ║%s\n", colorCyan, colorReset)
	fmt.Printf("%s╚══════════════════════════════════════╝%s\n", colorCyan, colorReset)

	for {
		fmt.Println()
		fmt.Println("1) Summarize   2) Simplify   3) Correct grammar   4) Translate")
		fmt.Println("5) Chat        6) Suggest replies   7) Test provider   0) Quit")
		choice := cli.prompt("Choice")

		var err error
		switch choice {
		case "1":
			err = cli.runOnce("summarize", cli.promptRequired("Text"), "", "")
		case "2":
			err = cli.runOnce("simplify", cli.promptRequired("Text"), "", "")
		case "3":
			err = cli.runOnce("grammar", cli.promptRequired("Text"), "", "")
		case "4":
			text := cli.promptRequired("Text")
			source := cli.prompt("From (auto, en, hi-t, ...)")
			if source == "" {
				source = "auto"
			}
			err = cli.runOnce("translate", text, source, cli.promptRequired("To (en, hi, simple, ...)"))
		case "5":
			err = cli.runOnce("chat", cli.promptRequired("Message"), "", "")
		case "6":
			err = cli.runOnce("suggest", cli.promptRequired("Conversation context"), "", "")
		case "7":
			err = cli.runOnce("ping", "", "", "")
		case "0", "q", "quit":
			fmt.Printf("%s✓ Goodbye!%s\n", colorGreen, colorReset)
			return
		default:
			fmt.Printf("%s⚠ Invalid choice. Please enter 0-7.%s\n", colorYellow, colorReset)
			continue
		}
		if err != nil {
			fmt.Printf("%s❌ Error: %v%s\n", colorRed, err, colorReset)
		}
	}
}

func (cli *CLI) prompt(label string) string {
	fmt.Printf("%s%s:%s ", colorBlue, label, colorReset)
	if !cli.scanner.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(cli.scanner.Text())
}

func (cli *CLI) promptRequired(label string) string {
	for {
		if v := cli.prompt(label); v != "" {
			return v
		}
		fmt.Printf("%s⚠ %s cannot be empty%s\n", colorYellow, label, colorReset)
	}
}
