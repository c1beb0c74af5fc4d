// Command local runs the contract dialogue in the terminal. Instead of
// rendering .docx files it prints the field map of every confirmed
// contract, which makes it useful for trying the flow without templates
// or a Telegram token.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/tashfin/contractbot/bot"
	"github.com/tashfin/contractbot/contract"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelWarn)
	if err := startApp(context.Background()); err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context) error {
	ctx = bot.WithSessionKey(ctx, "local")
	engine, err := bot.NewEngine(
		bot.NewMemorySessionStore(),
		&printAssembler{out: os.Stdout},
		&noopSender{},
		bot.WithTranscript(bot.NewMemoryTranscriptStore(40)),
	)
	if err != nil {
		return err
	}

	reply, err := engine.Invoke(ctx, "/start")
	if err != nil {
		return err
	}
	show(reply)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		input, rErr := reader.ReadString('\n')
		if rErr != nil {
			fmt.Println("Ввод завершён. Выход.")
			return nil
		}
		reply, err = engine.Invoke(ctx, strings.TrimSpace(input))
		if err != nil {
			return err
		}
		show(reply)
	}
}

func show(reply *bot.Reply) {
	fmt.Printf("\n%s\n", reply.Text)
	for _, row := range reply.Keyboard {
		fmt.Printf("  [%s]\n", strings.Join(row, "] ["))
	}
}

// printAssembler dumps the field map instead of producing documents.
type printAssembler struct {
	out *os.File
}

func (p *printAssembler) Render(_ context.Context, ct contract.Type, number string, fields map[string]string) ([]string, error) {
	fmt.Fprintf(p.out, "===== %s %s =====\n", ct, number)
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if fields[key] == "" {
			continue
		}
		fmt.Fprintf(p.out, "%-28s %s\n", key, fields[key])
	}
	fmt.Fprintln(p.out, "=====")
	return nil, nil
}

type noopSender struct{}

func (*noopSender) SendDocument(context.Context, string) error { return nil }
